package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// ErrCartEmpty はカートが空（未作成含む）のままチェックアウトした場合。
// ハンドラ側はこれをフラッシュ表示に変える。
var ErrCartEmpty = NewHTTPError(http.StatusBadRequest, "cart empty")

// CheckoutUsecase はカートを注文に確定する。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type OrderItemOutput struct {
	ProductID            int64
	Quantity             int64
	PriceAtPurchaseCents int64
}

type OrderOutput struct {
	ID         int64
	Reference  string
	UserID     int64
	OrderDate  time.Time
	TotalCents int64
	Items      []OrderItemOutput
}

// Checkout はカートの明細を注文＋注文明細に変換し、カートを空にする。
// 注文作成・明細作成・カートクリアは1トランザクション（どこかで失敗すれば全てロールバック）。
// price_at_purchaseはこの時点の商品価格のスナップショット。
// 在庫数のチェックは行わない（元システムどおり）。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得（無ければcart empty）
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return ErrCartEmpty
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カート明細取得
		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		//現在価格でスナップショットを作りつつ合計を計算
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var total int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:            ci.ProductID,
				Quantity:             ci.Quantity,
				PriceAtPurchaseCents: p.PriceCents,
			})

			total += p.PriceCents * ci.Quantity
		}

		//注文作成
		now := time.Now()
		reference := uuid.NewString()

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:     userID,
			Reference:  reference,
			OrderDate:  now,
			TotalCents: total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートの明細をクリア（カート行は残す）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outItems := make([]OrderItemOutput, 0, len(orderItems))
		for _, it := range orderItems {
			outItems = append(outItems, OrderItemOutput{
				ProductID:            it.ProductID,
				Quantity:             it.Quantity,
				PriceAtPurchaseCents: it.PriceAtPurchaseCents,
			})
		}

		out = OrderOutput{
			ID:         orderID,
			Reference:  reference,
			UserID:     userID,
			OrderDate:  now,
			TotalCents: total,
			Items:      outItems,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
