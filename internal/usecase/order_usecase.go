package usecase

import (
	"context"
	"net/http"
	"time"

	repo "storefront/internal/repository"
)

// OrderUsecase は注文履歴の参照。
// 注文は作成後不変なので読み取りだけ。
type OrderUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	productRepo   repo.ProductRepository
}

func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
	}
}

type OrderSummaryView struct {
	ID         int64
	Reference  string
	OrderDate  time.Time
	TotalCents int64
}

type OrderLineView struct {
	ProductID            int64
	Name                 string
	Quantity             int64
	PriceAtPurchaseCents int64
	SubtotalCents        int64
}

type OrderDetailView struct {
	ID         int64
	Reference  string
	OrderDate  time.Time
	TotalCents int64
	Items      []OrderLineView
}

// ListMyOrders はユーザー自身の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderSummaryView, error) {
	if userID <= 0 {
		return []OrderSummaryView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderSummaryView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]OrderSummaryView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderSummaryView{
			ID:         o.ID,
			Reference:  o.Reference,
			OrderDate:  o.OrderDate,
			TotalCents: o.TotalCents,
		})
	}
	return views, nil
}

// GetMyOrder は注文詳細。他人の注文は「存在しない扱い」にする。
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderDetailView, error) {
	if userID <= 0 {
		return OrderDetailView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderDetailView{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderDetailView{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderDetailView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return OrderDetailView{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetailView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]OrderLineView, 0, len(items))
	for _, it := range items {
		//表示名は現在の商品から引く（明細の価格はスナップショットのまま）
		name := ""
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			name = p.Name
		}

		lines = append(lines, OrderLineView{
			ProductID:            it.ProductID,
			Name:                 name,
			Quantity:             it.Quantity,
			PriceAtPurchaseCents: it.PriceAtPurchaseCents,
			SubtotalCents:        it.PriceAtPurchaseCents * it.Quantity,
		})
	}

	return OrderDetailView{
		ID:         o.ID,
		Reference:  o.Reference,
		OrderDate:  o.OrderDate,
		TotalCents: o.TotalCents,
		Items:      lines,
	}, nil
}
