package usecase

import (
	"context"
	"net/http"

	repo "storefront/internal/repository"
)

// CartUsecase はカートの業務ロジックです。
// カートは最初のadd-to-cartで遅延作成し、閲覧だけでは作らない。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// カート画面1行分
type CartItemView struct {
	ID            int64
	ProductID     int64
	Name          string
	ImageURL      string
	PriceCents    int64
	Quantity      int64
	SubtotalCents int64
}

type CartView struct {
	Items      []CartItemView
	TotalCents int64
}

// AddToCart は商品を1個追加（同一商品は数量加算）。
// 商品が存在しなければ404で、書き込みは一切行わない。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	// 商品チェックが先（カートのfind-or-createより前）
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は+1）
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, productID, 1); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// ViewCart はカートの中身を返す。カートが無ければ空のまま（作成しない）。
func (u *CartUsecase) ViewCart(ctx context.Context, userID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartView{Items: []CartItemView{}}, nil
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	view := CartView{Items: make([]CartItemView, 0, len(items))}

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		view.Items = append(view.Items, CartItemView{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Name:          p.Name,
			ImageURL:      p.ImageURL,
			PriceCents:    p.PriceCents,
			Quantity:      it.Quantity,
			SubtotalCents: p.PriceCents * it.Quantity,
		})

		view.TotalCents += p.PriceCents * it.Quantity
	}

	return view, nil
}
