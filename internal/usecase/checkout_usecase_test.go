package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// 常に同じモック束を渡すTransactionManager
type txReposStub struct {
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	products   repo.ProductRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposStub) Carts() repo.CartRepository           { return r.carts }
func (r *txReposStub) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *txReposStub) Products() repo.ProductRepository     { return r.products }
func (r *txReposStub) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository { return r.orderItems }

type txManagerStub struct {
	repos repo.TxRepos
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

type checkoutFixture struct {
	cartRepo    *CartRepoMock
	itemRepo    *CartItemRepoMock
	productRepo *ProductRepoMock
	orderRepo   *OrderRepoMock
	oiRepo      *OrderItemRepoMock
	uc          *usecase.CheckoutUsecase
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		cartRepo:    new(CartRepoMock),
		itemRepo:    new(CartItemRepoMock),
		productRepo: new(ProductRepoMock),
		orderRepo:   new(OrderRepoMock),
		oiRepo:      new(OrderItemRepoMock),
	}
	tm := &txManagerStub{repos: &txReposStub{
		carts:      f.cartRepo,
		cartItems:  f.itemRepo,
		products:   f.productRepo,
		orders:     f.orderRepo,
		orderItems: f.oiRepo,
	}}
	f.uc = usecase.NewCheckoutUsecase(tm)
	return f
}

func TestCheckoutUsecase_NoCart_NoOrderCreated(t *testing.T) {
	f := newCheckoutFixture()

	f.cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := f.uc.Checkout(context.Background(), 1)
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)

	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.cartRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_EmptyCart_NoOrderCreated(t *testing.T) {
	f := newCheckoutFixture()

	f.cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	f.itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil)

	_, err := f.uc.Checkout(context.Background(), 1)
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, usecase.ErrCartEmpty)

	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutUsecase_TotalAndSnapshots(t *testing.T) {
	f := newCheckoutFixture()

	//カート: A(1000セント)×2, B(550セント)×1 → 合計2550
	f.cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	f.itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 10, CartID: 3, ProductID: 1, Quantity: 2},
		{ID: 11, CartID: 3, ProductID: 2, Quantity: 1},
	}, nil)
	f.productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, PriceCents: 1000}, nil)
	f.productRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, PriceCents: 550}, nil)

	f.orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 1 && o.TotalCents == 2550 && o.Reference != ""
	})).Return(int64(42), nil)

	f.oiRepo.On("CreateBulk", mock.Anything, int64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		//price_at_purchaseはチェックアウト時点の商品価格
		return items[0].PriceAtPurchaseCents == 1000 && items[0].Quantity == 2 &&
			items[1].PriceAtPurchaseCents == 550 && items[1].Quantity == 1
	})).Return(nil)

	f.cartRepo.On("Clear", mock.Anything, int64(3)).Return(nil)

	out, err := f.uc.Checkout(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, int64(2550), out.TotalCents)
	assert.Len(t, out.Items, 2)

	f.orderRepo.AssertExpectations(t)
	f.oiRepo.AssertExpectations(t)
	f.cartRepo.AssertExpectations(t)
}

func TestCheckoutUsecase_ItemInsertFailure_PropagatesForRollback(t *testing.T) {
	f := newCheckoutFixture()

	f.cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	f.itemRepo.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 10, CartID: 3, ProductID: 1, Quantity: 1},
	}, nil)
	f.productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, PriceCents: 500}, nil)
	f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	f.oiRepo.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(errors.New("insert failed"))

	_, err := f.uc.Checkout(context.Background(), 1)
	assertHTTPStatus(t, err, http.StatusInternalServerError)

	//失敗時はクリアまで到達しない（txごとロールバックされる）
	f.cartRepo.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}
