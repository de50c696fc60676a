package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderUsecase_ListMyOrders_Unauthorized(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock), new(OrderItemRepoMock), new(ProductRepoMock))

	_, err := uc.ListMyOrders(context.Background(), 0)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestOrderUsecase_ListMyOrders_MapsOrders(t *testing.T) {
	orderRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(orderRepo, new(OrderItemRepoMock), new(ProductRepoMock))

	placed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	orderRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.Order{
		{ID: 42, UserID: 1, Reference: "ref-42", OrderDate: placed, TotalCents: 2550},
	}, nil)

	views, err := uc.ListMyOrders(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "ref-42", views[0].Reference)
	assert.Equal(t, int64(2550), views[0].TotalCents)
	assert.Equal(t, placed, views[0].OrderDate)
}

func TestOrderUsecase_GetMyOrder_MapsLines(t *testing.T) {
	orderRepo := new(OrderRepoMock)
	oiRepo := new(OrderItemRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewOrderUsecase(orderRepo, oiRepo, productRepo)

	orderRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, UserID: 1, Reference: "ref-42", TotalCents: 2550,
	}, nil)
	oiRepo.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{ID: 100, OrderID: 42, ProductID: 1, Quantity: 2, PriceAtPurchaseCents: 1000},
		{ID: 101, OrderID: 42, ProductID: 2, Quantity: 1, PriceAtPurchaseCents: 550},
	}, nil)
	//明細の価格は購入時スナップショット。現在価格（1200）は表示名にしか使わない。
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "A", PriceCents: 1200}, nil)
	productRepo.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, Name: "B", PriceCents: 550}, nil)

	view, err := uc.GetMyOrder(context.Background(), 1, 42)
	assert.NoError(t, err)
	assert.Equal(t, "ref-42", view.Reference)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, "A", view.Items[0].Name)
	assert.Equal(t, int64(1000), view.Items[0].PriceAtPurchaseCents)
	assert.Equal(t, int64(2000), view.Items[0].SubtotalCents)
}

func TestOrderUsecase_GetMyOrder_OtherUsersOrder_NotFound(t *testing.T) {
	orderRepo := new(OrderRepoMock)
	oiRepo := new(OrderItemRepoMock)
	uc := usecase.NewOrderUsecase(orderRepo, oiRepo, new(ProductRepoMock))

	orderRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Order{ID: 42, UserID: 2}, nil)

	_, err := uc.GetMyOrder(context.Background(), 1, 42)
	assertHTTPStatus(t, err, http.StatusNotFound)

	//他人の注文では明細を読まない
	oiRepo.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_GetMyOrder_Missing_NotFound(t *testing.T) {
	orderRepo := new(OrderRepoMock)
	uc := usecase.NewOrderUsecase(orderRepo, new(OrderItemRepoMock), new(ProductRepoMock))

	orderRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetMyOrder(context.Background(), 1, 99)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
