package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文履歴ページ
type OrderHandler struct {
	uc    *usecase.OrderUsecase
	flash *FlashStore
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase, flash *FlashStore) *OrderHandler {
	return &OrderHandler{uc: uc, flash: flash}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/orders", h.list, session.RequireLogin())
	e.GET("/orders/:id", h.detail, session.RequireLogin())
}

// GET /orders
func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return renderError(c, err)
	}

	return c.Render(http.StatusOK, "orders.html", map[string]interface{}{
		"Orders":   orders,
		"Flashes":  h.flash.Pop(c),
		"LoggedIn": true,
	})
}

// GET /orders/:id
func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	order, err := h.uc.GetMyOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return renderError(c, err)
	}

	return c.Render(http.StatusOK, "order.html", map[string]interface{}{
		"Order":    order,
		"Flashes":  h.flash.Pop(c),
		"LoggedIn": true,
	})
}
