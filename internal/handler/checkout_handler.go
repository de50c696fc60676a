package handler

import (
	"errors"
	"net/http"

	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウト操作
type CheckoutHandler struct {
	uc    *usecase.CheckoutUsecase
	flash *FlashStore
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, flash *FlashStore) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, flash: flash}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/checkout", h.checkout, session.RequireLogin())
}

// GET /checkout
func (h *CheckoutHandler) checkout(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	order, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		// 空カートは注文を作らずフラッシュで知らせる
		if errors.Is(err, usecase.ErrCartEmpty) {
			h.flash.Add(c, "error", "No items in the cart.")
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return renderError(c, err)
	}

	h.flash.Add(c, "success", "Order placed successfully! Reference: "+order.Reference)
	return c.Redirect(http.StatusSeeOther, "/")
}
