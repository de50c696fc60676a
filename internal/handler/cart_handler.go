package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カートページと追加操作
type CartHandler struct {
	uc    *usecase.CartUsecase
	flash *FlashStore
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, flash *FlashStore) *CartHandler {
	return &CartHandler{uc: uc, flash: flash}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	// 要ログイン（未ログインは/loginへ）
	e.GET("/add_to_cart/:id", h.add, session.RequireLogin())
	e.GET("/cart", h.view, session.RequireLogin())
}

// GET /add_to_cart/:id
func (h *CartHandler) add(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := h.uc.AddToCart(c.Request().Context(), userID, productID); err != nil {
		return renderError(c, err)
	}

	h.flash.Add(c, "success", "Item added to cart")
	return c.Redirect(http.StatusSeeOther, "/")
}

// GET /cart
func (h *CartHandler) view(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	cart, err := h.uc.ViewCart(c.Request().Context(), userID)
	if err != nil {
		return renderError(c, err)
	}

	return c.Render(http.StatusOK, "cart.html", map[string]interface{}{
		"Cart":     cart,
		"Flashes":  h.flash.Pop(c),
		"LoggedIn": true,
	})
}
