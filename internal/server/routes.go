package server

import (
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Auth     *handler.AuthHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)

	e.Static("/static", "static")
}
