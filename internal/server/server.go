package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/session"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はミドルウェアとルートを組み立てたechoを返す
func New(
	cfg config.Config,
	renderer *handler.TemplateRenderer,
	sessions *session.Manager,
	h Handlers,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	//毎リクエストでセッションCookie→ユーザー解決
	e.Use(sessions.Resolve())

	//フォームPOSTのCSRF対策
	e.Use(echo.WrapMiddleware(csrf.Protect(
		[]byte(cfg.SessionSecret),
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
	)))

	RegisterRoutes(e, h)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
