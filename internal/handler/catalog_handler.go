package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// usecaseのHTTPErrorをechoの標準エラーページに落とす
func renderError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return echo.NewHTTPError(he.Status, he.Message)
	}

	//500
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

// 商品一覧・詳細ページ
type CatalogHandler struct {
	uc    *usecase.CatalogUsecase
	flash *FlashStore
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase, flash *FlashStore) *CatalogHandler {
	return &CatalogHandler{uc: uc, flash: flash}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/products/:id", h.detail)
}

// GET /
func (h *CatalogHandler) home(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return renderError(c, err)
	}

	_, loggedIn := session.UserID(c)

	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Products": products,
		"Flashes":  h.flash.Pop(c),
		"LoggedIn": loggedIn,
	})
}

// GET /products/:id
func (h *CatalogHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return renderError(c, err)
	}

	_, loggedIn := session.UserID(c)

	return c.Render(http.StatusOK, "product.html", map[string]interface{}{
		"Product":  p,
		"Flashes":  h.flash.Pop(c),
		"LoggedIn": loggedIn,
	})
}
