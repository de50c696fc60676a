package handler

import (
	"net/http"

	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// ログイン・会員登録・ログアウト
type AuthHandler struct {
	uc       *usecase.AuthUsecase
	sessions *session.Manager
	flash    *FlashStore
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, sessions *session.Manager, flash *FlashStore) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, flash: flash}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/login", h.loginGet)
	e.POST("/login", h.loginPost)
	e.GET("/register", h.registerGet)
	e.POST("/register", h.registerPost)
	e.GET("/logout", h.logout, session.RequireLogin())
}

// GET /login
func (h *AuthHandler) loginGet(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]interface{}{
		"CsrfField": csrf.TemplateField(c.Request()),
		"Flashes":   h.flash.Pop(c),
	})
}

// POST /login
func (h *AuthHandler) loginPost(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.flash.Add(c, "error", "Invalid email or password")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := h.sessions.SetCookie(c, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.flash.Add(c, "success", "Welcome, "+user.Name+"!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// GET /register
func (h *AuthHandler) registerGet(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", map[string]interface{}{
		"CsrfField": csrf.TemplateField(c.Request()),
		"Flashes":   h.flash.Pop(c),
	})
}

// POST /register
func (h *AuthHandler) registerPost(c echo.Context) error {
	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok && he.Status != http.StatusInternalServerError {
			h.flash.Add(c, "error", he.Message)
			return c.Redirect(http.StatusSeeOther, "/register")
		}
		return renderError(c, err)
	}

	//登録後はそのままログイン状態にする
	if err := h.sessions.SetCookie(c, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.flash.Add(c, "success", "Welcome, "+user.Name+"!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// GET /logout
func (h *AuthHandler) logout(c echo.Context) error {
	h.sessions.ClearCookie(c)
	h.flash.Add(c, "success", "Logged out")
	return c.Redirect(http.StatusSeeOther, "/")
}
