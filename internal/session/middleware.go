package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Resolve はリクエスト毎にセッションCookieを検証し、
// 有効ならuser_idをechoのcontextへ保存する。匿名でも通す。
func (m *Manager) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			userID, err := m.Parse(cookie.Value)
			if err != nil {
				//壊れた/期限切れCookieは匿名扱い
				return next(c)
			}

			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}

// RequireLogin は未ログインなら/loginへリダイレクトするガード。
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserID(c); !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// UserID はResolveが保存したユーザーIDを取り出す
func UserID(c echo.Context) (int64, bool) {
	raw := c.Get(CtxUserIDKey)
	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
