package handler

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const flashSessionName = "flash-session"

type FlashMessage struct {
	Type    string // success / error
	Message string
}

// sessionsのgobエンコード用
func init() {
	gob.Register(FlashMessage{})
}

// FlashStore はリダイレクトをまたぐ1回限りのメッセージ置き場。
// セッショントークンとは別のCookieで運ぶ。
type FlashStore struct {
	store *sessions.CookieStore
}

func NewFlashStore(secret string, secure bool) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"

	return &FlashStore{store: store}
}

// Add はメッセージを積む（次の描画で取り出される）
func (f *FlashStore) Add(c echo.Context, typ string, message string) {
	sess, _ := f.store.Get(c.Request(), flashSessionName)
	sess.AddFlash(FlashMessage{Type: typ, Message: message})
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("failed to save flash session", "error", err)
	}
}

// Pop は積まれたメッセージを取り出して消す
func (f *FlashStore) Pop(c echo.Context) []FlashMessage {
	sess, _ := f.store.Get(c.Request(), flashSessionName)

	raw := sess.Flashes()
	if len(raw) > 0 {
		// Flashesは読むだけでは消えない。Saveで確定。
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			slog.Error("failed to save flash session", "error", err)
		}
	}

	out := make([]FlashMessage, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(FlashMessage); ok {
			out = append(out, m)
		}
	}
	return out
}
