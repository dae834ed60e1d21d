package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "session_id"
	sessionCookieName = "storefront_session"
)

// セッションcookieを保証するミドルウェア。
// カートの所有者はこのIDで決まる（タブ間共有はしない）。
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string

			cookie, err := c.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				//初回アクセスで採番してcookieを配る
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

// Session が c.Set("session_id", string) した値を取り出す
func GetSessionID(c echo.Context) (string, bool) {
	v := c.Get(CtxSessionIDKey)
	if v == nil {
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
