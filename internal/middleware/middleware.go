package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/logger"
	"meisterverbund/internal/model"
	"meisterverbund/internal/service"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ContextUserKey    = "user"
	ContextSessionKey = "session_id"
	ContextBlockedKey = "user_blocked"
)

var (
	validateSession = service.ValidateSession
	revokeSession   = service.RevokeSession
	getUserByID     = store.GetUserByID
)

// Session 解析 session cookie，每個請求都重新讀取使用者
// 被封鎖的使用者 session 會被撤銷、cookie 清除並標記，由 RequireAuth 回 403
func Session(db database.DB, c cache.Cache, sc service.SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(service.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(ctx)
			}
			reqCtx := ctx.Request().Context()
			log := logger.FromContext(ctx)

			data, sid, err := validateSession(reqCtx, c, sc, cookie.Value)
			switch {
			case errors.Is(err, service.ErrSessionNotFound):
				return next(ctx)
			case errors.Is(err, service.ErrInvalidSession):
				log.Debug("invalid session cookie", zap.Error(err))
				return next(ctx)
			case err != nil:
				return fmt.Errorf("load session: %w", err)
			}

			user, err := getUserByID(reqCtx, db, data.UserID)
			if errors.Is(err, store.ErrNotFound) {
				if err := revokeSession(reqCtx, c, sid); err != nil {
					log.Warn("revoke session failed", zap.Error(err))
				}
				return next(ctx)
			}
			if err != nil {
				return fmt.Errorf("load session user: %w", err)
			}

			if user.Blocked {
				if err := revokeSession(reqCtx, c, sid); err != nil {
					log.Warn("revoke session failed", zap.Error(err))
				}
				ctx.SetCookie(service.ClearSessionCookie(sc))
				ctx.Set(ContextBlockedKey, true)
				return next(ctx)
			}

			ctx.Set(ContextUserKey, user)
			ctx.Set(ContextSessionKey, sid)
			return next(ctx)
		}
	}
}

// CurrentUser 取得目前登入的使用者，未登入回傳 nil
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextUserKey).(*model.User)
	return u
}

// SessionID 取得目前 session id，未登入回傳空字串
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextSessionKey).(string)
	return sid
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) != nil {
			return next(c)
		}
		if blocked, _ := c.Get(ContextBlockedKey).(bool); blocked {
			return echo.NewHTTPError(http.StatusForbidden, service.ErrUserBlocked.Error())
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireAuth(func(c echo.Context) error {
		if !CurrentUser(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	})
}
