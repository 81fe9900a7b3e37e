// File: internal/handler/auth/logout.go
package auth

import (
	"net/http"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/middleware"
	"meisterverbund/internal/service"

	"github.com/labstack/echo/v4"
)

type MessageResponse struct {
	Message string `json:"message" example:"logged out"`
}

// LogoutHandler 撤銷目前的 session 並清除 cookie
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /auth/logout [post]
func LogoutHandler(cch cache.Cache, sc service.SessionConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sid := middleware.SessionID(c); sid != "" {
			if err := revokeSession(c.Request().Context(), cch, sid); err != nil {
				return handler.InternalError(c, err)
			}
		}
		c.SetCookie(service.ClearSessionCookie(sc))
		return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
	}
}
