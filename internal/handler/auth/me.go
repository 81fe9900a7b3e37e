// File: internal/handler/auth/me.go
package auth

import (
	"net/http"

	"meisterverbund/internal/dto"
	"meisterverbund/internal/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler 回傳目前登入的使用者
// @Summary     目前使用者
// @Tags        auth
// @Produce     json
// @Success     200 {object} model.User
// @Failure     401 {object} dto.HTTPError
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "authentication required"})
		}
		return c.JSON(http.StatusOK, user)
	}
}
