// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 email/密碼驗證並發行 session cookie
// @Summary     登入使用者
// @Description username 為 email；被封鎖的帳號回 403
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} model.User
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(db database.DB, cch cache.Cache, sc service.SessionConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		ctx := c.Request().Context()
		user, err := authenticateUser(ctx, db, req.Username, req.Password)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "invalid credentials"})
		case errors.Is(err, service.ErrUserBlocked):
			return c.JSON(http.StatusForbidden, dto.HTTPError{Message: service.ErrUserBlocked.Error()})
		case err != nil:
			return handler.InternalError(c, err)
		}

		token, err := issueSession(ctx, cch, sc, user.ID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		c.SetCookie(service.NewSessionCookie(token, sc))
		return c.JSON(http.StatusOK, user)
	}
}
