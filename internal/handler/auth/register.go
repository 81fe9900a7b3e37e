// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/model"
	"meisterverbund/internal/service"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立一般使用者並直接登入
// @Summary     註冊
// @Description 角色固定為 user，body 中的 role/blocked 會被忽略
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} model.User
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, cch cache.Cache, sc service.SessionConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return handler.InternalError(c, err)
		}

		ctx := c.Request().Context()
		user, err := createUser(ctx, db, &model.User{
			Email:        req.Email,
			PasswordHash: hash,
			Role:         model.RoleUser,
		})
		if errors.Is(err, store.ErrConflict) {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "email already registered"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}

		token, err := issueSession(ctx, cch, sc, user.ID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		c.SetCookie(service.NewSessionCookie(token, sc))
		return c.JSON(http.StatusCreated, user)
	}
}
