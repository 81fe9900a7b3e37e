// File: internal/handler/admin/users.go
package admin

import (
	"errors"
	"net/http"

	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/middleware"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試時替換
var (
	listUsers      = store.ListUsers
	setUserBlocked = store.SetUserBlocked
)

// ListUsersHandler 列出所有使用者，新到舊
// @Summary     使用者列表 (admin)
// @Tags        admin
// @Produce     json
// @Success     200 {array}  model.User
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /admin/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
}

// BlockUserHandler 封鎖或解除封鎖使用者
// 被封鎖者的 session 在下一次請求時由 Session middleware 撤銷
// @Summary     封鎖使用者 (admin)
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path     int                  true "使用者 ID"
// @Param       body body     dto.BlockUserRequest true "封鎖狀態"
// @Success     200  {object} model.User
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /admin/users/{id}/block [patch]
func BlockUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid user id"})
		}
		var req dto.BlockUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		if me := middleware.CurrentUser(c); me != nil && me.ID == id && *req.Blocked {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "cannot block your own account"})
		}

		user, err := setUserBlocked(c.Request().Context(), db, id, *req.Blocked)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "user not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}
