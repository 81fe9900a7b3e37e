package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/middleware"
	"meisterverbund/internal/model"
	"meisterverbund/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	listUsers = store.ListUsers
	setUserBlocked = store.SetUserBlocked
}

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func newCtx(t *testing.T, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	v := validator.New()
	require.NoError(t, dto.RegisterValidations(v))
	e.Validator = testValidator{v}
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, &model.User{ID: 1, Role: model.RoleAdmin})
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return []model.User{{ID: 2, Email: "b@x.at", PasswordHash: "h"}, {ID: 1, Email: "a@x.at"}}, nil
	}
	c, rec := newCtx(t, "", "")
	require.NoError(t, ListUsersHandler(db)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"email":"b@x.at"`)
	require.NotContains(t, rec.Body.String(), "password")

	listUsers = func(context.Context, database.DB) ([]model.User, error) { return nil, errors.New("db") }
	c, rec = newCtx(t, "", "")
	require.NoError(t, ListUsersHandler(db)(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBlockUserHandler(t *testing.T) {
	t.Cleanup(restore)
	db := &database.FakeDB{}

	c, rec := newCtx(t, `{"blocked":true}`, "abc")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newCtx(t, `{}`, "2")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newCtx(t, `{"blocked":"yes"}`, "2")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 不能封鎖自己
	c, rec = newCtx(t, `{"blocked":true}`, "1")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	setUserBlocked = func(context.Context, database.DB, int, bool) (*model.User, error) {
		return nil, store.ErrNotFound
	}
	c, rec = newCtx(t, `{"blocked":true}`, "99")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	setUserBlocked = func(_ context.Context, _ database.DB, id int, blocked bool) (*model.User, error) {
		require.Equal(t, 2, id)
		return &model.User{ID: id, Blocked: blocked}, nil
	}
	c, rec = newCtx(t, `{"blocked":true}`, "2")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"blocked":true`)

	c, rec = newCtx(t, `{"blocked":false}`, "2")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"blocked":false`)

	setUserBlocked = func(context.Context, database.DB, int, bool) (*model.User, error) {
		return nil, errors.New("db")
	}
	c, rec = newCtx(t, `{"blocked":true}`, "2")
	require.NoError(t, BlockUserHandler(db)(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
