package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
	"meisterverbund/internal/service"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSession = service.SessionConfig{Secret: "s", TTL: time.Hour}

func restore() {
	validateSession = service.ValidateSession
	revokeSession = service.RevokeSession
	getUserByID = store.GetUserByID
}

func newContext(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// runSession 執行 Session middleware 並回傳 next 看到的 context
func runSession(t *testing.T, cookie string) (echo.Context, error) {
	t.Helper()
	ctx, _ := newContext(cookie)
	var seen echo.Context
	mw := Session(&database.FakeDB{}, &cache.FakeCache{}, testSession)
	err := mw(func(c echo.Context) error { seen = c; return nil })(ctx)
	return seen, err
}

func TestSessionWithoutCookie(t *testing.T) {
	t.Cleanup(restore)
	validateSession = func(context.Context, cache.Cache, service.SessionConfig, string) (*service.SessionData, string, error) {
		t.Fatal("should not validate")
		return nil, "", nil
	}
	c, err := runSession(t, "")
	require.NoError(t, err)
	require.Nil(t, CurrentUser(c))
}

func TestSessionLoadsLiveUser(t *testing.T) {
	t.Cleanup(restore)
	validateSession = func(_ context.Context, _ cache.Cache, sc service.SessionConfig, tok string) (*service.SessionData, string, error) {
		require.Equal(t, "tok", tok)
		require.Equal(t, "s", sc.Secret)
		return &service.SessionData{UserID: 5}, "sid", nil
	}
	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		require.Equal(t, 5, id)
		return &model.User{ID: 5, Role: model.RoleAdmin}, nil
	}
	c, err := runSession(t, "tok")
	require.NoError(t, err)
	require.Equal(t, 5, CurrentUser(c).ID)
	require.Equal(t, "sid", SessionID(c))
}

func TestSessionInvalidCookie(t *testing.T) {
	t.Cleanup(restore)
	validateSession = func(context.Context, cache.Cache, service.SessionConfig, string) (*service.SessionData, string, error) {
		return nil, "", fmt.Errorf("%w: bad signature", service.ErrInvalidSession)
	}
	c, err := runSession(t, "tok")
	require.NoError(t, err)
	require.Nil(t, CurrentUser(c))

	validateSession = func(context.Context, cache.Cache, service.SessionConfig, string) (*service.SessionData, string, error) {
		return nil, "", service.ErrSessionNotFound
	}
	c, err = runSession(t, "tok")
	require.NoError(t, err)
	require.Nil(t, CurrentUser(c))

	// session store 故障不可降級為未登入
	validateSession = func(context.Context, cache.Cache, service.SessionConfig, string) (*service.SessionData, string, error) {
		return nil, "", errors.New("dial tcp: connection refused")
	}
	c, err = runSession(t, "tok")
	require.ErrorContains(t, err, "load session: dial tcp: connection refused")
	require.Nil(t, c)

	ctx, _ := newContext("tok")
	h := Session(&database.FakeDB{}, &cache.FakeCache{}, testSession)(RequireAuth(func(echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	}))
	err = h(ctx)
	var he *echo.HTTPError
	require.False(t, errors.As(err, &he))
}

func TestSessionBlockedUserIsRevoked(t *testing.T) {
	t.Cleanup(restore)
	validateSession = func(context.Context, cache.Cache, service.SessionConfig, string) (*service.SessionData, string, error) {
		return &service.SessionData{UserID: 2}, "sid", nil
	}
	getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
		return &model.User{ID: 2, Blocked: true}, nil
	}
	var revoked []string
	revokeSession = func(_ context.Context, _ cache.Cache, sid string) error {
		revoked = append(revoked, sid)
		return errors.New("redis down")
	}
	c, err := runSession(t, "tok")
	require.NoError(t, err)
	require.Nil(t, CurrentUser(c))
	require.Equal(t, true, c.Get(ContextBlockedKey))
	require.Equal(t, []string{"sid"}, revoked)
	setCookie := c.Response().Header().Get(echo.HeaderSetCookie)
	require.Contains(t, setCookie, service.SessionCookieName+"=;")
	require.Contains(t, setCookie, "Max-Age=0")

	err = RequireAuth(func(echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestSessionDeletedUser(t *testing.T) {
	t.Cleanup(restore)
	validateSession = func(context.Context, cache.Cache, service.SessionConfig, string) (*service.SessionData, string, error) {
		return &service.SessionData{UserID: 2}, "sid", nil
	}
	getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
		return nil, store.ErrNotFound
	}
	revokedCalled := false
	revokeSession = func(context.Context, cache.Cache, string) error { revokedCalled = true; return nil }
	c, err := runSession(t, "tok")
	require.NoError(t, err)
	require.Nil(t, CurrentUser(c))
	require.True(t, revokedCalled)

	getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
		return nil, errors.New("db down")
	}
	_, err = runSession(t, "tok")
	require.ErrorContains(t, err, "db down")
}

func TestRequireAuth(t *testing.T) {
	// 已登入
	ctx, rec := newContext("")
	ctx.Set(ContextUserKey, &model.User{ID: 2})
	called := false
	handler := RequireAuth(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// 未登入
	ctx, _ = newContext("")
	called = false
	err := RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	// admin ok
	ctx, rec := newContext("")
	ctx.Set(ContextUserKey, &model.User{ID: 3, Role: model.RoleAdmin})
	called := false
	err := RequireAdmin(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "admin") })(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// 一般使用者
	ctx, _ = newContext("")
	ctx.Set(ContextUserKey, &model.User{ID: 4, Role: model.RoleUser})
	called = false
	err = RequireAdmin(func(c echo.Context) error { called = true; return nil })(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)
	require.False(t, called)

	// 未登入
	ctx, _ = newContext("")
	err = RequireAdmin(func(c echo.Context) error { return nil })(ctx)
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
