package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSession = service.SessionConfig{Secret: "s", TTL: time.Hour}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, testSession)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodPost + " /api/auth/logout",
		http.MethodGet + " /api/auth/me",
		http.MethodGet + " /api/companies",
		http.MethodGet + " /api/companies/:id",
		http.MethodPost + " /api/companies",
		http.MethodPut + " /api/companies/:id",
		http.MethodGet + " /api/reviews",
		http.MethodPost + " /api/reviews",
		http.MethodDelete + " /api/reviews/:id",
		http.MethodGet + " /api/posts",
		http.MethodGet + " /api/posts/:slug",
		http.MethodPost + " /api/posts",
		http.MethodPut + " /api/posts/:id",
		http.MethodGet + " /api/admin/users",
		http.MethodPatch + " /api/admin/users/:id/block",
	}

	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = handler.ErrorHandler
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, testSession)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/companies"},
		{http.MethodPut, "/api/companies/1"},
		{http.MethodPost, "/api/reviews"},
		{http.MethodDelete, "/api/reviews/1"},
		{http.MethodPost, "/api/posts"},
		{http.MethodPut, "/api/posts/1"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPatch, "/api/admin/users/2/block"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		require.JSONEq(t, `{"message":"authentication required"}`, rec.Body.String())
	}
}

func TestPostSlugRoute(t *testing.T) {
	var gotSlug any
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		gotSlug = args[0]
		return database.FakeRow{Err: pgx.ErrNoRows}
	}}
	e := echo.New()
	e.HTTPErrorHandler = handler.ErrorHandler
	Setup(e, db, &cache.FakeCache{}, testSession)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/willkommen", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "willkommen", gotSlug)
}
