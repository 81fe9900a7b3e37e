package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func userValues(id int, email string, role model.Role, blocked bool) []any {
	return []any{id, email, "hash", string(role), blocked, testTime}
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "WHERE id = $1")
		require.Equal(t, []any{7}, args)
		return database.FakeRow{Values: userValues(7, "a@b.at", model.RoleAdmin, false)}
	}}
	u, err := GetUserByID(ctx, db, 7)
	require.NoError(t, err)
	require.Equal(t, 7, u.ID)
	require.Equal(t, model.RoleAdmin, u.Role)
	require.Equal(t, "hash", u.PasswordHash)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return database.FakeRow{Err: pgx.ErrNoRows}
	}
	_, err = GetUserByID(ctx, db, 8)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByEmailLowercases(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		require.Equal(t, "max@meister.at", args[0])
		return database.FakeRow{Values: userValues(1, "max@meister.at", model.RoleUser, true)}
	}}
	u, err := GetUserByEmail(context.Background(), db, "Max@Meister.AT")
	require.NoError(t, err)
	require.True(t, u.Blocked)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
		require.Equal(t, "neu@meister.at", args[0])
		require.Equal(t, model.RoleUser, args[2])
		require.Equal(t, false, args[3])
		return database.FakeRow{Values: []any{11, testTime}}
	}}
	u, err := CreateUser(ctx, db, &model.User{Email: "Neu@Meister.at", PasswordHash: "h"})
	require.NoError(t, err)
	require.Equal(t, 11, u.ID)
	require.Equal(t, testTime, u.CreatedAt)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return database.FakeRow{Err: &pgconn.PgError{Code: "23505"}}
	}
	_, err = CreateUser(ctx, db, &model.User{Email: "dup@meister.at"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
		require.Contains(t, sql, "ORDER BY created_at DESC")
		return &database.FakeRows{Data: [][]any{
			userValues(2, "b@x.at", model.RoleUser, false),
			userValues(1, "a@x.at", model.RoleAdmin, false),
		}}, nil
	}}
	users, err := ListUsers(ctx, db)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, 2, users[0].ID)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("q") }
	_, err = ListUsers(ctx, db)
	require.Error(t, err)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{Data: [][]any{{1}}, ScanErr: errors.New("scan")}, nil
	}
	_, err = ListUsers(ctx, db)
	require.EqualError(t, err, "ListUsers: scan")

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{IterErr: errors.New("iter")}, nil
	}
	_, err = ListUsers(ctx, db)
	require.EqualError(t, err, "ListUsers: iter")
}

func TestSetUserBlocked(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "UPDATE users SET blocked = $1")
		require.Equal(t, []any{true, 4}, args)
		return database.FakeRow{Values: userValues(4, "x@y.at", model.RoleUser, true)}
	}}
	u, err := SetUserBlocked(ctx, db, 4, true)
	require.NoError(t, err)
	require.True(t, u.Blocked)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return database.FakeRow{Err: pgx.ErrNoRows} }
	_, err = SetUserBlocked(ctx, db, 99, true)
	require.ErrorIs(t, err, ErrNotFound)
}
