package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestFakeDBPanicsWhenUnset(t *testing.T) {
	db := &FakeDB{}
	ctx := context.Background()
	require.Panics(t, func() { db.Exec(ctx, "UPDATE companies SET name = $1", "x") })
	require.Panics(t, func() { db.Query(ctx, "SELECT 1") })
	require.Panics(t, func() { db.QueryRow(ctx, "SELECT 1") })
	require.Panics(t, func() { db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBDelegates(t *testing.T) {
	ctx := context.Background()
	calls := map[string]int{}
	db := &FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			calls["exec"]++
			require.Len(t, args, 1)
			return pgconn.NewCommandTag("UPDATE 1"), errors.New("exec")
		},
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			calls["query"]++
			return &FakeRows{}, nil
		},
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			calls["row"]++
			return FakeRow{}
		},
		PingFn:  func(context.Context) error { calls["ping"]++; return nil },
		CloseFn: func() { calls["close"]++ },
	}

	tag, err := db.Exec(ctx, "UPDATE reviews SET deleted = TRUE WHERE id = $1", 1)
	require.EqualError(t, err, "exec")
	require.EqualValues(t, 1, tag.RowsAffected())

	rows, err := db.Query(ctx, "SELECT 1")
	require.NoError(t, err)
	require.False(t, rows.Next())

	require.NotNil(t, db.QueryRow(ctx, "SELECT 1"))
	require.NoError(t, db.Ping(ctx))
	db.Close()

	for _, k := range []string{"exec", "query", "row", "ping", "close"} {
		require.Equal(t, 1, calls[k], k)
	}
}

type role string

func TestFakeRowScan(t *testing.T) {
	var (
		id      int
		name    string
		website *string
		r       role
	)
	site := "https://example.at"
	err := FakeRow{Values: []any{3, "Tischlerei", &site, "admin"}}.Scan(&id, &name, &website, &r)
	require.NoError(t, err)
	require.Equal(t, 3, id)
	require.Equal(t, "Tischlerei", name)
	require.Equal(t, site, *website)
	require.Equal(t, role("admin"), r)

	// nil 寫入零值
	require.NoError(t, FakeRow{Values: []any{nil}}.Scan(&website))
	require.Nil(t, website)

	require.EqualError(t, FakeRow{Err: pgx.ErrNoRows}.Scan(&id), pgx.ErrNoRows.Error())
	require.Error(t, FakeRow{Values: []any{1, 2}}.Scan(&id))
	require.Error(t, FakeRow{Values: []any{[]int{1}}}.Scan(&id))
	require.Error(t, FakeRow{Values: []any{1}}.Scan(id))
}

func TestFakeRowsIterate(t *testing.T) {
	rows := &FakeRows{Data: [][]any{{1}, {2}}}
	var got []int
	for rows.Next() {
		var n int
		require.NoError(t, rows.Scan(&n))
		got = append(got, n)
	}
	require.Equal(t, []int{1, 2}, got)
	require.NoError(t, rows.Err())
	rows.Close()
	require.True(t, rows.Closed())

	rows = &FakeRows{Data: [][]any{{1}}, ScanErr: errors.New("scan")}
	require.True(t, rows.Next())
	var n int
	require.EqualError(t, rows.Scan(&n), "scan")
}
