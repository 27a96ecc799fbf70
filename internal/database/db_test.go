package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestFakeDB(t *testing.T) {
	db := &FakeDB{}
	require.Panics(t, func() { db.Exec(context.Background(), "", nil) })
	require.Panics(t, func() { db.Query(context.Background(), "") })
	require.Panics(t, func() { db.QueryRow(context.Background(), "") })
	require.Panics(t, func() { db.Begin(context.Background()) })
	require.Panics(t, func() { db.Ping(context.Background()) })
	db.Close()

	execCalled := false
	queryCalled := false
	rowCalled := false
	pingCalled := false
	closeCalled := false

	db.ExecFn = func(ctx context.Context, s string, args ...any) (pgconn.CommandTag, error) {
		execCalled = true
		return pgconn.CommandTag{}, errors.New("e")
	}
	db.QueryFn = func(ctx context.Context, s string, args ...any) (pgx.Rows, error) {
		queryCalled = true
		return &FakeRows{}, nil
	}
	db.QueryRowFn = func(ctx context.Context, s string, args ...any) pgx.Row {
		rowCalled = true
		return FakeRow{}
	}
	db.PingFn = func(ctx context.Context) error { pingCalled = true; return nil }
	db.CloseFn = func() { closeCalled = true }

	_, err := db.Exec(context.Background(), "sql")
	require.Error(t, err)
	_, err = db.Query(context.Background(), "sql")
	require.NoError(t, err)
	_ = db.QueryRow(context.Background(), "sql")
	require.NoError(t, db.Ping(context.Background()))
	db.Close()
	require.True(t, execCalled)
	require.True(t, queryCalled)
	require.True(t, rowCalled)
	require.True(t, pingCalled)
	require.True(t, closeCalled)
}

func TestWithTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		tx := &FakeTx{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 1"), nil
		}}
		err := WithTx(context.Background(), FakeDBWithTx(tx), func(q Querier) error {
			_, err := q.Exec(context.Background(), "DELETE")
			return err
		})
		require.NoError(t, err)
		require.True(t, tx.Committed)
		require.False(t, tx.RolledBack)
	})

	t.Run("rollback on error", func(t *testing.T) {
		tx := &FakeTx{}
		err := WithTx(context.Background(), FakeDBWithTx(tx), func(Querier) error { return errors.New("boom") })
		require.EqualError(t, err, "boom")
		require.False(t, tx.Committed)
		require.True(t, tx.RolledBack)
	})

	t.Run("begin error", func(t *testing.T) {
		db := &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("begin") }}
		called := false
		err := WithTx(context.Background(), db, func(Querier) error { called = true; return nil })
		require.EqualError(t, err, "begin")
		require.False(t, called)
	})

	t.Run("commit error", func(t *testing.T) {
		tx := &FakeTx{CommitErr: errors.New("commit")}
		err := WithTx(context.Background(), FakeDBWithTx(tx), func(Querier) error { return nil })
		require.EqualError(t, err, "commit")
	})
}

func TestFakeRows(t *testing.T) {
	now := time.Now()
	rows := &FakeRows{Data: [][]any{{int64(1), "a", now}, {int64(2), "b", now}}}
	var ids []int64
	for rows.Next() {
		var (
			id   int64
			name string
			ts   time.Time
		)
		require.NoError(t, rows.Scan(&id, &name, &ts))
		require.Equal(t, now, ts)
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []int64{1, 2}, ids)
	require.False(t, rows.Next())

	var s string
	require.EqualError(t, FakeRow{Err: pgx.ErrNoRows}.Scan(&s), pgx.ErrNoRows.Error())
	require.NoError(t, FakeRow{Values: []any{"x"}}.Scan(&s))
	require.Equal(t, "x", s)

	p := &s
	require.NoError(t, FakeRow{Values: []any{nil}}.Scan(&p))
	require.Nil(t, p)
}
