package database

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the statement surface shared by the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(context.Context) error
	Close()
}

// WithTx runs fn inside a transaction. fn's error rolls back, nil commits.
func WithTx(ctx context.Context, db DB, fn func(q Querier) error) error {
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	BeginFn    func(ctx context.Context) (pgx.Tx, error)
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (f *FakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.BeginFn != nil {
		return f.BeginFn(ctx)
	}
	panic("unexpected Begin")
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeTx implements pgx.Tx for tests. Methods other than the statement,
// commit and rollback calls panic through the nil embedded interface.
type FakeTx struct {
	pgx.Tx

	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	CommitErr  error

	Committed  bool
	RolledBack bool
}

func (t *FakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.ExecFn != nil {
		return t.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (t *FakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if t.QueryFn != nil {
		return t.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.QueryRowFn != nil {
		return t.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (t *FakeTx) Commit(context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	if !t.RolledBack {
		t.Committed = true
	}
	return nil
}

func (t *FakeTx) Rollback(context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// FakeDBWithTx returns a FakeDB whose Begin always hands out tx.
func FakeDBWithTx(tx *FakeTx) *FakeDB {
	return &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
}

// FakeRow is a pgx.Row that copies Values into the scan destinations.
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(r.Values, dest)
}

// FakeRows iterates over Data, one slice of column values per row.
type FakeRows struct {
	Data   [][]any
	ErrVal error
	pos    int
	closed bool
}

func (r *FakeRows) Close()                                       { r.closed = true }
func (r *FakeRows) Err() error                                   { return r.ErrVal }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

func (r *FakeRows) Next() bool {
	if r.closed || r.pos >= len(r.Data) {
		r.closed = true
		return false
	}
	r.pos++
	return true
}

func (r *FakeRows) Scan(dest ...any) error {
	return assign(r.Data[r.pos-1], dest)
}

func (r *FakeRows) Values() ([]any, error) {
	return r.Data[r.pos-1], nil
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		panic("fake scan: column count mismatch")
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v))
	}
	return nil
}
