package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

type fakeCommandTag struct {
	rowsAffected int64
}

func (f fakeCommandTag) RowsAffected() int64 { return f.rowsAffected }

type fakeRow struct {
	values   []any
	scanFunc func(dest ...any) error
}

func rowFromValues(values ...any) fakeRow {
	return fakeRow{values: values}
}

func rowError(err error) fakeRow {
	return fakeRow{scanFunc: func(dest ...any) error { return err }}
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scanFunc != nil {
		return r.scanFunc(dest...)
	}
	return assignValues(dest, r.values)
}

type fakeRows struct {
	rows    [][]any
	idx     int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return assignValues(dest, r.rows[r.idx-1])
}

func (r *fakeRows) Close()     { r.closed = true }
func (r *fakeRows) Err() error { return r.err }

type fakeDB struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	BeginFunc    func(ctx context.Context) (Tx, error)
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return fakeCommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return rowError(errors.New("unexpected QueryRow"))
}

func (f *fakeDB) Begin(ctx context.Context) (Tx, error) {
	if f.BeginFunc != nil {
		return f.BeginFunc(ctx)
	}
	return nil, errors.New("unexpected Begin")
}

type fakeTx struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return fakeCommandTag{}, nil
}

func (f *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return rowError(errors.New("unexpected QueryRow"))
}

func (f *fakeTx) Commit(ctx context.Context) error {
	if f.CommitFunc != nil {
		return f.CommitFunc(ctx)
	}
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if f.RollbackFunc != nil {
		return f.RollbackFunc(ctx)
	}
	return nil
}

// assignValues copies values into scan destinations the way pgx would for
// the types the services use.
func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		target := dv.Elem()

		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}

		val := reflect.ValueOf(values[i])
		switch {
		case val.Type().AssignableTo(target.Type()):
			target.Set(val)
		case target.Kind() == reflect.Pointer && val.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(val)
			target.Set(p)
		case isInteger(val.Kind()) && isInteger(target.Kind()):
			target.Set(val.Convert(target.Type()))
		default:
			return fmt.Errorf("scan: cannot assign %T to destination %d (%s)", values[i], i, target.Type())
		}
	}
	return nil
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

type fakeCache struct {
	store       map[string]string
	setErr      error
	getErr      error
	expireErr   error
	delErr      error
	setCalls    int
	getCalls    int
	expireCalls int
	delCalls    int
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	if f.store == nil {
		f.store = map[string]string{}
	}
	f.store[key] = fmt.Sprint(value)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.getCalls++
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.store[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	f.expireCalls++
	return f.expireErr
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	f.delCalls += len(keys)
	for _, k := range keys {
		delete(f.store, k)
	}
	return f.delErr
}
