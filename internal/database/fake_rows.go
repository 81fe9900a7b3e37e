package database

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeRow 實作 pgx.Row，依序把 Values 寫入 Scan 的目標
// nil 值寫入零值；型別可轉換時自動轉換 (例如 string -> model.Role)
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return scanValues(r.Values, dest)
}

// FakeRows 實作 pgx.Rows，每個元素是一列
type FakeRows struct {
	Data    [][]any
	ScanErr error
	IterErr error
	idx     int
	closed  bool
}

func (r *FakeRows) Close()                                       { r.closed = true }
func (r *FakeRows) Err() error                                   { return r.IterErr }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Next() bool                                   { return !r.closed && r.idx < len(r.Data) }
func (r *FakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	vals := r.Data[r.idx]
	r.idx++
	return scanValues(vals, dest)
}

// Closed 回報 Close 是否被呼叫
func (r *FakeRows) Closed() bool { return r.closed }

func scanValues(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("fake scan: %d values for %d destinations", len(vals), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("fake scan: destination %d is not a pointer", i)
		}
		elem := target.Elem()
		if vals[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		v := reflect.ValueOf(vals[i])
		switch {
		case v.Type().AssignableTo(elem.Type()):
			elem.Set(v)
		case v.Type().ConvertibleTo(elem.Type()):
			elem.Set(v.Convert(elem.Type()))
		default:
			return fmt.Errorf("fake scan: cannot assign %T to %s", vals[i], elem.Type())
		}
	}
	return nil
}
