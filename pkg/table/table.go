// Package table holds the per-match log as named columns.
//
// Column slices are never modified after they were added. Every write
// replaces the slice, so a Clone can be changed freely while other
// goroutines read the source table.
package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

type Table struct {
	rows    int
	keys    []string // insertion order
	floats  map[string][]float64
	strings map[string][]string
}

func New() *Table {
	return &Table{
		rows:    -1,
		floats:  make(map[string][]float64),
		strings: make(map[string][]string),
	}
}

// FromRows builds a table from one map per cycle.
// Numeric values become float columns, strings become string columns.
// Cells missing in a row are NaN (resp. "").
//
//nolint:gocognit // ok
func FromRows(rows []map[string]any) (*Table, error) {
	t := New()
	t.rows = len(rows)
	kinds := make(map[string]bool) // true for numeric
	for i, row := range rows {
		for k, v := range row {
			_, numeric := toFloat(v)
			_, isString := v.(string)
			if !numeric && !isString {
				return nil, &model.ValidationError{
					Field:  k,
					Value:  v,
					Reason: fmt.Sprintf("unsupported cell type %T in row %d", v, i),
				}
			}
			if prev, ok := kinds[k]; ok {
				if prev != numeric {
					return nil, &model.ValidationError{
						Field: k, Value: v, Reason: "mixed numeric and string cells",
					}
				}
				continue
			}
			kinds[k] = numeric
			t.keys = append(t.keys, k)
		}
	}
	slices.Sort(t.keys)
	for _, k := range t.keys {
		if kinds[k] {
			col := make([]float64, len(rows))
			for i, row := range rows {
				if f, ok := toFloat(row[k]); ok {
					col[i] = f
				} else {
					col[i] = math.NaN()
				}
			}
			t.floats[k] = col
		} else {
			col := make([]string, len(rows))
			for i, row := range rows {
				if s, ok := row[k].(string); ok {
					col[i] = s
				}
			}
			t.strings[k] = col
		}
	}
	return t, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t.rows < 0 {
		return 0
	}
	return t.rows
}

func (t *Table) Keys() []string {
	return slices.Clone(t.keys)
}

func (t *Table) Has(key string) bool {
	_, f := t.floats[key]
	_, s := t.strings[key]
	return f || s
}

func (t *Table) HasAll(keys ...string) bool {
	return lo.EveryBy(keys, t.Has)
}

// Float returns the numeric column for key. The slice must not be modified.
func (t *Table) Float(key string) ([]float64, error) {
	col, ok := t.floats[key]
	if !ok {
		return nil, model.MissingColumn(key)
	}
	return col, nil
}

// Floats returns the numeric columns for all keys or the first missing column error
func (t *Table) Floats(keys ...string) ([][]float64, error) {
	ret := make([][]float64, len(keys))
	for i, k := range keys {
		col, err := t.Float(k)
		if err != nil {
			return nil, err
		}
		ret[i] = col
	}
	return ret, nil
}

// String returns the string column for key. The slice must not be modified.
func (t *Table) String(key string) ([]string, error) {
	col, ok := t.strings[key]
	if !ok {
		return nil, model.MissingColumn(key)
	}
	return col, nil
}

// SetFloat adds or replaces a numeric column. The table takes ownership of values.
func (t *Table) SetFloat(key string, values []float64) error {
	if err := t.checkLen(key, len(values)); err != nil {
		return err
	}
	if _, ok := t.strings[key]; ok {
		delete(t.strings, key)
	} else if _, ok := t.floats[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.floats[key] = values
	return nil
}

// SetString adds or replaces a string column. The table takes ownership of values.
func (t *Table) SetString(key string, values []string) error {
	if err := t.checkLen(key, len(values)); err != nil {
		return err
	}
	if _, ok := t.floats[key]; ok {
		delete(t.floats, key)
	} else if _, ok := t.strings[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.strings[key] = values
	return nil
}

func (t *Table) checkLen(key string, n int) error {
	if t.rows < 0 {
		t.rows = n
		return nil
	}
	if n != t.rows {
		return &model.ValidationError{
			Field:  key,
			Value:  n,
			Reason: fmt.Sprintf("column length must be %d", t.rows),
		}
	}
	return nil
}

// Clone returns a table sharing the column data with t.
func (t *Table) Clone() *Table {
	ret := &Table{
		rows:    t.rows,
		keys:    slices.Clone(t.keys),
		floats:  make(map[string][]float64, len(t.floats)),
		strings: make(map[string][]string, len(t.strings)),
	}
	for k, v := range t.floats {
		ret.floats[k] = v
	}
	for k, v := range t.strings {
		ret.strings[k] = v
	}
	return ret
}

// SelectColumns returns a table with the columns for which keep returns true
func (t *Table) SelectColumns(keep func(key string) bool) *Table {
	ret := &Table{
		rows:    t.rows,
		keys:    lo.Filter(t.keys, func(k string, _ int) bool { return keep(k) }),
		floats:  make(map[string][]float64),
		strings: make(map[string][]string),
	}
	for _, k := range ret.keys {
		if v, ok := t.floats[k]; ok {
			ret.floats[k] = v
		} else {
			ret.strings[k] = t.strings[k]
		}
	}
	return ret
}

// SelectRows returns a table containing only the rows where keep is true
func (t *Table) SelectRows(keep []bool) (*Table, error) {
	if len(keep) != t.Len() {
		return nil, &model.ValidationError{
			Field:  "row mask",
			Value:  len(keep),
			Reason: fmt.Sprintf("mask length must be %d", t.Len()),
		}
	}
	n := lo.CountBy(keep, func(b bool) bool { return b })
	ret := &Table{
		rows:    n,
		keys:    slices.Clone(t.keys),
		floats:  make(map[string][]float64, len(t.floats)),
		strings: make(map[string][]string, len(t.strings)),
	}
	for k, v := range t.floats {
		ret.floats[k] = pick(v, keep, n)
	}
	for k, v := range t.strings {
		ret.strings[k] = pick(v, keep, n)
	}
	return ret, nil
}

func pick[E any](values []E, keep []bool, n int) []E {
	ret := make([]E, 0, n)
	for i, v := range values {
		if keep[i] {
			ret = append(ret, v)
		}
	}
	return ret
}
