// File: internal/paramset/table.go
package paramset

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDuplicateKey is returned when a table would contain the same name twice.
	ErrDuplicateKey = errors.New("duplicate parameter name")
	// ErrInvalidValue is returned for NaN or infinite target values.
	ErrInvalidValue = errors.New("invalid parameter value")
	// ErrEmptyName is returned for an entry without a name.
	ErrEmptyName = errors.New("empty parameter name")
)

// Entry is one name/value pair of a Table.
type Entry struct {
	Name  string
	Value float64
}

// Table is an ordered, immutable mapping from parameter name to target value.
// Insertion order is preserved and determines application order.
// The zero value is an empty table.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable builds a table from entries in the given order.
func NewTable(entries ...Entry) (Table, error) {
	t := Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return Table{}, ErrEmptyName
		}
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return Table{}, fmt.Errorf("%w: %s = %v", ErrInvalidValue, e.Name, e.Value)
		}
		if _, dup := t.index[e.Name]; dup {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateKey, e.Name)
		}
		t.index[e.Name] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// MustTable is like NewTable but panics on error. Intended for literals.
func MustTable(entries ...Entry) Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in table order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns the parameter names in table order.
func (t Table) Names() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Name
	}
	return out
}

// Get returns the target value for name.
func (t Table) Get(name string) (float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Value, true
}

// Has reports whether name is in the table.
func (t Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}
