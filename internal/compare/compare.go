// File: internal/compare/compare.go
package compare

import (
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/xkilldash9x/paramctl/internal/paramset"
)

// DefaultTolerance is the absolute difference below which two values are equal.
const DefaultTolerance = 1e-9

// Options tunes a comparison.
type Options struct {
	// Tolerance is the absolute tolerance for value equality. Negative values
	// are treated as zero.
	Tolerance float64
}

// DefaultOptions returns the options used by Tables.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// Change is a parameter present in both tables with differing values.
type Change struct {
	Name     string
	Expected float64
	Actual   float64
}

// Delta returns Actual - Expected.
func (c Change) Delta() float64 { return c.Actual - c.Expected }

// Result lists the differences between an expected and an actual table.
type Result struct {
	// Missing names are in the expected table only, in expected order.
	Missing []string
	// Extra names are in the actual table only, in actual order.
	Extra []string
	// Changed entries are in both tables, in expected order.
	Changed []Change
	// Diff is a human readable rendering of the differences.
	Diff string
}

// Equal reports whether the tables matched.
func (r Result) Equal() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Changed) == 0
}

// Tables compares expected against actual with DefaultOptions.
func Tables(expected, actual paramset.Table) Result {
	return TablesWithOptions(expected, actual, DefaultOptions())
}

// TablesWithOptions compares expected against actual.
func TablesWithOptions(expected, actual paramset.Table, opts Options) Result {
	tol := math.Max(opts.Tolerance, 0)
	var res Result

	for _, e := range expected.Entries() {
		got, ok := actual.Get(e.Name)
		if !ok {
			res.Missing = append(res.Missing, e.Name)
			continue
		}
		if math.Abs(got-e.Value) > tol {
			res.Changed = append(res.Changed, Change{Name: e.Name, Expected: e.Value, Actual: got})
		}
	}
	for _, e := range actual.Entries() {
		if !expected.Has(e.Name) {
			res.Extra = append(res.Extra, e.Name)
		}
	}

	if !res.Equal() {
		res.Diff = cmp.Diff(asMap(expected), asMap(actual), cmpopts.EquateApprox(0, tol))
	}
	return res
}

func asMap(t paramset.Table) map[string]float64 {
	out := make(map[string]float64, t.Len())
	for _, e := range t.Entries() {
		out[e.Name] = e.Value
	}
	return out
}
