package plan

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"typed-builder/internal/goexpr"
)

// errCycle is returned by topoSort when the graph is not acyclic.
var errCycle = errors.New("cycle detected")

// topoSort returns indices in execution order.
//
// Nodes are by index in 0..n-1.
// depsFn(i) yields indices that must be executed before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. If a cycle exists, the partial order and errCycle are
// returned.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		deps := depsFn(i)
		for _, d := range deps {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		return order, errCycle
	}

	return order, nil
}

// DefaultDeps returns the fields a default expression refers to, by name,
// in ordinal order. Unparsable expressions have no dependencies.
func DefaultDeps(expr string, fields []FieldSpec) []string {
	idents, err := goexpr.Idents(expr)
	if err != nil {
		return nil
	}

	var deps []string

	for i := range fields {
		if _, found := slices.BinarySearch(idents, fields[i].Name); found {
			deps = append(deps, fields[i].Name)
		}
	}

	return deps
}

// CycleError reports default expressions that depend on each other.
type CycleError struct {
	// Fields lists the fields left unordered, in ordinal order.
	Fields []string
}

func (e *CycleError) Error() string {
	return "default expressions form a dependency cycle: " + strings.Join(e.Fields, ", ")
}

// BindingOrder returns the order in which finalize binds fields: declaration
// order, except that a field whose default refers to a later field is bound
// after it. A default referring to its own field is a cycle.
func BindingOrder(fields []FieldSpec) ([]int, error) {
	index := make(map[string]int, len(fields))
	for i := range fields {
		index[fields[i].Name] = i
	}

	order, err := topoSort(len(fields), func(i int) []int {
		var deps []int
		for _, name := range fields[i].Deps {
			deps = append(deps, index[name])
		}

		return deps
	})
	if errors.Is(err, errCycle) {
		bound := make(map[int]bool, len(order))
		for _, i := range order {
			bound[i] = true
		}

		cyc := &CycleError{}

		for i := range fields {
			if !bound[i] {
				cyc.Fields = append(cyc.Fields, fields[i].Name)
			}
		}

		return nil, cyc
	}

	return order, err
}
