package pipeline

import (
	"slices"
	"strings"
)

// UnknownKey collects records whose key is empty.
const UnknownKey = "Unknown"

type Order int

const (
	// InsertionOrder keeps groups in the order their keys were first seen.
	InsertionOrder Order = iota
	Ascending
	Descending
)

// Level is one grouping step. Less overrides the plain string comparison used
// by Ascending and Descending.
type Level[T any] struct {
	Key   func(T) string
	Order Order
	Less  func(a, b string) bool
}

// Group holds every record under Key in input order. Children is set when a
// further level was requested.
type Group[T any] struct {
	Key      string
	Records  []T
	Children []Group[T]
}

// GroupBy partitions records by the first level and recurses into the rest.
// Every record lands in exactly one group per level.
func GroupBy[T any](records []T, levels ...Level[T]) []Group[T] {
	if len(levels) == 0 {
		return []Group[T]{{Records: slices.Clone(records)}}
	}
	lvl := levels[0]

	index := make(map[string]int)
	var groups []Group[T]
	for _, r := range records {
		k := strings.TrimSpace(lvl.Key(r))
		if k == "" {
			k = UnknownKey
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	sortGroups(groups, lvl)

	if len(levels) > 1 {
		for i := range groups {
			groups[i].Children = GroupBy(groups[i].Records, levels[1:]...)
		}
	}
	return groups
}

func sortGroups[T any](groups []Group[T], lvl Level[T]) {
	if lvl.Order == InsertionOrder {
		return
	}
	less := lvl.Less
	if less == nil {
		less = func(a, b string) bool { return a < b }
	}
	cmp := func(a, b Group[T]) int {
		switch {
		case less(a.Key, b.Key):
			return -1
		case less(b.Key, a.Key):
			return 1
		}
		return 0
	}
	if lvl.Order == Descending {
		slices.SortStableFunc(groups, func(a, b Group[T]) int { return cmp(b, a) })
		return
	}
	slices.SortStableFunc(groups, cmp)
}

// Count is the number of records across groups.
func Count[T any](groups []Group[T]) int {
	n := 0
	for _, g := range groups {
		n += len(g.Records)
	}
	return n
}
