// Package sleep folds chronologically ordered guard events into per-guard
// minute tables.
package sleep

import "github.com/okian/nightwatch/internal/domain/model"

// Table counts, per minute of the hour, the nights a guard was asleep.
type Table [model.MinutesPerHour]int

// Total returns the number of minutes asleep across all nights.
func (t *Table) Total() int {
	sum := 0
	for _, c := range t {
		sum += c
	}
	return sum
}

// mark increments the half-open minute range [from, to).
func (t *Table) mark(from, to int) {
	for m := from; m < to; m++ {
		t[m]++
	}
}

// Tables maps guards to their sleep tables and remembers the order in which
// guards were first seen, so every reduction over it is deterministic.
type Tables struct {
	order  []model.GuardID
	tables map[model.GuardID]*Table
	shifts map[model.GuardID]int
}

// NewTables returns an empty collection.
func NewTables() *Tables {
	return &Tables{
		tables: make(map[model.GuardID]*Table),
		shifts: make(map[model.GuardID]int),
	}
}

// ensure returns the table for id, creating an all-zero one on first sight.
func (ts *Tables) ensure(id model.GuardID) *Table {
	t, ok := ts.tables[id]
	if !ok {
		t = &Table{}
		ts.tables[id] = t
		ts.order = append(ts.order, id)
	}
	return t
}

// Get returns the table for id.
func (ts *Tables) Get(id model.GuardID) (*Table, bool) {
	t, ok := ts.tables[id]
	return t, ok
}

// Guards returns guard ids in first-seen order.
func (ts *Tables) Guards() []model.GuardID {
	out := make([]model.GuardID, len(ts.order))
	copy(out, ts.order)
	return out
}

// Shifts returns how many shifts id started.
func (ts *Tables) Shifts(id model.GuardID) int { return ts.shifts[id] }

// Len returns the number of guards seen.
func (ts *Tables) Len() int { return len(ts.order) }
