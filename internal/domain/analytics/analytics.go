// Package analytics reduces per-guard sleep tables to the answers reported
// by the CLI.
//
// Every reduction walks guards in first-seen order, so ties resolve to the
// guard that appeared first in the log and results are deterministic.
package analytics

import (
	"slices"

	"github.com/okian/nightwatch/internal/domain/model"
	"github.com/okian/nightwatch/internal/domain/sleep"
)

// DefaultTopN is the ranking length printed by default.
const DefaultTopN = 10

// Report is the result of a full analysis.
type Report struct {
	// Ranking lists the sleepiest guards, least to most total sleep.
	Ranking []model.GuardID

	// Strategy 1: sleepiest guard overall and that guard's sleepiest minute.
	Guard   model.GuardID
	Table   sleep.Table
	Total   int
	Minute  int
	Product int

	// Strategy 2: the guard most frequently asleep on a single minute.
	Frequent FrequentMinute
}

// FrequentMinute is a (guard, minute) pair and its counter value.
type FrequentMinute struct {
	Guard   model.GuardID
	Minute  int
	Nights  int
	Product int
}

// Analyze runs every reduction over tables.
func Analyze(tables *sleep.Tables, topN int) (Report, error) {
	guard, err := SleepiestGuard(tables)
	if err != nil {
		return Report{}, err
	}
	table, _ := tables.Get(guard)
	minute, _ := SleepiestMinute(table)
	freq, err := MostFrequentMinute(tables)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Ranking:  Ranking(tables, topN),
		Guard:    guard,
		Table:    *table,
		Total:    table.Total(),
		Minute:   minute,
		Product:  int(guard) * minute,
		Frequent: freq,
	}, nil
}

// Ranking returns the n guards with the most total sleep, ordered from least
// to most. Equal totals keep first-seen order.
func Ranking(tables *sleep.Tables, n int) []model.GuardID {
	guards := tables.Guards()
	totals := make(map[model.GuardID]int, len(guards))
	for _, id := range guards {
		t, _ := tables.Get(id)
		totals[id] = t.Total()
	}
	slices.SortStableFunc(guards, func(a, b model.GuardID) int {
		return totals[a] - totals[b]
	})
	if n >= 0 && n < len(guards) {
		guards = guards[len(guards)-n:]
	}
	return guards
}

// SleepiestGuard returns the guard with the highest total sleep.
func SleepiestGuard(tables *sleep.Tables) (model.GuardID, error) {
	guards := tables.Guards()
	if len(guards) == 0 {
		return 0, ErrNoGuards
	}
	best, bestTotal := guards[0], -1
	for _, id := range guards {
		t, _ := tables.Get(id)
		if total := t.Total(); total > bestTotal {
			best, bestTotal = id, total
		}
	}
	return best, nil
}

// SleepiestMinute returns the minute with the highest counter and its value.
// Ties resolve to the lowest minute.
func SleepiestMinute(t *sleep.Table) (minute, count int) {
	for m, c := range t {
		if c > count {
			minute, count = m, c
		}
	}
	return minute, count
}

// MostFrequentMinute returns the guard asleep most often on one minute.
func MostFrequentMinute(tables *sleep.Tables) (FrequentMinute, error) {
	guards := tables.Guards()
	if len(guards) == 0 {
		return FrequentMinute{}, ErrNoGuards
	}
	best := FrequentMinute{Guard: guards[0], Nights: -1}
	for _, id := range guards {
		t, _ := tables.Get(id)
		if m, c := SleepiestMinute(t); c > best.Nights {
			best = FrequentMinute{Guard: id, Minute: m, Nights: c}
		}
	}
	best.Product = int(best.Guard) * best.Minute
	return best, nil
}
