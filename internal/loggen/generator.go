// Package loggen generates well-formed synthetic guard logs together with the
// tables a correct reduction must produce. It backs cmd/gen-log and the
// property tests of the domain packages.
package loggen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/okian/nightwatch/internal/domain/model"
	"github.com/okian/nightwatch/internal/domain/parser"
)

// Constants for shift and nap placement.
const (
	earliestNapMinute = 5  // naps start after every early shift start
	lateShiftHour     = 23 // shifts may start the evening before
	lateShiftMinMin   = 50
	earlyShiftMaxMin  = 5
	guardIDRange      = 4000
)

// ErrInvalidConfig reports an unusable generator configuration.
var ErrInvalidConfig = errors.New("invalid generator config")

// Nap is a half-open sleep interval [From, To) in minutes.
type Nap struct {
	From int
	To   int
}

// Night is one generated shift.
type Night struct {
	Guard model.GuardID
	Shift time.Time
	Date  time.Time // the midnight hour being guarded
	Naps  []Nap
}

// Log is a generated log in shuffled line order.
type Log struct {
	Lines  []string
	Nights []Night
}

// Generate builds a log according to cfg.
func Generate(ctx context.Context, cfg Config) (*Log, error) {
	if cfg.Guards <= 0 || cfg.Nights <= 0 || cfg.MaxNaps < 0 {
		return nil, fmt.Errorf("%w: guards=%d nights=%d max_naps=%d", ErrInvalidConfig, cfg.Guards, cfg.Nights, cfg.MaxNaps)
	}
	if cfg.Guards > guardIDRange {
		return nil, fmt.Errorf("%w: at most %d guards", ErrInvalidConfig, guardIDRange)
	}
	// 2*MaxNaps distinct cut points must fit in the nap window
	if 2*cfg.MaxNaps > model.MinutesPerHour-earliestNapMinute {
		return nil, fmt.Errorf("%w: max_naps=%d does not fit in an hour", ErrInvalidConfig, cfg.MaxNaps)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible logs

	roster := pickRoster(rng, cfg.Guards)
	out := &Log{Nights: make([]Night, 0, cfg.Nights)}

	for i := 0; i < cfg.Nights; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		date := cfg.Start.AddDate(0, 0, i)
		n := Night{
			Guard: roster[rng.Intn(len(roster))],
			Date:  date,
			Shift: shiftStart(rng, date),
			Naps:  pickNaps(rng, cfg.MaxNaps),
		}
		out.Nights = append(out.Nights, n)
		out.Lines = append(out.Lines, n.lines()...)
	}

	rng.Shuffle(len(out.Lines), func(i, j int) {
		out.Lines[i], out.Lines[j] = out.Lines[j], out.Lines[i]
	})
	return out, nil
}

// Expected returns the per-guard minute counters a correct reduction yields.
func (l *Log) Expected() map[model.GuardID][model.MinutesPerHour]int {
	want := make(map[model.GuardID][model.MinutesPerHour]int)
	for _, n := range l.Nights {
		row := want[n.Guard]
		for _, nap := range n.Naps {
			for m := nap.From; m < nap.To; m++ {
				row[m]++
			}
		}
		want[n.Guard] = row
	}
	return want
}

// WriteTo writes the log, one line per event.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range l.Lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (n Night) lines() []string {
	out := make([]string, 0, 1+2*len(n.Naps))
	out = append(out, fmt.Sprintf("[%s] Guard #%d begins shift", n.Shift.Format(parser.TimestampLayout), n.Guard))
	for _, nap := range n.Naps {
		out = append(out,
			fmt.Sprintf("[%s] falls asleep", n.Date.Add(time.Duration(nap.From)*time.Minute).Format(parser.TimestampLayout)),
			fmt.Sprintf("[%s] wakes up", n.Date.Add(time.Duration(nap.To)*time.Minute).Format(parser.TimestampLayout)),
		)
	}
	return out
}

// pickRoster draws count distinct guard ids.
func pickRoster(rng *rand.Rand, count int) []model.GuardID {
	perm := rng.Perm(guardIDRange)
	roster := make([]model.GuardID, count)
	for i := range roster {
		roster[i] = model.GuardID(perm[i] + 1)
	}
	return roster
}

func shiftStart(rng *rand.Rand, date time.Time) time.Time {
	if rng.Intn(2) == 0 {
		eve := date.AddDate(0, 0, -1)
		return eve.Add(lateShiftHour*time.Hour + time.Duration(lateShiftMinMin+rng.Intn(model.MinutesPerHour-lateShiftMinMin))*time.Minute)
	}
	return date.Add(time.Duration(rng.Intn(earlyShiftMaxMin)) * time.Minute)
}

// pickNaps draws up to maxNaps disjoint, ordered intervals in the nap window.
func pickNaps(rng *rand.Rand, maxNaps int) []Nap {
	if maxNaps == 0 {
		return nil
	}
	count := rng.Intn(maxNaps + 1)
	window := rng.Perm(model.MinutesPerHour - earliestNapMinute)[:2*count]
	slices.Sort(window)

	naps := make([]Nap, count)
	for i := range naps {
		naps[i] = Nap{From: window[2*i] + earliestNapMinute, To: window[2*i+1] + earliestNapMinute}
	}
	return naps
}
