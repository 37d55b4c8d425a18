package sleep

import (
	"fmt"

	"github.com/okian/nightwatch/internal/domain/model"
)

// state is the accumulator threaded through Reduce.
type state struct {
	guard  model.GuardID
	onDuty bool
	asleep bool
	slept  model.Event // the fall asleep event of the open interval
}

// Reduce folds sorted events into per-guard tables.
//
// A shift start selects the guard on duty, a fall asleep records the start
// minute, and a wake up marks [start, wake) on the guard's table. Any event
// sequence that cannot be attributed unambiguously is rejected.
func Reduce(events []model.Event) (*Tables, error) {
	ts := NewTables()
	var st state

	for _, ev := range events {
		switch ev.Kind {
		case model.KindShiftStart:
			if st.asleep {
				return nil, fmt.Errorf("%w: guard #%d asleep since %s when %s", ErrUnterminatedSleep, st.guard, st.slept, ev)
			}
			st.guard = ev.Guard
			st.onDuty = true
			ts.ensure(ev.Guard)
			ts.shifts[ev.Guard]++
		case model.KindFallAsleep:
			if !st.onDuty {
				return nil, fmt.Errorf("%w: %s", ErrNoGuardOnDuty, ev)
			}
			if st.asleep {
				return nil, fmt.Errorf("%w: guard #%d at %s", ErrAlreadyAsleep, st.guard, ev)
			}
			st.asleep = true
			st.slept = ev
		case model.KindWakeUp:
			if !st.onDuty {
				return nil, fmt.Errorf("%w: %s", ErrNoGuardOnDuty, ev)
			}
			if !st.asleep {
				return nil, fmt.Errorf("%w: guard #%d at %s", ErrNotAsleep, st.guard, ev)
			}
			if ev.Minute < st.slept.Minute {
				return nil, fmt.Errorf("%w: guard #%d slept at %s, woke at %s", ErrInvertedInterval, st.guard, st.slept, ev)
			}
			ts.tables[st.guard].mark(st.slept.Minute, ev.Minute)
			st.asleep = false
		default:
			return nil, fmt.Errorf("unexpected event kind %s: %s", ev.Kind, ev)
		}
	}

	if st.asleep {
		return nil, fmt.Errorf("%w: guard #%d asleep since %s", ErrUnterminatedSleep, st.guard, st.slept)
	}
	return ts, nil
}
