// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// MinutesPerHour is the number of slots in a sleep table.
const MinutesPerHour = 60

// GuardID identifies a guard. It is parsed from "Guard #<id> begins shift".
type GuardID int

// Kind classifies a log event.
//
// The declaration order matters: events sharing a timestamp sort as
// shift start, fall asleep, wake up.
type Kind int

const (
	KindUnknown Kind = iota
	KindShiftStart
	KindFallAsleep
	KindWakeUp
)

// String returns a short label used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindShiftStart:
		return "shift_start"
	case KindFallAsleep:
		return "fall_asleep"
	case KindWakeUp:
		return "wake_up"
	default:
		return "unknown"
	}
}

// Event is a single parsed log line.
type Event struct {
	At     time.Time // full timestamp, used for ordering
	Minute int       // minute of the hour, 0-59
	Kind   Kind      // event classification
	Guard  GuardID   // only set for KindShiftStart
	Raw    string    // original line text
}

// String renders the event for diagnostics.
func (e Event) String() string {
	if e.Kind == KindShiftStart {
		return fmt.Sprintf("%s %s #%d", e.At.Format("2006-01-02 15:04"), e.Kind, e.Guard)
	}
	return fmt.Sprintf("%s %s", e.At.Format("2006-01-02 15:04"), e.Kind)
}
