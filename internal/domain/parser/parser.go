// Package parser turns raw guard log lines into chronologically ordered events.
//
// Accepted line grammar:
//
//	[YYYY-MM-DD hh:mm] Guard #<id> begins shift
//	[YYYY-MM-DD hh:mm] falls asleep
//	[YYYY-MM-DD hh:mm] wakes up
package parser

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/okian/nightwatch/internal/domain/model"
)

// TimestampLayout is the layout of the bracketed line prefix.
const TimestampLayout = "2006-01-02 15:04"

var (
	linePattern  = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2})\] (.*)$`)
	guardPattern = regexp.MustCompile(`Guard #(\d+) begins shift`)
)

// ParseLine parses a single log line. The description is classified by the
// first matching keyword: "Guard", then "sleep", then "wakes".
func ParseLine(line string) (model.Event, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return model.Event{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	at, err := time.Parse(TimestampLayout, m[1])
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %q: %w", ErrMalformedLine, line, err)
	}

	ev := model.Event{
		At:     at,
		Minute: at.Minute(),
		Raw:    line,
	}

	desc := m[2]
	switch {
	case strings.Contains(desc, "Guard"):
		g := guardPattern.FindStringSubmatch(desc)
		if g == nil {
			return model.Event{}, fmt.Errorf("%w: %q", ErrMissingGuardID, line)
		}
		id, err := strconv.Atoi(g[1])
		if err != nil {
			return model.Event{}, fmt.Errorf("%w: %q: %w", ErrMissingGuardID, line, err)
		}
		ev.Kind = model.KindShiftStart
		ev.Guard = model.GuardID(id)
	case strings.Contains(desc, "sleep"):
		ev.Kind = model.KindFallAsleep
	case strings.Contains(desc, "wakes"):
		ev.Kind = model.KindWakeUp
	default:
		return model.Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, line)
	}
	return ev, nil
}

// Parse reads the whole log from r, parses every non-blank line and returns
// the events sorted by timestamp. Events sharing a timestamp are ordered by
// kind, then by line text, which matches a plain text sort of the log.
func Parse(ctx context.Context, r io.Reader) ([]model.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	events := make([]model.Event, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse cancelled: %w", err)
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ev, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, ErrEmptyLog
	}

	Sort(events)
	return events, nil
}

// Sort orders events chronologically in place.
func Sort(events []model.Event) {
	slices.SortStableFunc(events, func(a, b model.Event) int {
		if c := a.At.Compare(b.At); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return strings.Compare(a.Raw, b.Raw)
	})
}
