package loggen

import "time"

// Default generator settings.
const (
	DefaultGuards  = 20
	DefaultNights  = 400
	DefaultMaxNaps = 3
	DefaultSeed    = 42
)

// Config holds configuration for a synthetic log.
type Config struct {
	Seed    int64     // random seed; equal seeds give equal logs
	Guards  int       // size of the guard roster
	Nights  int       // number of shifts to generate, one per night
	MaxNaps int       // upper bound of sleep intervals per night
	Start   time.Time // date of the first night
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() Config {
	return Config{
		Seed:    DefaultSeed,
		Guards:  DefaultGuards,
		Nights:  DefaultNights,
		MaxNaps: DefaultMaxNaps,
		Start:   time.Date(1518, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}
