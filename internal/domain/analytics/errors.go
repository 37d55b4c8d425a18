package analytics

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoGuards = errors.New("no guards to analyze")
)
