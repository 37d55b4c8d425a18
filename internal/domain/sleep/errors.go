package sleep

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoGuardOnDuty     = errors.New("sleep event before any shift start")
	ErrNotAsleep         = errors.New("wake up without falling asleep")
	ErrAlreadyAsleep     = errors.New("fall asleep while already asleep")
	ErrUnterminatedSleep = errors.New("sleep interval never ended")
	ErrInvertedInterval  = errors.New("wake minute before sleep minute")
)
