package parser

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedLine  = errors.New("malformed log line")
	ErrMissingGuardID = errors.New("guard line without id")
	ErrUnknownEvent   = errors.New("unknown event description")
	ErrEmptyLog       = errors.New("log contains no events")
)
