package operation

import (
	"fmt"
	"strings"
)

// ❌ ListingError is returned when a per-site listing cannot be decoded
type ListingError struct {
	Operation string
	Site      string
	Err       error
}

func (e *ListingError) Error() string {
	return "failed to decode JSON: " + e.Err.Error()
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// ❌ ExecutionError is returned when a wp-cli step exits non-zero
type ExecutionError struct {
	Command  string
	ExitCode int
	Message  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// ❌ ArgumentError is returned for a missing or unrecognised command option
type ArgumentError struct {
	Option  string   // Option name without dashes
	Value   string   // Offending value, empty when missing
	Allowed []string // Accepted values, if known
}

func (e *ArgumentError) Error() string {
	var msg string
	if e.Value == "" {
		msg = fmt.Sprintf("missing --%s", e.Option)
	} else {
		msg = fmt.Sprintf("unknown %s: %s", e.Option, e.Value)
	}
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(" (expected one of: %s)", strings.Join(e.Allowed, ", "))
	}
	return msg
}
