// Package lifecycle defines the candidate state machine.
//
//	SHORTLISTED ──► SELECTED
//	     │
//	     └────────► REJECTED
//
// SELECTED and REJECTED are terminal.
package lifecycle

import "fmt"

// Status values are stored verbatim in candidates.status.
type Status string

const (
	StatusShortlisted Status = "SHORTLISTED"
	StatusSelected    Status = "SELECTED"
	StatusRejected    Status = "REJECTED"
)

var validTransitions = map[Status][]Status{
	StatusShortlisted: {StatusSelected, StatusRejected},
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusShortlisted, StatusSelected, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown candidate status %q", s)
}

// IsTransitionAllowed reports whether moving from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}

// Outcome maps a quiz score to the status it moves a shortlisted candidate to.
func Outcome(passed bool) Status {
	if passed {
		return StatusSelected
	}
	return StatusRejected
}
