package daily

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrEmptyCandidates is returned when a choice is requested from an empty candidate list.
var ErrEmptyCandidates = errors.New("no candidates to choose from")

// ErrInvalidCount is returned when the number of requested picks does not fit the candidate list.
var ErrInvalidCount = errors.New("invalid number of picks")

// InvalidDateError is returned when date components do not form a calendar date.
type InvalidDateError struct {
	Year  int
	Month time.Month
	Day   int

	// Value is set if the date was parsed from text.
	Value string
}

func (e InvalidDateError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid date %q", e.Value)
	}
	return fmt.Sprintf("invalid date: year %d, month %d, day %d", e.Year, e.Month, e.Day)
}

// InvalidNamespaceError is returned when namespace contains the separator used to build seed material.
type InvalidNamespaceError struct {
	Namespace string
}

func (e InvalidNamespaceError) Error() string {
	return fmt.Sprintf("namespace %q must not contain %q", e.Namespace, separator)
}
