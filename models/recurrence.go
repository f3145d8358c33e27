package models

import "fmt"

// RecurrencePolicy expands one shift template into multiple dated instances.
type RecurrencePolicy string

const (
	RecurrenceNone   RecurrencePolicy = "none"
	RecurrenceDaily  RecurrencePolicy = "daily"
	RecurrenceWeekly RecurrencePolicy = "weekly"
)

// ParseRecurrencePolicy validates a recurrence string from the boundary.
func ParseRecurrencePolicy(s string) (RecurrencePolicy, error) {
	switch RecurrencePolicy(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly:
		return RecurrencePolicy(s), nil
	}
	return "", fmt.Errorf("unknown recurrence policy %q", s)
}
