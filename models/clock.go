package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a wall-clock time stored as minutes from midnight
// (e.g., 420 for 7:00 AM). It marshals to and from "HH:mm".
type ClockTime int

// ParseClockTime parses an "HH:mm" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("clock time must be an \"HH:mm\" string: %w", err)
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DateLayout is the calendar-day format used throughout the schedule domain.
const DateLayout = "2006-01-02"

// ParseDate validates a "YYYY-MM-DD" string and returns its day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
