package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Schedule maps a date ("YYYY-MM-DD") to the ordered shifts for that date.
// It is the unit of synchronization with the remote schedule service.
type Schedule map[string][]Shift

// ParseSchedule decodes and validates a JSON-encoded schedule. Malformed
// payloads are rejected rather than accepted into state.
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("malformed schedule payload: %w", err)
	}
	// "null" unmarshals to a nil map; it is not a schedule.
	if s == nil {
		return nil, fmt.Errorf("malformed schedule payload: not an object")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the structural invariants of the schedule: every key is a
// valid date, every shift window is non-empty, and every slot lies inside
// its shift. Overlap between shifts is reported separately by Conflicts.
func (s Schedule) Validate() error {
	for date, shifts := range s {
		if _, err := ParseDate(date); err != nil {
			return fmt.Errorf("schedule key: %w", err)
		}
		for i, shift := range shifts {
			if shift.End <= shift.Start {
				return fmt.Errorf("shift %q on %s: end %s not after start %s",
					shift.Name, date, shift.End, shift.Start)
			}
			if shift.Date != "" && shift.Date != date {
				return fmt.Errorf("shift %q filed under %s but dated %s", shift.Name, date, shift.Date)
			}
			for _, slot := range shift.Slots {
				if slot.End <= slot.Start {
					return fmt.Errorf("shift %q on %s: slot %d has end %s not after start %s",
						shift.Name, date, i, slot.End, slot.Start)
				}
				if slot.Start < shift.Start || slot.End > shift.End {
					return fmt.Errorf("shift %q on %s: slot %s-%s outside shift window",
						shift.Name, date, slot.Start, slot.End)
				}
			}
		}
	}
	return nil
}

// Conflict names two shifts on the same date with overlapping windows.
type Conflict struct {
	Date   string `json:"date"`
	First  string `json:"first"`
	Second string `json:"second"`
}

// Conflicts reports every pair of same-date shifts whose [Start,End) windows
// overlap. The invariant is surfaced to the caller, not enforced here.
func (s Schedule) Conflicts() []Conflict {
	var conflicts []Conflict
	for date, shifts := range s {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				if shifts[i].Overlaps(shifts[j]) {
					conflicts = append(conflicts, Conflict{
						Date:   date,
						First:  shifts[i].Name,
						Second: shifts[j].Name,
					})
				}
			}
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Date == conflicts[j].Date {
			return conflicts[i].First < conflicts[j].First
		}
		return conflicts[i].Date < conflicts[j].Date
	})
	return conflicts
}

// Clone returns a deep copy. Callers receive snapshots, never the canonical
// map itself.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for date, shifts := range s {
		copied := make([]Shift, len(shifts))
		copy(copied, shifts)
		for i := range copied {
			slots := make([]Slot, len(shifts[i].Slots))
			copy(slots, shifts[i].Slots)
			copied[i].Slots = slots
		}
		out[date] = copied
	}
	return out
}

// FindSlot locates a slot by ID, returning its date and shift index.
func (s Schedule) FindSlot(slotID string) (date string, shiftIdx, slotIdx int, ok bool) {
	for d, shifts := range s {
		for i, shift := range shifts {
			for j, slot := range shift.Slots {
				if slot.ID == slotID {
					return d, i, j, true
				}
			}
		}
	}
	return "", 0, 0, false
}

// Merge appends the given shifts into the schedule under their own dates.
func (s Schedule) Merge(shifts []Shift) {
	for _, shift := range shifts {
		s[shift.Date] = append(s[shift.Date], shift)
	}
}
