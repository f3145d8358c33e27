package models

// Slot is a fixed-duration bookable sub-interval of a Shift.
type Slot struct {
	ID            string    `json:"_id,omitempty"`
	Start         ClockTime `json:"startTime"`
	End           ClockTime `json:"endTime"`
	IsBooked      bool      `json:"isBooked"`
	AppointmentID string    `json:"appointmentId,omitempty"`
}

// SlotUpdate carries a partial mutation of one slot. Nil fields are left
// untouched.
type SlotUpdate struct {
	Start         *ClockTime `json:"startTime,omitempty"`
	End           *ClockTime `json:"endTime,omitempty"`
	IsBooked      *bool      `json:"isBooked,omitempty"`
	AppointmentID *string    `json:"appointmentId,omitempty"`
}

// Apply copies the non-nil fields of the update onto the slot.
func (u SlotUpdate) Apply(s *Slot) {
	if u.Start != nil {
		s.Start = *u.Start
	}
	if u.End != nil {
		s.End = *u.End
	}
	if u.IsBooked != nil {
		s.IsBooked = *u.IsBooked
	}
	if u.AppointmentID != nil {
		s.AppointmentID = *u.AppointmentID
	}
}

// Shift is a named working interval on a specific date, subdivided into
// slots. The slot list is derived from (Start, End, consultation duration)
// at creation time; changing those inputs requires rebuilding the slots.
type Shift struct {
	Name  string    `json:"name"`
	Start ClockTime `json:"startTime"`
	End   ClockTime `json:"endTime"`
	Date  string    `json:"date"`
	Slots []Slot    `json:"slots"`
}

// Overlaps reports whether two shifts' [Start,End) windows intersect.
func (s Shift) Overlaps(other Shift) bool {
	return s.Start < other.End && other.Start < s.End
}
