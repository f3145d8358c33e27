package schedule

import (
	"sync"

	"medsync/models"
)

// ShiftInput is the user-entered shift form: a named window on an anchor
// date, a recurrence policy, and the consultation length.
type ShiftInput struct {
	Name       string `json:"name"`
	StartTime  string `json:"startTime"` // "HH:mm"
	EndTime    string `json:"endTime"`   // "HH:mm"
	Date       string `json:"date"`      // "YYYY-MM-DD", the anchor
	Duration   int    `json:"consultationDuration"`
	Recurrence string `json:"recurrence"`
}

// ShiftBuilder validates shift input, expands it across its recurrence dates
// and accumulates the resulting shifts as local candidates awaiting
// submission. A failed validation leaves the candidate list untouched.
type ShiftBuilder struct {
	mu         sync.Mutex
	candidates []models.Shift
}

func NewShiftBuilder() *ShiftBuilder {
	return &ShiftBuilder{}
}

// Add validates the input and appends one dated shift per recurrence date.
// The slot layout is generated once and reused verbatim for every date.
func (b *ShiftBuilder) Add(input ShiftInput) ([]models.Shift, error) {
	if input.Name == "" {
		return nil, newValidationError("name", "required")
	}
	if input.StartTime == "" {
		return nil, newValidationError("startTime", "required")
	}
	if input.EndTime == "" {
		return nil, newValidationError("endTime", "required")
	}
	if input.Date == "" {
		return nil, newValidationError("date", "required")
	}
	if input.Duration <= 0 {
		return nil, newValidationError("consultationDuration", "must be positive")
	}

	start, err := models.ParseClockTime(input.StartTime)
	if err != nil {
		return nil, newValidationError("startTime", err.Error())
	}
	end, err := models.ParseClockTime(input.EndTime)
	if err != nil {
		return nil, newValidationError("endTime", err.Error())
	}
	if end <= start {
		return nil, newValidationError("endTime", "must be after startTime")
	}

	policy := models.RecurrencePolicy(input.Recurrence)
	if input.Recurrence == "" {
		policy = models.RecurrenceNone
	} else if policy, err = models.ParseRecurrencePolicy(input.Recurrence); err != nil {
		return nil, newValidationError("recurrence", err.Error())
	}

	dates, err := ExpandRecurrence(input.Date, policy)
	if err != nil {
		return nil, err
	}

	// One slot layout shared across every recurrence instance.
	layout := GenerateSlots(start, end, input.Duration)

	created := make([]models.Shift, 0, len(dates))
	for _, date := range dates {
		slots := make([]models.Slot, len(layout))
		copy(slots, layout)
		created = append(created, models.Shift{
			Name:  input.Name,
			Start: start,
			End:   end,
			Date:  date,
			Slots: slots,
		})
	}

	b.mu.Lock()
	b.candidates = append(b.candidates, created...)
	b.mu.Unlock()
	return created, nil
}

// Pending returns a copy of the accumulated candidate shifts.
func (b *ShiftBuilder) Pending() []models.Shift {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Shift, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// Clear drops all candidates. Called after a successful submission.
func (b *ShiftBuilder) Clear() {
	b.mu.Lock()
	b.candidates = nil
	b.mu.Unlock()
}

// Availability groups the pending candidates into the day-keyed map the
// remote service expects.
func (b *ShiftBuilder) Availability() models.Schedule {
	pending := b.Pending()
	availability := make(models.Schedule)
	availability.Merge(pending)
	return availability
}
