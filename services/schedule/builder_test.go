package schedule

import (
	"errors"
	"reflect"
	"testing"
)

func validInput() ShiftInput {
	return ShiftInput{
		Name:       "Morning",
		StartTime:  "09:00",
		EndTime:    "12:00",
		Date:       "2024-01-01",
		Duration:   30,
		Recurrence: "none",
	}
}

func TestShiftBuilder_Add(t *testing.T) {
	b := NewShiftBuilder()

	created, err := b.Add(validInput())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(created))
	}
	shift := created[0]
	if shift.Name != "Morning" || shift.Date != "2024-01-01" {
		t.Errorf("unexpected shift %+v", shift)
	}
	if len(shift.Slots) == 0 {
		t.Error("expected generated slots")
	}
	if got := len(b.Pending()); got != 1 {
		t.Errorf("pending count %d, want 1", got)
	}
}

func TestShiftBuilder_MissingFieldIsNoOp(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ShiftInput)
	}{
		{"name", func(in *ShiftInput) { in.Name = "" }},
		{"startTime", func(in *ShiftInput) { in.StartTime = "" }},
		{"endTime", func(in *ShiftInput) { in.EndTime = "" }},
		{"date", func(in *ShiftInput) { in.Date = "" }},
		{"duration", func(in *ShiftInput) { in.Duration = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewShiftBuilder()
			if _, err := b.Add(validInput()); err != nil {
				t.Fatalf("seeding candidate failed: %v", err)
			}
			before := b.Pending()

			in := validInput()
			tc.mutate(&in)
			_, err := b.Add(in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if !reflect.DeepEqual(before, b.Pending()) {
				t.Error("candidate list changed on failed validation")
			}
		})
	}
}

func TestShiftBuilder_RecurrenceReusesSlotLayout(t *testing.T) {
	b := NewShiftBuilder()

	in := validInput()
	in.Recurrence = "weekly"
	created, err := b.Add(in)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("expected 4 weekly shifts, got %d", len(created))
	}

	first := created[0].Slots
	for i, shift := range created[1:] {
		if !reflect.DeepEqual(shift.Slots, first) {
			t.Errorf("shift %d slot layout differs from the first", i+1)
		}
	}

	// Shifts must not share backing arrays: mutating one instance's slot
	// must not leak into its siblings.
	created[0].Slots[0].IsBooked = true
	if created[1].Slots[0].IsBooked {
		t.Error("slot layout shared between recurrence instances")
	}
}

func TestShiftBuilder_ClearAndAvailability(t *testing.T) {
	b := NewShiftBuilder()

	in := validInput()
	in.Recurrence = "daily"
	if _, err := b.Add(in); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	availability := b.Availability()
	if len(availability) != 7 {
		t.Errorf("availability spans %d days, want 7", len(availability))
	}

	b.Clear()
	if len(b.Pending()) != 0 {
		t.Error("Clear left candidates behind")
	}
}

func TestShiftBuilder_EndBeforeStartRejected(t *testing.T) {
	b := NewShiftBuilder()
	in := validInput()
	in.StartTime = "12:00"
	in.EndTime = "09:00"
	if _, err := b.Add(in); err == nil {
		t.Fatal("expected validation error for inverted window")
	}
}
