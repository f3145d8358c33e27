package schedule

import (
	"testing"

	"medsync/models"
)

func clock(t *testing.T, s string) models.ClockTime {
	t.Helper()
	ct, err := models.ParseClockTime(s)
	if err != nil {
		t.Fatalf("bad clock time %q: %v", s, err)
	}
	return ct
}

func TestGenerateSlots_SpanBufferAndBound(t *testing.T) {
	start := clock(t, "09:00")
	end := clock(t, "13:00")
	duration := 30

	slots := GenerateSlots(start, end, duration)
	if len(slots) == 0 {
		t.Fatal("expected slots for a 4-hour window")
	}

	for i, s := range slots {
		if int(s.End-s.Start) != duration {
			t.Errorf("slot %d: span %d, want %d", i, s.End-s.Start, duration)
		}
		if s.End > end {
			t.Errorf("slot %d: end %s past window end %s", i, s.End, end)
		}
		if i > 0 {
			gap := int(s.Start - slots[i-1].End)
			if gap != SlotBuffer {
				t.Errorf("gap between slot %d and %d: %d, want %d", i-1, i, gap, SlotBuffer)
			}
		}
	}
}

func TestGenerateSlots_WindowSmallerThanOneSlot(t *testing.T) {
	slots := GenerateSlots(clock(t, "09:00"), clock(t, "09:15"), 60)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestGenerateSlots_BufferEdge(t *testing.T) {
	// 09:00-10:10 with 60-minute consultations: exactly one slot 09:00-10:00.
	// The buffer pushes the next start to 10:10, whose end would pass the
	// window end.
	slots := GenerateSlots(clock(t, "09:00"), clock(t, "10:10"), 60)
	if len(slots) != 1 {
		t.Fatalf("expected exactly one slot, got %d", len(slots))
	}
	if slots[0].Start.String() != "09:00" || slots[0].End.String() != "10:00" {
		t.Errorf("got slot %s-%s, want 09:00-10:00", slots[0].Start, slots[0].End)
	}
}

func TestGenerateSlots_DegenerateInputs(t *testing.T) {
	cases := []struct {
		name     string
		start    string
		end      string
		duration int
	}{
		{"end equals start", "09:00", "09:00", 30},
		{"end before start", "10:00", "09:00", 30},
		{"zero duration", "09:00", "17:00", 0},
		{"negative duration", "09:00", "17:00", -15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := GenerateSlots(clock(t, tc.start), clock(t, tc.end), tc.duration)
			if slots == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(slots) != 0 {
				t.Errorf("expected empty sequence, got %d slots", len(slots))
			}
		})
	}
}

func TestGenerateSlots_TimeOrdered(t *testing.T) {
	slots := GenerateSlots(clock(t, "08:00"), clock(t, "12:00"), 20)
	for i := 1; i < len(slots); i++ {
		if slots[i].Start <= slots[i-1].Start {
			t.Fatalf("slots out of order at %d: %s after %s", i, slots[i].Start, slots[i-1].Start)
		}
	}
}
