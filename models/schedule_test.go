package models

import (
	"reflect"
	"strings"
	"testing"
)

func mustClock(t *testing.T, s string) ClockTime {
	t.Helper()
	ct, err := ParseClockTime(s)
	if err != nil {
		t.Fatalf("ParseClockTime(%q): %v", s, err)
	}
	return ct
}

func testSchedule(t *testing.T) Schedule {
	t.Helper()
	return Schedule{
		"2024-03-04": {
			{
				Name:  "Morning",
				Start: mustClock(t, "09:00"),
				End:   mustClock(t, "12:00"),
				Date:  "2024-03-04",
				Slots: []Slot{
					{ID: "s1", Start: mustClock(t, "09:00"), End: mustClock(t, "10:00")},
					{ID: "s2", Start: mustClock(t, "10:10"), End: mustClock(t, "11:10")},
				},
			},
		},
	}
}

func TestParseScheduleRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{"2024-03-04": [`},
		{"null", `null`},
		{"wrong shape", `["2024-03-04"]`},
		{"bad date key", `{"03/04/2024": []}`},
		{"bad clock time", `{"2024-03-04": [{"name":"A","startTime":"9am","endTime":"12:00","slots":[]}]}`},
		{"inverted shift", `{"2024-03-04": [{"name":"A","startTime":"12:00","endTime":"09:00","slots":[]}]}`},
		{"slot outside shift", `{"2024-03-04": [{"name":"A","startTime":"09:00","endTime":"10:00","slots":[{"startTime":"09:30","endTime":"10:30"}]}]}`},
		{"mismatched shift date", `{"2024-03-04": [{"name":"A","date":"2024-03-05","startTime":"09:00","endTime":"10:00","slots":[]}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseSchedule([]byte(c.payload)); err == nil {
				t.Errorf("ParseSchedule accepted %s", c.payload)
			}
		})
	}
}

func TestParseScheduleRoundTrip(t *testing.T) {
	payload := `{"2024-03-04": [{"name":"Morning","date":"2024-03-04","startTime":"09:00","endTime":"12:00","slots":[{"_id":"s1","startTime":"09:00","endTime":"10:00","isBooked":false}]}]}`
	s, err := ParseSchedule([]byte(payload))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	shift := s["2024-03-04"][0]
	if shift.Name != "Morning" || shift.Start != 540 || shift.End != 720 {
		t.Errorf("unexpected shift %+v", shift)
	}
	if shift.Slots[0].ID != "s1" {
		t.Errorf("unexpected slot %+v", shift.Slots[0])
	}
}

func TestScheduleConflicts(t *testing.T) {
	s := testSchedule(t)
	if got := s.Conflicts(); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %v", got)
	}

	s["2024-03-04"] = append(s["2024-03-04"], Shift{
		Name:  "Overlap",
		Start: mustClock(t, "11:00"),
		End:   mustClock(t, "13:00"),
		Date:  "2024-03-04",
	})
	got := s.Conflicts()
	want := []Conflict{{Date: "2024-03-04", First: "Morning", Second: "Overlap"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Conflicts() = %v, want %v", got, want)
	}

	// Back-to-back windows sharing an endpoint do not conflict.
	s["2024-03-04"][1].Start = mustClock(t, "12:00")
	if got := s.Conflicts(); len(got) != 0 {
		t.Errorf("adjacent shifts reported as conflict: %v", got)
	}
}

func TestScheduleCloneIsIndependent(t *testing.T) {
	original := testSchedule(t)
	clone := original.Clone()

	clone["2024-03-04"][0].Slots[0].IsBooked = true
	clone["2024-03-04"][0].Name = "Changed"
	clone["2024-03-05"] = []Shift{}

	if original["2024-03-04"][0].Slots[0].IsBooked {
		t.Error("mutating clone's slot leaked into original")
	}
	if original["2024-03-04"][0].Name != "Morning" {
		t.Error("mutating clone's shift leaked into original")
	}
	if _, ok := original["2024-03-05"]; ok {
		t.Error("adding a date to clone leaked into original")
	}
}

func TestScheduleFindSlot(t *testing.T) {
	s := testSchedule(t)

	date, shiftIdx, slotIdx, ok := s.FindSlot("s2")
	if !ok {
		t.Fatal("FindSlot missed existing slot")
	}
	if date != "2024-03-04" || shiftIdx != 0 || slotIdx != 1 {
		t.Errorf("FindSlot = (%s, %d, %d)", date, shiftIdx, slotIdx)
	}

	if _, _, _, ok := s.FindSlot("nope"); ok {
		t.Error("FindSlot found a slot that does not exist")
	}
}

func TestScheduleMerge(t *testing.T) {
	s := testSchedule(t)
	s.Merge([]Shift{
		{Name: "Evening", Date: "2024-03-04", Start: mustClock(t, "17:00"), End: mustClock(t, "19:00")},
		{Name: "Morning", Date: "2024-03-05", Start: mustClock(t, "09:00"), End: mustClock(t, "12:00")},
	})

	if len(s["2024-03-04"]) != 2 {
		t.Errorf("expected 2 shifts on 2024-03-04, got %d", len(s["2024-03-04"]))
	}
	if len(s["2024-03-05"]) != 1 {
		t.Errorf("expected 1 shift on 2024-03-05, got %d", len(s["2024-03-05"]))
	}
}

func TestValidateErrorNamesOffendingShift(t *testing.T) {
	s := testSchedule(t)
	shifts := s["2024-03-04"]
	shifts[0].Slots[1].End = mustClock(t, "10:00")
	err := s.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "Morning") {
		t.Errorf("error %q does not name the shift", err)
	}
}

func TestSlotUpdateApply(t *testing.T) {
	slot := Slot{ID: "s1", Start: mustClock(t, "09:00"), End: mustClock(t, "10:00")}

	booked := true
	appt := "appt-1"
	SlotUpdate{IsBooked: &booked, AppointmentID: &appt}.Apply(&slot)
	if !slot.IsBooked || slot.AppointmentID != "appt-1" {
		t.Errorf("update not applied: %+v", slot)
	}
	if slot.Start != 540 || slot.End != 600 {
		t.Errorf("untouched fields changed: %+v", slot)
	}

	// Zero-value update is a no-op.
	before := slot
	SlotUpdate{}.Apply(&slot)
	if slot != before {
		t.Errorf("empty update mutated slot: %+v", slot)
	}
}
