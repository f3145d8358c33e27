package schedule

import (
	"reflect"
	"testing"

	"medsync/models"
)

func TestExpandRecurrence_None(t *testing.T) {
	dates, err := ExpandRecurrence("2024-01-01", models.RecurrenceNone)
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	if !reflect.DeepEqual(dates, []string{"2024-01-01"}) {
		t.Errorf("got %v, want [2024-01-01]", dates)
	}
}

func TestExpandRecurrence_Daily(t *testing.T) {
	dates, err := ExpandRecurrence("2024-01-01", models.RecurrenceDaily)
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	want := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("got %v, want %v", dates, want)
	}
}

func TestExpandRecurrence_Weekly(t *testing.T) {
	dates, err := ExpandRecurrence("2024-01-01", models.RecurrenceWeekly)
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	want := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("got %v, want %v", dates, want)
	}
}

func TestExpandRecurrence_DailyAcrossMonthEnd(t *testing.T) {
	dates, err := ExpandRecurrence("2024-02-27", models.RecurrenceDaily)
	if err != nil {
		t.Fatalf("ExpandRecurrence failed: %v", err)
	}
	// 2024 is a leap year.
	if dates[2] != "2024-02-29" || dates[3] != "2024-03-01" {
		t.Errorf("month rollover wrong: %v", dates)
	}
}

func TestExpandRecurrence_UnknownPolicy(t *testing.T) {
	if _, err := ExpandRecurrence("2024-01-01", models.RecurrencePolicy("monthly")); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestExpandRecurrence_BadDate(t *testing.T) {
	if _, err := ExpandRecurrence("01/01/2024", models.RecurrenceNone); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
