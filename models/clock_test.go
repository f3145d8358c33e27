package models

import (
	"encoding/json"
	"testing"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30am", 0, true},
		{"", 0, true},
		{"09-30", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClockTime(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClockTime(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClockTimeString(t *testing.T) {
	if got := ClockTime(570).String(); got != "09:30" {
		t.Errorf("String() = %q, want %q", got, "09:30")
	}
	if got := ClockTime(0).String(); got != "00:00" {
		t.Errorf("String() = %q, want %q", got, "00:00")
	}
}

func TestClockTimeJSON(t *testing.T) {
	data, err := json.Marshal(ClockTime(605))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"10:05"` {
		t.Errorf("marshaled %s, want %q", data, `"10:05"`)
	}

	var ct ClockTime
	if err := json.Unmarshal([]byte(`"14:45"`), &ct); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ct != 885 {
		t.Errorf("unmarshaled %d, want 885", ct)
	}

	for _, bad := range []string{`885`, `"25:00"`, `"lunch"`, `null`} {
		if err := json.Unmarshal([]byte(bad), &ct); err == nil {
			t.Errorf("unmarshal %s: expected error", bad)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Errorf("leap day rejected: %v", err)
	}
	for _, bad := range []string{"2024-13-01", "01/02/2024", "2024-2-9", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestTaskTimeRange(t *testing.T) {
	task := Task{ID: "t1", Time: "09:00 - 10:30"}
	start, end, err := task.TimeRange()
	if err != nil {
		t.Fatalf("TimeRange: %v", err)
	}
	if start != 540 || end != 630 {
		t.Errorf("TimeRange = (%d, %d), want (540, 630)", start, end)
	}

	for _, bad := range []string{"09:00", "09:00-10:30 extra - parts", "morning - noon", ""} {
		if _, _, err := (Task{ID: "t2", Time: bad}).TimeRange(); err == nil {
			t.Errorf("TimeRange(%q): expected error", bad)
		}
	}
}
