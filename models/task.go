package models

import (
	"fmt"
	"strings"
)

// Task is an upcoming item of work with an "HH:mm - HH:mm" time range.
// Tasks are entered directly or derived from upcoming appointments.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Time        string `json:"time"` // "HH:mm - HH:mm"
}

// TimeRange splits the task's time field into its start and end.
func (t Task) TimeRange() (start, end ClockTime, err error) {
	parts := strings.SplitN(t.Time, " - ", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("task %s: time %q is not \"HH:mm - HH:mm\"", t.ID, t.Time)
	}
	start, err = ParseClockTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("task %s: %w", t.ID, err)
	}
	end, err = ParseClockTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("task %s: %w", t.ID, err)
	}
	return start, end, nil
}

// Appointment is the remote service's view of a booked consultation, used to
// derive tasks for the reminder scheduler.
type Appointment struct {
	ID          string `json:"_id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	Time        string `json:"time"` // "HH:mm - HH:mm"
}

// ReminderPayload is the body of a scheduled reminder task.
type ReminderPayload struct {
	ReminderID string `json:"reminderId"`
	TaskID     string `json:"taskId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}
