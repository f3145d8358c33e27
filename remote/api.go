// File: remote/api.go
package remote

import (
	"context"
	"fmt"

	"medsync/models"
)

// ScheduleAPI defines the operations the agent performs against the remote
// schedule service.
type ScheduleAPI interface {
	// FetchSchedule retrieves the full availability map for a professional.
	FetchSchedule(ctx context.Context, professionalID string) (models.Schedule, error)
	// SaveSchedule replaces the professional's availability with the given
	// day-keyed map. The idempotency key correlates retries of one submission.
	SaveSchedule(ctx context.Context, professionalID string, availability models.Schedule, idempotencyKey string) error
	// CreateRecurringSlots bulk-creates recurring availability.
	CreateRecurringSlots(ctx context.Context, professionalID string, shifts []models.Shift, recurrence models.RecurrencePolicy, idempotencyKey string) error
	// FetchScheduleForDate retrieves the slots for one day.
	FetchScheduleForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error)
	// Ping is a cheap reachability probe.
	Ping(ctx context.Context) error
}

// APIError is a transport or protocol failure from the schedule service.
type APIError struct {
	Operation string
	Status    int
	Message   string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: schedule service returned %d: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}
