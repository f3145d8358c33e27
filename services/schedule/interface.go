package schedule

import (
	"context"

	"medsync/models"
)

// State is the synchronizer's lifecycle phase.
type State string

const (
	StateIdle       State = "idle"
	StateFetching   State = "fetching"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateError      State = "error"
)

// Synchronizer owns the in-memory schedule and keeps it consistent with the
// remote schedule service and the persistent store.
type Synchronizer interface {
	// Hydrate loads the last persisted schedule from the store, if any.
	Hydrate(ctx context.Context) error
	// Fetch pulls the canonical schedule for a professional and persists it.
	// On failure the prior in-memory and persisted state are left untouched.
	Fetch(ctx context.Context, professionalID string) (models.Schedule, error)
	// Submit sends candidate shifts as a day-keyed availability payload and,
	// on success, re-fetches the canonical schedule. On failure candidates
	// stay local and the error is surfaced.
	Submit(ctx context.Context, professionalID string, candidates []models.Shift) error
	// SubmitRecurring bulk-creates recurring availability, then re-fetches.
	SubmitRecurring(ctx context.Context, professionalID string, candidates []models.Shift, recurrence models.RecurrencePolicy) error
	// Subscribe consumes the push channel until the context ends or the
	// connection drops; each message fully replaces the schedule.
	Subscribe(ctx context.Context, professionalID string) error
	// FetchForDate returns one day's slots without touching canonical state.
	FetchForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error)
	// UpdateSlot applies a local-only optimistic mutation to one slot.
	// Durability requires an explicit Submit.
	UpdateSlot(ctx context.Context, slotID string, update models.SlotUpdate) error
	// Snapshot returns a copy of the schedule and its current version.
	Snapshot() (models.Schedule, uint64)
	// State reports the current lifecycle phase.
	State() State
}

// PushSubscriber is the push-channel dependency of the synchronizer.
type PushSubscriber interface {
	Subscribe(ctx context.Context, professionalID string, onUpdate func(models.Schedule)) error
}
