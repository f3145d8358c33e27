package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"medsync/models"
	"medsync/remote"
	"medsync/storage"
	"medsync/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSynchronizer implements Synchronizer. All writers go through one
// version-checked commit path, so a slow in-flight fetch cannot clobber a
// newer push replacement.
type DefaultSynchronizer struct {
	API   remote.ScheduleAPI
	Push  PushSubscriber
	Store storage.KVStore

	mu       sync.Mutex
	schedule models.Schedule
	version  uint64
	state    State
}

func NewDefaultSynchronizer(api remote.ScheduleAPI, push PushSubscriber, store storage.KVStore) *DefaultSynchronizer {
	return &DefaultSynchronizer{
		API:      api,
		Push:     push,
		Store:    store,
		schedule: make(models.Schedule),
		state:    StateIdle,
	}
}

// Snapshot returns a deep copy of the schedule and the version it was read
// at. Pass the version back to commit for a compare-and-swap write.
func (s *DefaultSynchronizer) Snapshot() (models.Schedule, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.Clone(), s.version
}

func (s *DefaultSynchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DefaultSynchronizer) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// commit is the single mutation entry point. It replaces the schedule only
// if the caller's version is still current, then persists the replacement.
// The store write happens under the same lock so the persisted value always
// tracks the latest winning commit; two racing winners cannot land their
// writes in the store in the opposite order.
func (s *DefaultSynchronizer) commit(ctx context.Context, expected uint64, next models.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expected != s.version {
		return ErrStaleWrite
	}
	s.schedule = next
	s.version++
	return s.persist(ctx, next)
}

// commitLatest retries the compare-and-swap until it wins. Used by writers
// whose input supersedes whatever is current (push replacements).
func (s *DefaultSynchronizer) commitLatest(ctx context.Context, next models.Schedule) error {
	for {
		s.mu.Lock()
		expected := s.version
		s.mu.Unlock()
		err := s.commit(ctx, expected, next)
		if !errors.Is(err, ErrStaleWrite) {
			return err
		}
	}
}

func (s *DefaultSynchronizer) persist(ctx context.Context, schedule models.Schedule) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		return &SyncError{Phase: "persist", Err: err}
	}
	if err := s.Store.Set(ctx, utils.StoreKeySchedule, string(data)); err != nil {
		return &SyncError{Phase: "persist", Err: err}
	}
	return nil
}

// Hydrate restores the last persisted schedule. A missing key is not an
// error; a corrupt value is.
func (s *DefaultSynchronizer) Hydrate(ctx context.Context) error {
	raw, err := s.Store.Get(ctx, utils.StoreKeySchedule)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return &SyncError{Phase: "hydrate", Err: err}
	}

	schedule, err := models.ParseSchedule([]byte(raw))
	if err != nil {
		return &SyncError{Phase: "hydrate", Err: err}
	}

	s.mu.Lock()
	s.schedule = schedule
	s.version++
	s.state = StateReady
	s.mu.Unlock()
	return nil
}

func (s *DefaultSynchronizer) Fetch(ctx context.Context, professionalID string) (models.Schedule, error) {
	logger := utils.GetLogger()
	s.setState(StateFetching)

	// Remember the version observed before the request so a replacement that
	// lands mid-flight wins over this fetch.
	_, started := s.Snapshot()

	fetched, err := s.API.FetchSchedule(ctx, professionalID)
	if err != nil {
		logger.Error("Failed to fetch schedule", zap.String("professionalId", professionalID), zap.Error(err))
		s.setState(StateError)
		return nil, &SyncError{Phase: "fetch", Err: err}
	}

	if err := s.commit(ctx, started, fetched); err != nil {
		if errors.Is(err, ErrStaleWrite) {
			logger.Warn("Discarding stale fetch result", zap.String("professionalId", professionalID))
			s.setState(StateReady)
			current, _ := s.Snapshot()
			return current, nil
		}
		s.setState(StateError)
		return nil, err
	}

	s.setState(StateReady)
	logger.Info("Schedule synchronized", zap.String("professionalId", professionalID), zap.Int("days", len(fetched)))
	return fetched.Clone(), nil
}

func (s *DefaultSynchronizer) Submit(ctx context.Context, professionalID string, candidates []models.Shift) error {
	availability := make(models.Schedule)
	availability.Merge(candidates)

	s.setState(StateSubmitting)
	key := uuid.NewString()
	if err := s.API.SaveSchedule(ctx, professionalID, availability, key); err != nil {
		utils.GetLogger().Error("Failed to save schedule", zap.String("professionalId", professionalID), zap.Error(err))
		s.setState(StateError)
		return &SyncError{Phase: "submit", Err: err}
	}

	// The submit response is not trusted as complete; always re-synchronize.
	_, err := s.Fetch(ctx, professionalID)
	return err
}

func (s *DefaultSynchronizer) SubmitRecurring(ctx context.Context, professionalID string, candidates []models.Shift, recurrence models.RecurrencePolicy) error {
	s.setState(StateSubmitting)
	key := uuid.NewString()
	if err := s.API.CreateRecurringSlots(ctx, professionalID, candidates, recurrence, key); err != nil {
		utils.GetLogger().Error("Failed to create recurring slots", zap.String("professionalId", professionalID), zap.Error(err))
		s.setState(StateError)
		return &SyncError{Phase: "submit", Err: err}
	}

	_, err := s.Fetch(ctx, professionalID)
	return err
}

func (s *DefaultSynchronizer) Subscribe(ctx context.Context, professionalID string) error {
	logger := utils.GetLogger()
	err := s.Push.Subscribe(ctx, professionalID, func(update models.Schedule) {
		if err := s.commitLatest(ctx, update); err != nil {
			logger.Error("Failed to apply schedule push", zap.Error(err))
			return
		}
		s.setState(StateReady)
		logger.Debug("Applied schedule push", zap.Int("days", len(update)))
	})
	if err != nil {
		return &SyncError{Phase: "subscribe", Err: err}
	}
	return nil
}

func (s *DefaultSynchronizer) FetchForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error) {
	slots, err := s.API.FetchScheduleForDate(ctx, professionalID, date)
	if err != nil {
		return nil, &SyncError{Phase: "fetch", Err: err}
	}
	return slots, nil
}

// UpdateSlot mutates one slot in place, optimistically. The change is
// persisted to the store but never pushed to the remote service; callers
// needing durability there must Submit.
func (s *DefaultSynchronizer) UpdateSlot(ctx context.Context, slotID string, update models.SlotUpdate) error {
	for {
		snapshot, version := s.Snapshot()
		date, shiftIdx, slotIdx, ok := snapshot.FindSlot(slotID)
		if !ok {
			return &SyncError{Phase: "update", Err: errors.New("slot " + slotID + " not found")}
		}

		update.Apply(&snapshot[date][shiftIdx].Slots[slotIdx])

		err := s.commit(ctx, version, snapshot)
		if errors.Is(err, ErrStaleWrite) {
			continue
		}
		return err
	}
}
