package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"medsync/models"
	"medsync/storage"
	"medsync/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService owns the task list: direct entries, tasks derived from
// upcoming appointments, persistence, expiry pruning, and keeping the
// reminder scheduler in step with every change.
type TaskService struct {
	Store     storage.KVStore
	Scheduler *ReminderScheduler

	// Now is the clock; overridable in tests.
	Now func() time.Time

	mu    sync.Mutex
	tasks []models.Task
}

func NewTaskService(store storage.KVStore, scheduler *ReminderScheduler) *TaskService {
	return &TaskService{
		Store:     store,
		Scheduler: scheduler,
		Now:       time.Now,
	}
}

// Load restores the persisted task list. A missing key is an empty list.
func (s *TaskService) Load(ctx context.Context) error {
	raw, err := s.Store.Get(ctx, utils.StoreKeyTasks)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return fmt.Errorf("failed to unmarshal tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// List returns a copy of the current tasks.
func (s *TaskService) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Add appends a task, persists the list and reschedules reminders.
func (s *TaskService) Add(ctx context.Context, description, startTime, endTime string) (models.Task, error) {
	if description == "" {
		return models.Task{}, fmt.Errorf("task description is required")
	}
	task := models.Task{
		ID:          uuid.NewString(),
		Description: description,
		Time:        fmt.Sprintf("%s - %s", startTime, endTime),
	}
	if _, _, err := task.TimeRange(); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()

	return task, s.commit(ctx, snapshot)
}

// Remove deletes a task by ID.
func (s *TaskService) Remove(ctx context.Context, taskID string) error {
	s.mu.Lock()
	kept := s.tasks[:0]
	found := false
	for _, t := range s.tasks {
		if t.ID == taskID {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("task %s not found", taskID)
	}
	return s.commit(ctx, snapshot)
}

// DeriveFromAppointments replaces the task list with entries for upcoming
// appointments, mirroring how the tasks view is populated from bookings.
func (s *TaskService) DeriveFromAppointments(ctx context.Context, appointments []models.Appointment) error {
	now := s.Now()

	var derived []models.Task
	for _, app := range appointments {
		task := models.Task{
			ID:          app.ID,
			Description: "Meet with " + app.PatientName,
			Time:        app.Time,
		}
		start, _, err := task.TimeRange()
		if err != nil {
			continue
		}
		day, err := models.ParseDate(app.Date)
		if err != nil {
			continue
		}
		startAt := time.Date(day.Year(), day.Month(), day.Day(),
			int(start)/60, int(start)%60, 0, 0, now.Location())
		if startAt.After(now) {
			derived = append(derived, task)
		}
	}

	s.mu.Lock()
	s.tasks = derived
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()

	return s.commit(ctx, snapshot)
}

// PruneExpired drops tasks whose end time has passed.
func (s *TaskService) PruneExpired(ctx context.Context) error {
	now := s.Now()
	nowClock := models.ClockTime(now.Hour()*60 + now.Minute())

	s.mu.Lock()
	kept := s.tasks[:0]
	changed := false
	for _, t := range s.tasks {
		_, end, err := t.TimeRange()
		if err == nil && end <= nowClock {
			changed = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.Unlock()

	if !changed {
		return nil
	}
	return s.commit(ctx, snapshot)
}

// StartPruneLoop removes expired tasks once a minute until the context ends.
func (s *TaskService) StartPruneLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.PruneExpired(ctx); err != nil {
					utils.GetLogger().Warn("Failed to prune expired tasks", zap.Error(err))
				}
			}
		}
	}()
}

// commit persists the task list and reschedules reminders off it.
func (s *TaskService) commit(ctx context.Context, snapshot []models.Task) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	if err := s.Store.Set(ctx, utils.StoreKeyTasks, string(data)); err != nil {
		return err
	}
	if s.Scheduler != nil {
		return s.Scheduler.Sync(ctx, snapshot)
	}
	return nil
}
