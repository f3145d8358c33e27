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

// PreReminderLead is how far ahead of a task's start the early reminder
// fires.
const PreReminderLead = 10 * time.Minute

// ReminderScheduler arranges time-offset reminders for the current task
// list. Recomputation cancels superseded schedules instead of stacking
// duplicates.
type ReminderScheduler struct {
	Queue ReminderQueue
	Store storage.KVStore

	// Now is the clock; overridable in tests.
	Now func() time.Time

	mu      sync.Mutex
	handles map[string][]string // task ID -> queued reminder handles
}

func NewReminderScheduler(queue ReminderQueue, store storage.KVStore) *ReminderScheduler {
	return &ReminderScheduler{
		Queue:   queue,
		Store:   store,
		Now:     time.Now,
		handles: make(map[string][]string),
	}
}

// Sync reconciles the queued reminders with the given task list: reminders
// for removed or changed tasks are cancelled, and each remaining task gets a
// reminder at its start time plus one ten minutes earlier. The pre-reminder
// is skipped when fewer than ten minutes remain; both are skipped when the
// start has already passed.
func (r *ReminderScheduler) Sync(ctx context.Context, taskList []models.Task) error {
	logger := utils.GetLogger()
	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Cancel everything previously scheduled; the list below is authoritative.
	for taskID, handles := range r.handles {
		for _, h := range handles {
			if err := r.Queue.Cancel(h); err != nil {
				logger.Warn("Failed to cancel superseded reminder", zap.String("taskId", taskID), zap.Error(err))
			}
		}
	}
	r.handles = make(map[string][]string)

	var firstErr error
	for _, task := range taskList {
		start, _, err := task.TimeRange()
		if err != nil {
			logger.Warn("Skipping task with unparseable time", zap.String("taskId", task.ID), zap.Error(err))
			continue
		}

		startAt := time.Date(now.Year(), now.Month(), now.Day(),
			int(start)/60, int(start)%60, 0, 0, now.Location())
		if !startAt.After(now) {
			continue
		}

		if handle, err := r.enqueue(task, "Task Reminder", task.Description, startAt); err != nil {
			firstErr = firstOf(firstErr, err)
		} else {
			r.handles[task.ID] = append(r.handles[task.ID], handle)
		}

		preAt := startAt.Add(-PreReminderLead)
		if preAt.After(now) {
			body := fmt.Sprintf("Your task %q is coming up in 10 minutes.", task.Description)
			if handle, err := r.enqueue(task, "Upcoming Task Reminder", body, preAt); err != nil {
				firstErr = firstOf(firstErr, err)
			} else {
				r.handles[task.ID] = append(r.handles[task.ID], handle)
			}
		}
	}

	if err := r.persistHandles(ctx); err != nil {
		firstErr = firstOf(firstErr, err)
	}
	return firstErr
}

func (r *ReminderScheduler) enqueue(task models.Task, title, body string, fireAt time.Time) (string, error) {
	payload := models.ReminderPayload{
		ReminderID: uuid.NewString(),
		TaskID:     task.ID,
		Title:      title,
		Body:       body,
		FireDate:   fireAt.Format(time.RFC3339),
	}
	handle, err := r.Queue.Enqueue(payload, fireAt)
	if err != nil {
		return "", fmt.Errorf("failed to schedule reminder for task %s: %w", task.ID, err)
	}
	return handle, nil
}

// Handles returns a copy of the bookkeeping map, for inspection.
func (r *ReminderScheduler) Handles() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]string, len(r.handles))
	for id, hs := range r.handles {
		copied := make([]string, len(hs))
		copy(copied, hs)
		out[id] = copied
	}
	return out
}

// persistHandles mirrors the handle map to the store so a restarted agent
// can cancel reminders it scheduled in a previous run.
func (r *ReminderScheduler) persistHandles(ctx context.Context) error {
	data, err := json.Marshal(r.handles)
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, utils.ReminderHandlePrefix+"all", string(data))
}

// LoadHandles restores the persisted handle map after a restart.
func (r *ReminderScheduler) LoadHandles(ctx context.Context) error {
	raw, err := r.Store.Get(ctx, utils.ReminderHandlePrefix+"all")
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	handles := make(map[string][]string)
	if err := json.Unmarshal([]byte(raw), &handles); err != nil {
		return fmt.Errorf("failed to unmarshal reminder handles: %w", err)
	}

	r.mu.Lock()
	r.handles = handles
	r.mu.Unlock()
	return nil
}

func firstOf(current, candidate error) error {
	if current != nil {
		return current
	}
	return candidate
}
