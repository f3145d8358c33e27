package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medsync/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderQueue schedules delayed reminder deliveries and can cancel ones
// that have not fired yet. Handles identify scheduled entries.
type ReminderQueue interface {
	Enqueue(payload models.ReminderPayload, fireAt time.Time) (handle string, err error)
	Cancel(handle string) error
}

// AsynqReminderQueue backs ReminderQueue with the Redis-based asynq queue.
type AsynqReminderQueue struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
}

func NewAsynqReminderQueue(redisOpts asynq.RedisClientOpt) *AsynqReminderQueue {
	return &AsynqReminderQueue{
		Client:    asynq.NewClient(redisOpts),
		Inspector: asynq.NewInspector(redisOpts),
	}
}

func (q *AsynqReminderQueue) Enqueue(payload models.ReminderPayload, fireAt time.Time) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeSendReminder, b)
	info, err := q.Client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.TaskID(payload.ReminderID))
	if err != nil {
		return "", fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return info.ID, nil
}

func (q *AsynqReminderQueue) Cancel(handle string) error {
	err := q.Inspector.DeleteTask("default", handle)
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		return fmt.Errorf("failed to cancel reminder %s: %w", handle, err)
	}
	return nil
}

func (q *AsynqReminderQueue) Close() error {
	return q.Client.Close()
}
