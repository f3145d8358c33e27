// File: remote/push.go
package remote

import (
	"context"
	"fmt"

	"medsync/models"
	"medsync/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PushClient streams full-schedule replacements from the schedule service's
// push channel. There is no reconnect policy: once the connection drops the
// stream is silently over, and an explicit fetch is the recovery path.
type PushClient struct {
	wsURL string
}

func NewPushClient(wsURL string) *PushClient {
	return &PushClient{wsURL: wsURL}
}

// Subscribe dials the push channel for the given professional and invokes
// onUpdate for every inbound schedule replacement. It blocks until the
// connection closes or the context is cancelled. Malformed messages are
// logged and skipped; they never reach the caller.
func (p *PushClient) Subscribe(ctx context.Context, professionalID string, onUpdate func(models.Schedule)) error {
	logger := utils.GetLogger()
	url := fmt.Sprintf("%s/schedule/%s", p.wsURL, professionalID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return &APIError{Operation: "subscribe", Message: err.Error()}
	}

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	logger.Info("Subscribed to schedule updates", zap.String("professionalId", professionalID))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("Schedule push channel closed", zap.Error(err))
			return nil
		}

		schedule, err := models.ParseSchedule(message)
		if err != nil {
			logger.Warn("Discarding malformed schedule push", zap.Error(err))
			continue
		}
		onUpdate(schedule)
	}
}
