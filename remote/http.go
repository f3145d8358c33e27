// File: remote/http.go
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medsync/models"
	"medsync/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPScheduleAPI talks to the schedule service over REST. Outbound calls
// share one rate limiter so a misbehaving caller cannot hammer the backend.
type HTTPScheduleAPI struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	token   func() string // bearer token supplier, may return ""
}

// NewHTTPScheduleAPI builds a client for the given base URL. ratePerMin
// bounds outbound requests per minute; token supplies the session bearer
// token when one exists.
func NewHTTPScheduleAPI(baseURL string, timeout time.Duration, ratePerMin int, token func() string) *HTTPScheduleAPI {
	if ratePerMin <= 0 {
		ratePerMin = 60
	}
	return &HTTPScheduleAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), ratePerMin),
		token:   token,
	}
}

func (a *HTTPScheduleAPI) do(ctx context.Context, op, method, url string, body any, idempotencyKey string) ([]byte, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Operation: op, Message: err.Error()}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	if a.token != nil {
		if tok := a.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &APIError{Operation: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Operation: op, Message: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Operation: op, Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage pulls the service's "message" field out of an error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return "request failed"
}

func (a *HTTPScheduleAPI) FetchSchedule(ctx context.Context, professionalID string) (models.Schedule, error) {
	url := fmt.Sprintf("%s/api/schedule/%s", a.baseURL, professionalID)
	data, err := a.do(ctx, "fetchSchedule", http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}

	var body struct {
		Availability json.RawMessage `json:"availability"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Availability == nil {
		return nil, &APIError{Operation: "fetchSchedule", Message: "response missing availability"}
	}

	schedule, err := models.ParseSchedule(body.Availability)
	if err != nil {
		return nil, fmt.Errorf("fetchSchedule: %w", err)
	}
	return schedule, nil
}

func (a *HTTPScheduleAPI) SaveSchedule(ctx context.Context, professionalID string, availability models.Schedule, idempotencyKey string) error {
	url := fmt.Sprintf("%s/api/schedule", a.baseURL)
	payload := map[string]any{
		"userId":       professionalID,
		"availability": availability,
	}
	_, err := a.do(ctx, "saveSchedule", http.MethodPut, url, payload, idempotencyKey)
	return err
}

func (a *HTTPScheduleAPI) CreateRecurringSlots(ctx context.Context, professionalID string, shifts []models.Shift, recurrence models.RecurrencePolicy, idempotencyKey string) error {
	url := fmt.Sprintf("%s/api/schedule/createRecurringSlots", a.baseURL)
	payload := map[string]any{
		"userId":     professionalID,
		"slots":      shifts,
		"recurrence": recurrence,
	}
	_, err := a.do(ctx, "createRecurringSlots", http.MethodPost, url, payload, idempotencyKey)
	return err
}

func (a *HTTPScheduleAPI) FetchScheduleForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, fmt.Errorf("fetchScheduleForDate: %w", err)
	}
	url := fmt.Sprintf("%s/api/schedule/%s/%s", a.baseURL, professionalID, date)
	data, err := a.do(ctx, "fetchScheduleForDate", http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}

	var body struct {
		Slots []models.Slot `json:"slots"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &APIError{Operation: "fetchScheduleForDate", Message: "malformed slots payload"}
	}
	return body.Slots, nil
}

func (a *HTTPScheduleAPI) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, a.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		utils.GetLogger().Debug("schedule service unreachable", zap.Error(err))
		return err
	}
	resp.Body.Close()
	return nil
}
