package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medsync/storage"
	"medsync/utils"

	"github.com/golang-jwt/jwt"
)

// ErrNoSession is returned when no professional is signed in.
var ErrNoSession = errors.New("no active session")

// ErrSessionExpired is returned when the stored bearer token has expired.
var ErrSessionExpired = errors.New("session token expired")

// Session is the signed-in professional's identity as issued by the remote
// authentication endpoints.
type Session struct {
	ProfessionalID string    `json:"professionalId"`
	Email          string    `json:"email,omitempty"`
	Token          string    `json:"token,omitempty"`
	SavedAt        time.Time `json:"savedAt"`
}

// Manager persists the session in the key-value store and answers identity
// questions for the rest of the agent.
type Manager struct {
	Store storage.KVStore
}

func NewManager(store storage.KVStore) *Manager {
	return &Manager{Store: store}
}

// Save stores the session and mirrors the professional ID under its own key.
func (m *Manager) Save(ctx context.Context, s Session) error {
	s.SavedAt = time.Now()
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.Store.Set(ctx, utils.StoreKeySession, string(data)); err != nil {
		return err
	}
	return m.Store.Set(ctx, utils.StoreKeyUserID, s.ProfessionalID)
}

// Current returns the stored session, checking token expiry when the token
// carries an exp claim.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	raw, err := m.Store.Get(ctx, utils.StoreKeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if s.Token != "" {
		expiry, err := TokenExpiry(s.Token)
		if err == nil && !expiry.IsZero() && time.Now().After(expiry) {
			return nil, ErrSessionExpired
		}
	}
	return &s, nil
}

// ProfessionalID is a convenience over Current for callers that only need
// the identity key.
func (m *Manager) ProfessionalID(ctx context.Context) (string, error) {
	s, err := m.Current(ctx)
	if err != nil {
		return "", err
	}
	return s.ProfessionalID, nil
}

// Token returns the current bearer token, or "" when signed out. Shaped to
// plug into the remote API client's token supplier.
func (m *Manager) Token(ctx context.Context) string {
	s, err := m.Current(ctx)
	if err != nil {
		return ""
	}
	return s.Token
}

// Clear signs the professional out.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.Store.Delete(ctx, utils.StoreKeySession); err != nil {
		return err
	}
	return m.Store.Delete(ctx, utils.StoreKeyUserID)
}

// TokenExpiry extracts the exp claim from a JWT without verifying its
// signature; the remote service is the authority, the agent only needs to
// know when to prompt for a fresh sign-in.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, nil
	}
	return time.Unix(int64(exp), 0), nil
}
