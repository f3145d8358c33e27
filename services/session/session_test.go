package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"medsync/storage"
	"medsync/utils"

	"github.com/golang-jwt/jwt"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestManager_SaveAndCurrent(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store)

	err := m.Save(context.Background(), Session{
		ProfessionalID: "prof-1",
		Email:          "doc@example.com",
		Token:          signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s, err := m.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if s.ProfessionalID != "prof-1" || s.Email != "doc@example.com" {
		t.Errorf("unexpected session %+v", s)
	}
	if s.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}

	// The professional ID is mirrored under its own key.
	id, err := store.Get(context.Background(), utils.StoreKeyUserID)
	if err != nil || id != "prof-1" {
		t.Errorf("mirrored id = %q, err = %v", id, err)
	}

	got, err := m.ProfessionalID(context.Background())
	if err != nil || got != "prof-1" {
		t.Errorf("ProfessionalID = %q, err = %v", got, err)
	}
}

func TestManager_NoSession(t *testing.T) {
	m := NewManager(storage.NewMemoryStore())

	if _, err := m.Current(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current on empty store = %v, want ErrNoSession", err)
	}
	if token := m.Token(context.Background()); token != "" {
		t.Errorf("Token on empty store = %q, want empty", token)
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	m := NewManager(storage.NewMemoryStore())

	err := m.Save(context.Background(), Session{
		ProfessionalID: "prof-1",
		Token:          signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := m.Current(context.Background()); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Current with expired token = %v, want ErrSessionExpired", err)
	}
	if token := m.Token(context.Background()); token != "" {
		t.Errorf("Token with expired session = %q, want empty", token)
	}
}

func TestManager_TokenWithoutExpClaim(t *testing.T) {
	m := NewManager(storage.NewMemoryStore())

	err := m.Save(context.Background(), Session{
		ProfessionalID: "prof-1",
		Token:          signedToken(t, jwt.MapClaims{"sub": "prof-1"}),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// No exp claim means the session never self-expires.
	if _, err := m.Current(context.Background()); err != nil {
		t.Errorf("Current without exp claim = %v", err)
	}
}

func TestManager_Clear(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store)

	if err := m.Save(context.Background(), Session{ProfessionalID: "prof-1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := m.Current(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("Current after Clear = %v, want ErrNoSession", err)
	}
	if _, err := store.Get(context.Background(), utils.StoreKeyUserID); !errors.Is(err, storage.ErrNotFound) {
		t.Error("mirrored professional id not cleared")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got, err := TokenExpiry(signedToken(t, jwt.MapClaims{"exp": exp.Unix()}))
	if err != nil {
		t.Fatalf("TokenExpiry failed: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("TokenExpiry = %v, want %v", got, exp)
	}

	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}
