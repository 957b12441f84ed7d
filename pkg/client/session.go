package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"volunteerhub-backend/domain"
)

// SessionTTL matches the lifetime of a server-issued token.
const SessionTTL = 7 * 24 * time.Hour

const TokenEnv = "VH_TOKEN"

type (
	Session struct {
		Token     string               `json:"token"`
		User      *domain.UserResponse `json:"user,omitempty"`
		ExpiresAt time.Time            `json:"expiresAt"`
	}

	// Persister is a source a session can be restored from. Load returns nil, nil when it
	// holds nothing.
	Persister interface {
		Load() (*Session, error)
	}

	// WritablePersister also receives every session change.
	WritablePersister interface {
		Persister
		Save(s Session) error
		Clear() error
	}

	FilePersister struct {
		Path string
	}

	EnvPersister struct {
		Key string
	}
)

// Expired reports whether the session has a known expiry that has passed.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// DefaultSessionPath is ~/.vhctl/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".vhctl", "session.json"), nil
}

func (p FilePersister) Load() (*Session, error) {
	raw, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", p.Path, err)
	}
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

func (p FilePersister) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.Path, raw, 0o600)
}

func (p FilePersister) Clear() error {
	if err := os.Remove(p.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Load yields a token-only session; the user is resolved by the store.
func (p EnvPersister) Load() (*Session, error) {
	key := p.Key
	if key == "" {
		key = TokenEnv
	}
	token := os.Getenv(key)
	if token == "" {
		return nil, nil
	}
	return &Session{Token: token}, nil
}
