package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"

	// Flashes only need to survive one redirect.
	flashTTL = 10 * time.Minute
)

// Session is the server-side record bound to a browser's cookie token.
type Session struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// KV is the storage the session store runs on. Implemented by cache.Client;
// Get returns nil for missing keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store keeps authenticated sessions and flash messages keyed by the cookie
// token. Expiry is owned by the TTL, not the application.
type Store interface {
	NewToken() string
	Create(ctx context.Context, token string, userID uint, email string) error
	Get(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
	AddFlash(ctx context.Context, token string, flash Flash) error
	PopFlashes(ctx context.Context, token string) ([]Flash, error)
}

type store struct {
	kv  KV
	ttl time.Duration
}

// NewStore builds a session store over kv with the given session TTL.
func NewStore(kv KV, ttl time.Duration) Store {
	return &store{kv: kv, ttl: ttl}
}

func (s *store) NewToken() string {
	return uuid.New().String()
}

// Create binds token to an authenticated user.
func (s *store) Create(ctx context.Context, token string, userID uint, email string) error {
	payload, err := json.Marshal(Session{UserID: userID, Email: email})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+token, payload, s.ttl)
}

// Get returns the session for token, or nil if none exists.
func (s *store) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	data, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Destroy clears the session record. Destroying an absent session is a no-op.
func (s *store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.kv.Delete(ctx, sessionKeyPrefix+token)
}

// AddFlash appends a notice for the next page render under token.
func (s *store) AddFlash(ctx context.Context, token string, flash Flash) error {
	if token == "" {
		return nil
	}
	flashes, err := s.readFlashes(ctx, token)
	if err != nil {
		return err
	}
	flashes = append(flashes, flash)
	payload, err := json.Marshal(flashes)
	if err != nil {
		return fmt.Errorf("marshal flashes: %w", err)
	}
	return s.kv.Set(ctx, flashKeyPrefix+token, payload, flashTTL)
}

// PopFlashes returns pending notices and clears them.
func (s *store) PopFlashes(ctx context.Context, token string) ([]Flash, error) {
	flashes, err := s.readFlashes(ctx, token)
	if err != nil || len(flashes) == 0 {
		return nil, err
	}
	if err := s.kv.Delete(ctx, flashKeyPrefix+token); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (s *store) readFlashes(ctx context.Context, token string) ([]Flash, error) {
	data, err := s.kv.Get(ctx, flashKeyPrefix+token)
	if err != nil || data == nil {
		return nil, err
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil, fmt.Errorf("unmarshal flashes: %w", err)
	}
	return flashes, nil
}
