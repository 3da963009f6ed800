package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"dental-center-management/internal/domain/entity"
	"dental-center-management/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

// SessionStore manages the seeded user registry and the single active
// session. The session is persisted independently of the registry so a
// restart restores the authenticated user.
//
// Credentials are matched against the registry's plaintext passwords,
// mirroring the system being reimplemented. Production use requires
// salted password hashing.
type SessionStore struct {
	kv  storage.Store
	log *logrus.Logger

	mu      sync.RWMutex
	current *entity.User
}

func NewSessionStore(kv storage.Store, log *logrus.Logger) *SessionStore {
	return &SessionStore{kv: kv, log: log}
}

// Initialize seeds the user registry on first run and loads any persisted
// session into memory. Idempotent; safe to call on every startup.
func (s *SessionStore) Initialize(ctx context.Context) error {
	_, err := s.kv.Get(ctx, storage.KeyUsers)
	if errors.Is(err, storage.ErrNotFound) {
		payload, merr := json.Marshal(bootstrapUsers())
		if merr != nil {
			return fmt.Errorf("marshal user registry: %w", merr)
		}
		if serr := s.kv.Set(ctx, storage.KeyUsers, payload); serr != nil {
			return fmt.Errorf("seed user registry: %w", serr)
		}
		s.log.Info("Seeded user registry")
	} else if err != nil {
		return fmt.Errorf("read user registry: %w", err)
	}

	raw, err := s.kv.Get(ctx, storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	s.log.WithField("email", user.Email).Info("Restored persisted session")
	return nil
}

// Login matches credentials against the registry: email case-insensitive,
// password exact. On a match the user becomes the persisted session and
// the call reports true. On no match state is left unchanged and the call
// reports false, with no detail on which field was wrong. The error
// return carries storage failures only.
func (s *SessionStore) Login(ctx context.Context, email, password string) (bool, error) {
	raw, err := s.kv.Get(ctx, storage.KeyUsers)
	if err != nil {
		return false, fmt.Errorf("read user registry: %w", err)
	}

	var users []entity.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return false, fmt.Errorf("decode user registry: %w", err)
	}

	for i := range users {
		if !users[i].MatchesCredentials(email, password) {
			continue
		}
		matched := users[i]

		payload, err := json.Marshal(matched)
		if err != nil {
			return false, fmt.Errorf("marshal session: %w", err)
		}
		if err := s.kv.Set(ctx, storage.KeySession, payload); err != nil {
			return false, fmt.Errorf("persist session: %w", err)
		}

		s.mu.Lock()
		s.current = &matched
		s.mu.Unlock()
		s.log.WithField("email", matched.Email).Info("User logged in")
		return true, nil
	}

	return false, nil
}

// Logout clears the persisted session and the in-memory current user.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// CurrentUser returns the authenticated user, or nil when no session is
// active.
func (s *SessionStore) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}
