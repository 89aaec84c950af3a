// Package session holds the logged-in identity. It is an explicit,
// injected store rather than an ambient global: wire constructs one and
// hands it to whichever component needs it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"resto-client/internal/data/entity"

	"go.uber.org/zap"
)

// stateFile matches the storage key the mobile client used.
const stateFile = "restaurant_user.json"

type Store struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	user *entity.User
}

func NewStore(statePath string, log *zap.Logger) *Store {
	return &Store{
		path: filepath.Join(statePath, stateFile),
		log:  log,
	}
}

// Load initializes the store from the persisted identity. A corrupt
// entry is deleted and treated as logged out; this never surfaces as a
// user-visible error.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("Could not read stored identity", zap.Error(err))
		}
		return
	}

	var user entity.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		s.log.Warn("Stored identity is corrupt, clearing it",
			zap.String("path", s.path),
			zap.Error(err),
		)
		_ = os.Remove(s.path)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.log.Info("Restored session",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
}

// Login sets the identity in memory and persists it.
func (s *Store) Login(user *entity.User) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}

	return nil
}

// Logout clears both the in-memory identity and the persisted entry.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}

func (s *Store) Current() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}
