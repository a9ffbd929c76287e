package memory

import (
	"context"
	"sync"

	"kwiz-client/internal/domain"
)

// CredentialStore is an in-memory implementation of app.CredentialStore,
// used in tests and when persistence is disabled.
type CredentialStore struct {
	mu         sync.RWMutex
	credential domain.Credential
	populated  bool
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

func (s *CredentialStore) Load(_ context.Context) (domain.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.populated, nil
}

func (s *CredentialStore) Save(_ context.Context, credential domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	s.populated = true
	return nil
}

func (s *CredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = domain.Credential{}
	s.populated = false
	return nil
}
