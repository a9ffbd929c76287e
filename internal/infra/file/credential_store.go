package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"kwiz-client/internal/domain"
)

// CredentialStore persists the credential as a JSON file in device
// storage so the session survives restarts. Writes go through a
// temp-file rename to avoid torn state.
type CredentialStore struct {
	path string
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

func (s *CredentialStore) Load(_ context.Context) (domain.Credential, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Credential{}, false, nil
		}
		return domain.Credential{}, false, err
	}
	var credential domain.Credential
	if err := json.Unmarshal(data, &credential); err != nil {
		// A corrupt file is treated as logged out rather than fatal.
		return domain.Credential{}, false, nil
	}
	if credential.Token == "" {
		return domain.Credential{}, false, nil
	}
	return credential, true, nil
}

func (s *CredentialStore) Save(_ context.Context, credential domain.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(credential)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *CredentialStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
