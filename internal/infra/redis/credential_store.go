package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"kwiz-client/internal/domain"
)

const credentialKey = "kwiz:credential"

// CredentialStore keeps the credential in Redis. It covers the key-value
// store arm of the persistence seam, for setups where several terminals
// share one login (lab machines pointing at a local Redis).
type CredentialStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCredentialStore builds a store; ttl <= 0 persists without expiry.
func NewCredentialStore(client *redis.Client, ttl time.Duration) *CredentialStore {
	return &CredentialStore{client: client, ttl: ttl}
}

func (s *CredentialStore) Load(ctx context.Context) (domain.Credential, bool, error) {
	data, err := s.client.Get(ctx, credentialKey).Bytes()
	if err == redis.Nil {
		return domain.Credential{}, false, nil
	}
	if err != nil {
		return domain.Credential{}, false, err
	}
	var credential domain.Credential
	if err := json.Unmarshal(data, &credential); err != nil {
		return domain.Credential{}, false, nil
	}
	return credential, credential.Token != "", nil
}

func (s *CredentialStore) Save(ctx context.Context, credential domain.Credential) error {
	data, err := json.Marshal(credential)
	if err != nil {
		return err
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, credentialKey, data, ttl).Err()
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, credentialKey).Err()
}
