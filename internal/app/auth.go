package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"kwiz-client/internal/domain"
)

// CredentialStore abstracts how the session credential is persisted
// (memory, file, Redis).
type CredentialStore interface {
	Load(ctx context.Context) (domain.Credential, bool, error)
	Save(ctx context.Context, credential domain.Credential) error
	Clear(ctx context.Context) error
}

// AuthAPI is the slice of the remote service the authenticator needs.
type AuthAPI interface {
	Login(ctx context.Context, phone, password string) (domain.Credential, error)
	Register(ctx context.Context, name, phone, password string) (domain.Credential, error)
}

// LoginInput carries login credentials.
type LoginInput struct {
	Phone    string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterInput carries account creation fields.
type RegisterInput struct {
	Name     string `validate:"required"`
	Phone    string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// Authenticator owns the login/logout/restore use cases over a
// credential store.
type Authenticator struct {
	api      AuthAPI
	store    CredentialStore
	validate *validator.Validate
}

func NewAuthenticator(api AuthAPI, store CredentialStore) *Authenticator {
	return &Authenticator{
		api:      api,
		store:    store,
		validate: validator.New(),
	}
}

// Login exchanges credentials for a token and persists it. A failed
// attempt leaves the store untouched.
func (a *Authenticator) Login(ctx context.Context, input LoginInput) (domain.Credential, error) {
	if err := a.validate.Struct(input); err != nil {
		return domain.Credential{}, fmt.Errorf("invalid login input: %w", err)
	}
	credential, err := a.api.Login(ctx, input.Phone, input.Password)
	if err != nil {
		return domain.Credential{}, err
	}
	if err := a.store.Save(ctx, credential); err != nil {
		return domain.Credential{}, fmt.Errorf("persist credential: %w", err)
	}
	return credential, nil
}

// Register creates an account and persists the resulting credential.
func (a *Authenticator) Register(ctx context.Context, input RegisterInput) (domain.Credential, error) {
	if err := a.validate.Struct(input); err != nil {
		return domain.Credential{}, fmt.Errorf("invalid register input: %w", err)
	}
	credential, err := a.api.Register(ctx, input.Name, input.Phone, input.Password)
	if err != nil {
		return domain.Credential{}, err
	}
	if err := a.store.Save(ctx, credential); err != nil {
		return domain.Credential{}, fmt.Errorf("persist credential: %w", err)
	}
	return credential, nil
}

// Logout clears the persisted credential unconditionally; clearing an
// empty store is a no-op.
func (a *Authenticator) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// Restore loads the persisted credential if present. No expiry check is
// performed; a stale token surfaces as a failed authenticated call later.
func (a *Authenticator) Restore(ctx context.Context) (domain.Credential, bool, error) {
	return a.store.Load(ctx)
}
