package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"kwiz-client/internal/domain"
)

func TestCredentialStoreSetsAndClearsKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := NewCredentialStore(client, time.Minute)

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	credential := domain.Credential{Token: "abc123", User: domain.User{ID: 1, Name: "Ana"}}
	if err := store.Save(ctx, credential); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !mr.Exists("kwiz:credential") {
		t.Fatalf("expected redis key to be set")
	}

	loaded, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if loaded != credential {
		t.Fatalf("loaded %+v, want %+v", loaded, credential)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if mr.Exists("kwiz:credential") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestCredentialExpiresWithTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := NewCredentialStore(client, time.Minute)

	if err := store.Save(ctx, domain.Credential{Token: "abc123"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("expected credential to expire")
	}
}
