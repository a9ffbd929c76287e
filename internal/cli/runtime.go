package cli

import (
	"context"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"kwiz-client/internal/api"
	"kwiz-client/internal/app"
	"kwiz-client/internal/config"
	"kwiz-client/internal/domain"
	filestore "kwiz-client/internal/infra/file"
	redisstore "kwiz-client/internal/infra/redis"
	"kwiz-client/internal/logger"
)

// runtime bundles the wiring every command needs: config, the API
// client, and the credential store picked from config.
type runtime struct {
	cfg    config.Config
	client *api.Client
	store  app.CredentialStore
	auth   *app.Authenticator
	log    *logger.Logger
}

func newRuntime(configPath, serverOverride string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	base := cfg.BaseURL()
	if serverOverride != "" {
		base = serverOverride
	}
	timeout := config.Duration(cfg.API.Timeout, 10*time.Second)
	client := api.New(base, &http.Client{Timeout: timeout})

	var store app.CredentialStore
	if cfg.Session.Redis.Addr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		store = redisstore.NewCredentialStore(redisClient, config.Duration(cfg.Session.Redis.TTL, 0))
	} else {
		store = filestore.NewCredentialStore(cfg.SessionFile())
	}

	return &runtime{
		cfg:    cfg,
		client: client,
		store:  store,
		auth:   app.NewAuthenticator(client, store),
		log:    logger.New("cli"),
	}, nil
}

// authenticated restores the persisted credential and returns a client
// carrying its bearer token.
func (r *runtime) authenticated(ctx context.Context) (*api.Client, domain.Credential, error) {
	credential, ok, err := r.auth.Restore(ctx)
	if err != nil {
		return nil, domain.Credential{}, err
	}
	if !ok {
		return nil, domain.Credential{}, domain.ErrUnauthenticated
	}
	return r.client.WithToken(credential.Token), credential, nil
}

func (r *runtime) resultDelay() time.Duration {
	return config.Duration(r.cfg.Game.ResultDelay, 2*time.Second)
}
