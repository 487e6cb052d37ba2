package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/metzakaria/vendicore-frontend-sub001/config"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/adapters/passhash"
	redisadapter "github.com/metzakaria/vendicore-frontend-sub001/internal/adapters/redis"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/adapters/sessiontoken"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/data"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/ports"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/service"
)

// AuthServiceConfig contains dependencies for building the auth service.
type AuthServiceConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	// Redis is optional; without it login throttling is disabled.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// BuildAuthService wires the credential authenticator from its adapters.
// Construction fails when the session signing secret is absent, so a
// misconfigured process never serves logins.
func BuildAuthService(cfg AuthServiceConfig) (*service.AuthService, error) {
	codec, err := sessiontoken.New(sessiontoken.Config{
		Secret: cfg.Config.Auth.SessionSecret,
		TTL:    cfg.Config.Auth.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build session token codec: %w", err)
	}

	var throttle ports.LoginThrottle
	if cfg.Redis != nil && cfg.Config.Auth.Throttle.Enabled {
		throttle = redisadapter.NewLoginThrottle(cfg.Redis, redisadapter.ThrottleConfig{
			MaxFailures: cfg.Config.Auth.Throttle.MaxFailures,
			Window:      cfg.Config.Auth.Throttle.Window,
		})
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Accounts: data.NewAccountRepo(cfg.DB),
		Verifier: passhash.New(),
		Tokens:   codec,
		Throttle: throttle,
		Logger:   cfg.Logger,
	}), nil
}
