// Package redis provides Redis-based adapters for the vendicore auth service.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle is a fixed-window counter over failed login attempts
// per identifier. It is advisory: it slows credential stuffing but
// never feeds authorization decisions, and by policy it fails open
// when Redis is unreachable (availability over throttling).
type LoginThrottle struct {
	client      redis.UniversalClient
	prefix      string
	maxFailures int
	window      time.Duration
}

// ThrottleConfig groups LoginThrottle construction parameters.
type ThrottleConfig struct {
	// MaxFailures is the number of failed attempts allowed per window.
	// Defaults to 10.
	MaxFailures int
	// Window is the fixed counting window. Defaults to 15 minutes.
	Window time.Duration
	// Prefix namespaces the throttle keys. Defaults to "login_fail:".
	Prefix string
}

// NewLoginThrottle creates a Redis-backed login throttle.
func NewLoginThrottle(client redis.UniversalClient, cfg ThrottleConfig) *LoginThrottle {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "login_fail:"
	}
	return &LoginThrottle{
		client:      client,
		prefix:      cfg.Prefix,
		maxFailures: cfg.MaxFailures,
		window:      cfg.Window,
	}
}

func (t *LoginThrottle) key(identifier string) string {
	return t.prefix + strings.ToLower(strings.TrimSpace(identifier))
}

// Allow reports whether another attempt for the identifier may proceed.
// A Redis error is returned alongside true so callers can log it and
// continue (fail-open).
func (t *LoginThrottle) Allow(ctx context.Context, identifier string) (bool, error) {
	count, err := t.client.Get(ctx, t.key(identifier)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return true, fmt.Errorf("throttle get: %w", err)
	}
	return count < t.maxFailures, nil
}

// RecordFailure notes a failed attempt, starting the window on the first.
func (t *LoginThrottle) RecordFailure(ctx context.Context, identifier string) error {
	key := t.key(identifier)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) error {
	if err := t.client.Del(ctx, t.key(identifier)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}
