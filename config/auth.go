package config

import "time"

// ThrottleConfig controls the redis-backed login throttle.
// The throttle is advisory: it slows credential guessing but never feeds
// into authorization decisions.
type ThrottleConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// MaxFailures is the number of failed attempts per identifier allowed
	// within the window before further attempts are blocked.
	MaxFailures int `env:"MAX_FAILURES" envDefault:"10"`

	// Window is the fixed counting window.
	Window time.Duration `env:"WINDOW" envDefault:"15m"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// SessionSecret signs session tokens. Startup aborts when it is absent.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionTTL is the fixed lifetime of a session token.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Throttle configuration for repeated failed logins.
	Throttle ThrottleConfig `envPrefix:"LOGIN_THROTTLE_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	const (
		minTTL = time.Minute
		maxTTL = 7 * 24 * time.Hour
	)
	if a.SessionTTL < minTTL {
		a.SessionTTL = minTTL
	}
	if a.SessionTTL > maxTTL {
		a.SessionTTL = maxTTL
	}

	if a.Throttle.MaxFailures < 1 {
		a.Throttle.MaxFailures = 1
	}
	if a.Throttle.Window < time.Second {
		a.Throttle.Window = time.Second
	}
}
