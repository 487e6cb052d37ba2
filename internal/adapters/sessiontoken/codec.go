// Package sessiontoken mints and re-validates the signed claims tokens
// that carry an authenticated identity's role and merchant scope. Tokens
// are stateless: nothing is persisted server-side and claims are never
// mutated after minting.
package sessiontoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
)

var (
	// ErrTokenInvalid is returned for unparseable or badly signed tokens.
	ErrTokenInvalid = errors.New("session token invalid")
	// ErrTokenExpired is returned for well-signed tokens past their expiry.
	ErrTokenExpired = errors.New("session token expired")
)

// DefaultTTL is the session lifetime applied when no TTL is configured.
const DefaultTTL = 12 * time.Hour

// sessionClaims is the wire shape of the token payload. Role and
// MerchantID are the only authoritative fields; DisplayName and Email
// are carried for client display and never feed authorization.
type sessionClaims struct {
	jwt.RegisteredClaims
	DisplayName string          `json:"name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Role        domainauth.Role `json:"role"`
	MerchantID  string          `json:"merchant_id,omitempty"`
}

// Codec signs and verifies session tokens with a server-held symmetric key.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Config groups Codec construction parameters.
type Config struct {
	// Secret is the HS256 signing key. Required; sourced from process
	// configuration, never hardcoded.
	Secret string
	// TTL is the fixed session lifetime. Defaults to DefaultTTL.
	TTL time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// New constructs a Codec. An empty secret is a configuration error:
// the process must not fall back to unsigned tokens.
func New(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session signing secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(cfg.Secret), ttl: ttl, now: now}, nil
}

// Mint serializes and signs a claims token for the identity with the
// resolved role and optional merchant scope.
func (c *Codec) Mint(identity domainauth.Identity, role domainauth.Role, merchantID string) (string, error) {
	if identity.AccountID == "" {
		return "", errors.New("identity account id is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}

	issued := c.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(c.ttl)),
		},
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		Role:        role,
		MerchantID:  merchantID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Read verifies the signature, then the expiry, and returns the
// embedded claims. The error is always one of ErrTokenInvalid or
// ErrTokenExpired (wrapped).
func (c *Codec) Read(token string) (domainauth.SessionClaims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domainauth.SessionClaims{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return domainauth.SessionClaims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return domainauth.SessionClaims{}, ErrTokenInvalid
	}

	out := domainauth.SessionClaims{
		AccountID:   claims.Subject,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		Role:        claims.Role,
		MerchantID:  claims.MerchantID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// TTL exposes the configured session lifetime for cookie Max-Age wiring.
func (c *Codec) TTL() time.Duration { return c.ttl }
