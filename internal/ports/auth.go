// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.
package ports

import (
	"context"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/domain/model"
)

// AccountStore looks up and updates login-capable accounts.
type AccountStore interface {
	// FindActiveByEmail returns the account matching the identifier with
	// is_active = true, in a single predicate. Inactive accounts must be
	// indistinguishable from nonexistent ones to callers: both return
	// the store's not-found error.
	FindActiveByEmail(ctx context.Context, email string) (model.Account, error)

	// MerchantIDForAccount returns the linked merchant id, or "" when the
	// account has no merchant association.
	MerchantIDForAccount(ctx context.Context, accountID string) (string, error)

	// TouchLastLogin records a successful login at the store's own clock.
	// Best-effort; failures are logged by callers and never block
	// authentication.
	TouchLastLogin(ctx context.Context, accountID string) error
}

// PasswordVerifier validates a plaintext secret against a stored hash
// of unknown-but-bounded format. Implementations never panic and never
// return an error: any parse or cryptographic failure is false.
type PasswordVerifier interface {
	Verify(secret, storedHash string) bool
}

// TokenCodec mints and re-validates signed session tokens. Claims are
// immutable once minted; a role change requires a brand-new token.
type TokenCodec interface {
	Mint(identity domainauth.Identity, role domainauth.Role, merchantID string) (string, error)
	Read(token string) (domainauth.SessionClaims, error)
}

// LoginThrottle gates repeated failed login attempts per identifier.
// It is advisory only and must never feed into authorization decisions.
type LoginThrottle interface {
	// Allow reports whether another attempt for the identifier may proceed.
	Allow(ctx context.Context, identifier string) (bool, error)

	// RecordFailure notes a failed attempt for the identifier.
	RecordFailure(ctx context.Context, identifier string) error

	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, identifier string) error
}
