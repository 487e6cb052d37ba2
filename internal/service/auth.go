package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metzakaria/vendicore-frontend-sub001/internal/data"
	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/ports"
)

// ErrInvalidCredentials is the single externally observable
// authentication failure. Missing account, inactive account, and wrong
// secret all collapse into it so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTooManyAttempts is returned when the login throttle blocks an
// identifier. It reveals only that attempts were made, nothing about
// whether the account exists.
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Accounts ports.AccountStore
	Verifier ports.PasswordVerifier
	Tokens   ports.TokenCodec
	Throttle ports.LoginThrottle // optional
	Logger   *slog.Logger        // optional
}

// AuthService orchestrates credential authentication: account lookup,
// hash verification, role resolution, and session token minting.
type AuthService struct {
	accounts ports.AccountStore
	verifier ports.PasswordVerifier
	tokens   ports.TokenCodec
	throttle ports.LoginThrottle
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		accounts: opts.Accounts,
		verifier: opts.Verifier,
		tokens:   opts.Tokens,
		throttle: opts.Throttle,
		logger:   logger,
	}
}

// LoginResult contains the outcome of a successful login.
type LoginResult struct {
	Token    string
	Identity domainauth.Identity
	Role     domainauth.Role
	// MerchantID is the tenant scope, non-empty only for the Merchant role.
	MerchantID string
}

// Login authenticates the identifier/secret pair, resolves the single
// authoritative role, and mints a session token. Every failure except
// throttling surfaces as ErrInvalidCredentials; the internal reason is
// logged for operators but never returned. Secrets, salts, and digests
// are never logged at any level.
func (s *AuthService) Login(ctx context.Context, identifier, secret string) (*LoginResult, error) {
	if s.throttleBlocked(ctx, identifier) {
		return nil, ErrTooManyAttempts
	}

	identity, err := s.authenticate(ctx, identifier, secret)
	if err != nil {
		s.noteFailure(ctx, identifier)
		return nil, err
	}

	merchantID, err := s.accounts.MerchantIDForAccount(ctx, identity.AccountID)
	if err != nil {
		// Fail closed: without the link we cannot resolve the role.
		s.logger.ErrorContext(ctx, "merchant link lookup failed", "account_id", identity.AccountID, "error", err)
		return nil, ErrInvalidCredentials
	}

	role, scope := domainauth.Resolve(identity, merchantID)

	token, err := s.tokens.Mint(identity, role, scope)
	if err != nil {
		s.logger.ErrorContext(ctx, "session token mint failed", "account_id", identity.AccountID, "error", err)
		return nil, ErrInvalidCredentials
	}

	s.resetThrottle(ctx, identifier)

	return &LoginResult{
		Token:      token,
		Identity:   identity,
		Role:       role,
		MerchantID: scope,
	}, nil
}

// authenticate verifies the credential pair and returns the identity.
// Lookup and verification failures are indistinguishable to callers.
func (s *AuthService) authenticate(ctx context.Context, identifier, secret string) (domainauth.Identity, error) {
	account, err := s.accounts.FindActiveByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			// Covers both nonexistent and inactive accounts.
			s.logger.InfoContext(ctx, "login failed", "reason", "account_not_found_or_inactive")
		} else {
			s.logger.ErrorContext(ctx, "account lookup failed", "error", err)
		}
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	if !s.verifier.Verify(secret, account.PasswordHash) {
		s.logger.InfoContext(ctx, "login failed", "reason", "secret_mismatch", "account_id", account.ID)
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	// Best-effort: a failed timestamp write must not block the login.
	if touchErr := s.accounts.TouchLastLogin(ctx, account.ID); touchErr != nil {
		s.logger.WarnContext(ctx, "last_login_at update failed", "account_id", account.ID, "error", touchErr)
	}

	return domainauth.Identity{
		AccountID:   account.ID,
		DisplayName: account.DisplayName,
		Email:       account.Email,
		IsSuperuser: account.IsSuperuser,
		IsStaff:     account.IsStaff,
	}, nil
}

// ReadSession re-validates a session token and returns its claims.
// Signature is checked before expiry; the token codec's typed errors
// pass through for the caller to classify.
func (s *AuthService) ReadSession(token string) (domainauth.SessionClaims, error) {
	if token == "" {
		return domainauth.SessionClaims{}, fmt.Errorf("read session: empty token")
	}
	return s.tokens.Read(token)
}

func (s *AuthService) throttleBlocked(ctx context.Context, identifier string) bool {
	if s.throttle == nil {
		return false
	}
	ok, err := s.throttle.Allow(ctx, identifier)
	if err != nil {
		// Fail open: an unreachable throttle never locks out logins.
		s.logger.WarnContext(ctx, "login throttle unavailable", "error", err)
		return false
	}
	if !ok {
		s.logger.InfoContext(ctx, "login blocked by throttle")
	}
	return !ok
}

func (s *AuthService) noteFailure(ctx context.Context, identifier string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, identifier); err != nil {
		s.logger.WarnContext(ctx, "login throttle record failed", "error", err)
	}
}

func (s *AuthService) resetThrottle(ctx context.Context, identifier string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, identifier); err != nil {
		s.logger.WarnContext(ctx, "login throttle reset failed", "error", err)
	}
}
