// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/metzakaria/vendicore-frontend-sub001/internal/domain/auth"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/domain/model"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AccountStore     = (*MemoryAccountStore)(nil)
	_ ports.PasswordVerifier = (*StubVerifier)(nil)
	_ ports.TokenCodec       = (*StubTokenCodec)(nil)
	_ ports.LoginThrottle    = (*MemoryThrottle)(nil)
)

// MemoryAccountStore is an in-memory AccountStore keyed by lowercase email.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	links    map[string]string // account id -> merchant id
	touched  map[string]time.Time

	// FindErr, LinkErr, and TouchErr force failures when set.
	FindErr  error
	LinkErr  error
	TouchErr error
}

// NewMemoryAccountStore creates an empty MemoryAccountStore.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]model.Account),
		links:    make(map[string]string),
		touched:  make(map[string]time.Time),
	}
}

// Add stores an account, keyed by its email.
func (m *MemoryAccountStore) Add(a model.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[lower(a.Email)] = a
}

// Link associates an account with a merchant.
func (m *MemoryAccountStore) Link(accountID, merchantID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[accountID] = merchantID
}

// LastTouched returns the recorded login timestamp for the account, if any.
func (m *MemoryAccountStore) LastTouched(accountID string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.touched[accountID]
	return at, ok
}

func (m *MemoryAccountStore) FindActiveByEmail(_ context.Context, email string) (model.Account, error) {
	if m.FindErr != nil {
		return model.Account{}, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[lower(email)]
	if !ok || !a.IsActive {
		return model.Account{}, errAccountNotFound
	}
	return a, nil
}

func (m *MemoryAccountStore) MerchantIDForAccount(_ context.Context, accountID string) (string, error) {
	if m.LinkErr != nil {
		return "", m.LinkErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links[accountID], nil
}

func (m *MemoryAccountStore) TouchLastLogin(_ context.Context, accountID string) error {
	if m.TouchErr != nil {
		return m.TouchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[accountID] = time.Now()
	return nil
}

// StubVerifier accepts any secret equal to Secret, or delegates to VerifyFunc.
type StubVerifier struct {
	Secret     string
	VerifyFunc func(secret, storedHash string) bool
}

func (v *StubVerifier) Verify(secret, storedHash string) bool {
	if v.VerifyFunc != nil {
		return v.VerifyFunc(secret, storedHash)
	}
	return v.Secret != "" && secret == v.Secret
}

// StubTokenCodec mints predictable tokens and replays minted claims on Read.
type StubTokenCodec struct {
	mu     sync.Mutex
	minted map[string]domainauth.SessionClaims
	seq    int

	MintErr error
	ReadErr error
	TTL     time.Duration
}

// NewStubTokenCodec creates a StubTokenCodec with a one-hour TTL.
func NewStubTokenCodec() *StubTokenCodec {
	return &StubTokenCodec{minted: make(map[string]domainauth.SessionClaims), TTL: time.Hour}
}

func (c *StubTokenCodec) Mint(identity domainauth.Identity, role domainauth.Role, merchantID string) (string, error) {
	if c.MintErr != nil {
		return "", c.MintErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	token := "token-" + identity.AccountID + "-" + itoa(c.seq)
	now := time.Now()
	c.minted[token] = domainauth.SessionClaims{
		AccountID:   identity.AccountID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		Role:        role,
		MerchantID:  merchantID,
		IssuedAt:    now,
		ExpiresAt:   now.Add(c.TTL),
	}
	return token, nil
}

func (c *StubTokenCodec) Read(token string) (domainauth.SessionClaims, error) {
	if c.ReadErr != nil {
		return domainauth.SessionClaims{}, c.ReadErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	claims, ok := c.minted[token]
	if !ok {
		return domainauth.SessionClaims{}, errUnknownToken
	}
	return claims, nil
}

// MemoryThrottle counts failures in memory with no window expiry.
type MemoryThrottle struct {
	mu    sync.Mutex
	fails map[string]int

	Max      int
	AllowErr error
}

// NewMemoryThrottle creates a MemoryThrottle allowing max failures.
func NewMemoryThrottle(max int) *MemoryThrottle {
	return &MemoryThrottle{fails: make(map[string]int), Max: max}
}

func (t *MemoryThrottle) Allow(_ context.Context, identifier string) (bool, error) {
	if t.AllowErr != nil {
		return true, t.AllowErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fails[lower(identifier)] < t.Max, nil
}

func (t *MemoryThrottle) RecordFailure(_ context.Context, identifier string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fails[lower(identifier)]++
	return nil
}

func (t *MemoryThrottle) Reset(_ context.Context, identifier string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.fails, lower(identifier))
	return nil
}
