// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.
package auth

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleMerchant   Role = "merchant"
	RoleUser       Role = "user"
)

// rank orders roles for precedence resolution. Higher wins.
// SuperAdmin > Admin > Merchant > User.
var rank = map[Role]int{
	RoleSuperAdmin: 3,
	RoleAdmin:      2,
	RoleMerchant:   1,
	RoleUser:       0,
}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Outranks reports whether r is strictly higher than other in the
// precedence order. Unknown roles rank below everything.
func (r Role) Outranks(other Role) bool {
	return rank[r] > rank[other]
}

// HomePath returns the default landing path for a role after login.
// The User role has no authorized destination; callers must treat the
// empty string as "redirect to login".
func (r Role) HomePath() string {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return "/admin/dashboard"
	case RoleMerchant:
		return "/merchant/dashboard"
	default:
		return ""
	}
}

// Identity represents the authenticated principal returned by
// credential verification. It carries the raw account flags so role
// resolution stays a separate, pure step.
type Identity struct {
	AccountID   string
	DisplayName string
	Email       string
	IsSuperuser bool
	IsStaff     bool
}

// Resolve maps an identity's flags plus an optional merchant link to
// exactly one role and an optional merchant scope. The precedence is
// total: administrative flags dominate tenant association, so a
// superuser with a merchant link is SuperAdmin, never Merchant.
//
// merchantID is the account's merchant association, or empty when the
// account has none. The returned scope is non-empty only for the
// Merchant role.
func Resolve(id Identity, merchantID string) (Role, string) {
	switch {
	case id.IsSuperuser:
		return RoleSuperAdmin, ""
	case id.IsStaff:
		return RoleAdmin, ""
	case merchantID != "":
		return RoleMerchant, merchantID
	default:
		return RoleUser, ""
	}
}

// SessionClaims is the immutable claims record embedded in a session
// token. A role or scope change requires a fresh login and a brand-new
// token; claims are never mutated in place.
type SessionClaims struct {
	AccountID   string    `json:"account_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	MerchantID  string    `json:"merchant_id,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the claims are past their expiry at the given instant.
func (c SessionClaims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
