//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Account represents a login-capable account row. Everything except
// LastLoginAt is owned by the external user-management surface; this
// service only reads the row and touches LastLoginAt on successful
// authentication.
//
// PasswordHash is opaque at this layer. Its format is detected
// structurally by the password verifier, never configured.
type Account struct {
	ID           string     `json:"id"            db:"id"`
	Email        string     `json:"email"         db:"email"`
	DisplayName  string     `json:"display_name"  db:"display_name"`
	PasswordHash string     `json:"-"             db:"password_hash"`
	IsActive     bool       `json:"is_active"     db:"is_active"`
	IsSuperuser  bool       `json:"is_superuser"  db:"is_superuser"`
	IsStaff      bool       `json:"is_staff"      db:"is_staff"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"    db:"created_at"`
}

// MerchantLink is the optional 1:1 association between an account and
// the merchant it operates. Presence implies the merchant role unless
// a higher-precedence flag supersedes it.
type MerchantLink struct {
	AccountID  string    `json:"account_id"  db:"account_id"`
	MerchantID string    `json:"merchant_id" db:"merchant_id"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}
