// Package devseed inserts sample accounts for local development.
// It runs only in dev mode and is idempotent: existing accounts are left alone.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// seedAccount describes one development account to insert.
type seedAccount struct {
	Email       string
	DisplayName string
	// Password is hashed at seed time unless StoredHash is set.
	Password   string
	StoredHash string
	IsActive   bool
	Superuser  bool
	Staff      bool
	MerchantID string
}

// All dev accounts share this password unless noted in the display name.
const devPassword = "vendicore-dev"

func seedAccounts() []seedAccount {
	return []seedAccount{
		{
			Email:       "root@vendicore.local",
			DisplayName: "Dev Superadmin",
			Password:    devPassword,
			IsActive:    true,
			Superuser:   true,
		},
		{
			Email:       "staff@vendicore.local",
			DisplayName: "Dev Admin",
			Password:    devPassword,
			IsActive:    true,
			Staff:       true,
		},
		{
			Email:       "shop@vendicore.local",
			DisplayName: "Dev Merchant",
			Password:    devPassword,
			IsActive:    true,
			MerchantID:  "dev-merchant-1",
		},
		{
			Email:       "inactive@vendicore.local",
			DisplayName: "Dev Inactive",
			Password:    devPassword,
			IsActive:    false,
		},
		{
			// Imported-style account carrying a legacy hash, for exercising
			// the PBKDF2 verification path end to end. Password: s3cret-Spectacle7
			Email:       "legacy@vendicore.local",
			DisplayName: "Dev Legacy (password s3cret-Spectacle7)",
			StoredHash:  "pbkdf2_sha256$260000$abcsalt123$/fW0peTOV1NS4aSPyI2myVwxnxlXiyAEVfVTJeWv2cg=",
			IsActive:    true,
		},
	}
}

// Run inserts the development accounts. Safe to call on every startup.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, acct := range seedAccounts() {
		if err := insertAccount(ctx, db, acct); err != nil {
			return fmt.Errorf("seed account %s: %w", acct.Email, err)
		}
	}

	logger.InfoContext(ctx, "development accounts seeded", "count", len(seedAccounts()))
	return nil
}

func insertAccount(ctx context.Context, db *sql.DB, acct seedAccount) error {
	storedHash := acct.StoredHash
	if storedHash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		storedHash = string(hashed)
	}

	id := uuid.NewString()
	res, err := db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, display_name, password_hash, is_active, is_superuser, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ((lower(email))) DO NOTHING`,
		id, acct.Email, acct.DisplayName, storedHash, acct.IsActive, acct.Superuser, acct.Staff,
	)
	if err != nil {
		return err
	}

	inserted, err := res.RowsAffected()
	if err != nil || inserted == 0 {
		return err
	}

	if acct.MerchantID != "" {
		if _, err = db.ExecContext(ctx, `
			INSERT INTO merchant_links (account_id, merchant_id)
			VALUES ($1, $2)
			ON CONFLICT (account_id) DO NOTHING`,
			id, acct.MerchantID,
		); err != nil {
			return err
		}
	}
	return nil
}
