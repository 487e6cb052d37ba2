package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/metzakaria/vendicore-frontend-sub001/internal/data/pgxutil"
	"github.com/metzakaria/vendicore-frontend-sub001/internal/domain/model"
	apperrors "github.com/metzakaria/vendicore-frontend-sub001/internal/errors"
)

const accountSelectColumns = `id, email, display_name, password_hash, is_active, is_superuser, is_staff, last_login_at, created_at`

// AccountRepo provides database operations for login-capable accounts.
// Account rows are owned by the external user-management surface; this
// repository only reads them and records login timestamps.
type AccountRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccountRepo creates a new AccountRepo with real time provider.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates a new AccountRepo with a custom time provider (useful for tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: tp}
}

// FindActiveByEmail returns the active account for the identifier.
// The activation check is part of the predicate, not a separate branch,
// so an inactive account surfaces as ErrAccountNotFound exactly like a
// missing one.
func (r *AccountRepo) FindActiveByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.Account{}, ErrAccountNotFound
	}

	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+accountSelectColumns+`
			FROM accounts
			WHERE lower(email) = $1 AND is_active = TRUE
		`, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, mapped
	}
	return out, nil
}

// MerchantIDForAccount returns the merchant id linked to the account,
// or "" when no link exists.
func (r *AccountRepo) MerchantIDForAccount(ctx context.Context, accountID string) (string, error) {
	var merchantID string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT merchant_id FROM merchant_links WHERE account_id = $1
		`, accountID).Scan(&merchantID)
	}); err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return "", nil
		}
		return "", mapped
	}
	return merchantID, nil
}

// TouchLastLogin records a successful login at the repo's clock.
// Concurrent logins for the same account race harmlessly here; last
// writer wins and the column is advisory, never used for authorization.
func (r *AccountRepo) TouchLastLogin(ctx context.Context, accountID string) error {
	if accountID == "" {
		return errors.New("account id is required")
	}

	at := r.timeProvider.Now().UTC()
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE accounts SET last_login_at = $2 WHERE id = $1
		`, accountID, at)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrAccountNotFound
		}
		return nil
	}); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("touch last login: %w", apperrors.MapDBError(err))
	}
	return nil
}
