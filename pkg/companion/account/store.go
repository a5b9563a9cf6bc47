package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Jaivik01092001/pinkhoney-main/pkg/companion"
)

// Store performs account lookups and entitlement mutations against Postgres.
// Every mutation is a single conditional statement so concurrent callers
// cannot lose updates to the same row.
type Store struct {
	db DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

const selectColumns = `user_id, email, tokens, subscribed, version`

// FindOrCreateByEmail returns the account for email, creating one with a
// fresh user_id, zero tokens and no subscription on first sight. The unique
// index on email makes concurrent first lookups converge on a single row.
func (s *Store) FindOrCreateByEmail(ctx context.Context, email string) (*Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("email must not be empty", "email")
	}

	acc, err := s.findByColumn(ctx, "email", email)
	if err == nil {
		return acc, nil
	}
	if !companion.IsNotFound(err) {
		return nil, err
	}

	query :=
		`INSERT INTO accounts (user_id, email, tokens, subscribed)
		 VALUES ($1, $2, '0', 'no')
		 ON CONFLICT (email) DO NOTHING
		 RETURNING ` + selectColumns

	created := &Account{}
	err = s.db.QueryRowContext(ctx, query, NewUserID(), email).
		Scan(&created.UserID, &created.Email, &created.Tokens, &created.Subscribed, &created.Version)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, companion.NewStoreUnavailableError(err)
	}

	// Lost the insert race to a concurrent first lookup; the winner's row is
	// now authoritative.
	return s.findByColumn(ctx, "email", email)
}

// FindByUserID returns the account for the numeric identifier, or a
// not-found error when no row matches.
func (s *Store) FindByUserID(ctx context.Context, userID string) (*Account, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, companion.NewInvalidRequestErrorWithParam("user_id must not be empty", "user_id")
	}
	return s.findByColumn(ctx, "user_id", userID)
}

// SetSubscription overwrites the stored plan selector. The value is stored
// verbatim; selector validation is intentionally not performed. Returns a
// not-found error without writing when the account is absent.
func (s *Store) SetSubscription(ctx context.Context, userID, plan string) error {
	query :=
		`UPDATE accounts
		 SET subscribed = $2, version = version + 1
		 WHERE user_id = $1
		 `

	res, err := s.db.ExecContext(ctx, query, userID, plan)
	if err != nil {
		return companion.NewStoreUnavailableError(err)
	}
	return requireRow(res)
}

// IncrementTokens adds delta to the stored balance. The arithmetic happens
// inside the statement, so concurrent increments serialize in the database
// instead of racing through a read-modify-write. Negative deltas pass
// through and may drive the balance below zero.
func (s *Store) IncrementTokens(ctx context.Context, userID string, delta int64) error {
	query :=
		`UPDATE accounts
		 SET tokens = ((tokens)::bigint + $2)::text, version = version + 1
		 WHERE user_id = $1
		 `

	res, err := s.db.ExecContext(ctx, query, userID, delta)
	if err != nil {
		return companion.NewStoreUnavailableError(err)
	}
	return requireRow(res)
}

func (s *Store) findByColumn(ctx context.Context, column, value string) (*Account, error) {
	// id DESC so any pre-migration duplicate resolves to the newest row.
	query :=
		`SELECT ` + selectColumns + ` FROM accounts
		 WHERE ` + column + ` = $1
		 ORDER BY id DESC
		 LIMIT 1
		 `

	acc := &Account{}
	err := s.db.QueryRowContext(ctx, query, value).
		Scan(&acc.UserID, &acc.Email, &acc.Tokens, &acc.Subscribed, &acc.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, companion.NewNotFoundError("account not found")
		}
		return nil, companion.NewStoreUnavailableError(err)
	}
	return acc, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return companion.NewStoreUnavailableError(err)
	}
	if n == 0 {
		return companion.NewNotFoundError("account not found")
	}
	return nil
}
