// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/pkg/dbpkg"
	"github.com/go-woori/bank-ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a              domain.Account
		unregisteredAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.UserID,
		&a.Status,
		&a.Balance,
		&a.RegisteredAt,
		&unregisteredAt,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	if unregisteredAt.Valid {
		a.UnregisteredAt = unregisteredAt.Time
	}

	return a, nil
}

const createQuery = `
INSERT INTO
    accounts (account_number, user_id, status, balance, registered_at)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_number, user_id, status, balance, registered_at, unregistered_at, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Number, arg.UserID, domain.AccountStatusInUse, arg.Balance, arg.RegisteredAt)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_user_id_fkey" {
				return a, domain.ErrUserNotFound
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	id, account_number, user_id, status, balance, registered_at, unregistered_at, created_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, number)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE account_number = $2
RETURNING id, account_number, user_id, status, balance, registered_at, unregistered_at, created_at
`

// AddBalance atomically changes the account's balance by delta and returns
// the changed account. The accounts_balance_check constraint rejects updates
// that would make the balance negative, so two concurrent debits can never
// jointly overdraw the account.
func (r *RepoPGS) AddBalance(ctx context.Context, number string, delta int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, delta, number)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrAmountExceedsBalance
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const unregisterQuery = `
UPDATE accounts
SET status = $1, unregistered_at = $2
WHERE account_number = $3
RETURNING id, account_number, user_id, status, balance, registered_at, unregistered_at, created_at
`

// Unregister marks the account as unregistered and returns it.
func (r *RepoPGS) Unregister(ctx context.Context, number string, at time.Time) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, unregisterQuery, domain.AccountStatusUnregistered, at, number)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByUserQuery = `
SELECT
	id, account_number, user_id, status, balance, registered_at, unregistered_at, created_at
FROM accounts
WHERE user_id = $1
ORDER BY id
`

// ListByUser returns all accounts owned by the given user.
func (r *RepoPGS) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByUserQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var (
			a              domain.Account
			unregisteredAt sql.NullTime
		)

		err := rows.Scan(
			&a.ID,
			&a.Number,
			&a.UserID,
			&a.Status,
			&a.Balance,
			&a.RegisteredAt,
			&unregisteredAt,
			&a.CreatedAt,
		)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if unregisteredAt.Valid {
			a.UnregisteredAt = unregisteredAt.Time
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const countByUserQuery = `
SELECT count(*)
FROM accounts
WHERE user_id = $1
`

// CountByUser returns how many accounts the given user holds.
func (r *RepoPGS) CountByUser(ctx context.Context, userID int64) (int64, error) {
	l := zerolog.Ctx(ctx)

	var count int64

	err := r.db.QueryRowContext(ctx, countByUserQuery, userID).Scan(&count)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return count, nil
}

const lastNumberQuery = `
SELECT account_number
FROM accounts
ORDER BY account_number DESC
LIMIT 1
`

// LastNumber returns the highest account number issued so far.
func (r *RepoPGS) LastNumber(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	var number string

	err := r.db.QueryRowContext(ctx, lastNumberQuery).Scan(&number)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	return number, nil
}
