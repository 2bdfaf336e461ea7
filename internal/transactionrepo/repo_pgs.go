// Package transactionrepo manages repository layer of the transaction ledger.
//
// The ledger is append-only: there is no update or delete path.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/pkg/dbpkg"
	"github.com/go-woori/bank-ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
	transactions (transaction_id, account_id, transaction_type, result_type, amount, balance_snapshot, transacted_at)
VALUES
	($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

// Create appends one ledger record and returns it with the owning account
// number resolved.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.TransactionID,
		arg.AccountID,
		arg.Type,
		arg.Result,
		arg.Amount,
		arg.BalanceSnapshot,
		arg.TransactedAt,
	)

	t := domain.Transaction{
		TransactionID:   arg.TransactionID,
		AccountID:       arg.AccountID,
		Type:            arg.Type,
		Result:          arg.Result,
		Amount:          arg.Amount,
		BalanceSnapshot: arg.BalanceSnapshot,
		TransactedAt:    arg.TransactedAt,
	}

	if err := row.Scan(&t.ID); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return r.Get(ctx, arg.TransactionID)
}

const getQuery = `
SELECT
	t.id, t.transaction_id, t.account_id, a.account_number,
	t.transaction_type, t.result_type, t.amount, t.balance_snapshot, t.transacted_at
FROM transactions t
JOIN accounts a ON a.id = t.account_id
WHERE t.transaction_id = $1
`

// Get returns the ledger record with the given transaction id.
func (r *RepoPGS) Get(ctx context.Context, transactionID string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, transactionID)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&t.AccountID,
		&t.AccountNumber,
		&t.Type,
		&t.Result,
		&t.Amount,
		&t.BalanceSnapshot,
		&t.TransactedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}
