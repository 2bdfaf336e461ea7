package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransactionAccountMismatch indicates that the transaction belongs to another account.
	ErrTransactionAccountMismatch = errors.New("transaction does not belong to the account")
	// ErrCancelMustBeFull indicates a partial cancellation attempt.
	ErrCancelMustBeFull = errors.New("cancel amount must equal the original transaction amount")
	// ErrTooOldToCancel indicates that the transaction is outside the reversal window.
	ErrTooOldToCancel = errors.New("transaction is too old to cancel")
)

// TransactionType describes the direction of a ledger event.
type TransactionType string

// Supported transaction types.
const (
	TransactionTypeUse    TransactionType = "USE"
	TransactionTypeCancel TransactionType = "CANCEL"
)

// TransactionResultType describes the outcome recorded for a ledger event.
type TransactionResultType string

// Supported transaction results.
const (
	TransactionResultSuccess TransactionResultType = "SUCCESS"
	TransactionResultFail    TransactionResultType = "FAIL"
)

// Transaction is an immutable audit record of one use or cancel event
// against an account. BalanceSnapshot is the account balance right after
// the event was applied; for FAIL results it is the unchanged balance at
// failure time. Records are append-only: the repository exposes no update
// or delete path.
type Transaction struct {
	ID              int64                 `json:"id"`
	TransactionID   string                `json:"transaction_id"`
	AccountID       int64                 `json:"account_id"`
	AccountNumber   string                `json:"account_number"`
	Type            TransactionType       `json:"transaction_type"`
	Result          TransactionResultType `json:"transaction_result_type"`
	Amount          int64                 `json:"amount"`
	BalanceSnapshot int64                 `json:"balance_snapshot"`
	TransactedAt    time.Time             `json:"transacted_at"`
}

// CreateTransactionParams is the input data to append one ledger record.
type CreateTransactionParams struct {
	TransactionID   string
	AccountID       int64
	Type            TransactionType
	Result          TransactionResultType
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
}
