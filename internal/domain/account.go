package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUserAccountMismatch indicates that the account does not belong to the requesting user.
	ErrUserAccountMismatch = errors.New("account owner and user do not match")
	// ErrAccountAlreadyUnregistered indicates an operation on a closed account.
	ErrAccountAlreadyUnregistered = errors.New("account is already unregistered")
	// ErrAmountExceedsBalance indicates that the debit would overdraw the account.
	ErrAmountExceedsBalance = errors.New("amount exceeds account balance")
	// ErrMaxAccountsPerUser indicates that the user already holds the maximum number of accounts.
	ErrMaxAccountsPerUser = errors.New("user already has the maximum number of accounts")
	// ErrBalanceNotEmpty indicates an attempt to unregister an account that still holds balance.
	ErrBalanceNotEmpty = errors.New("account with remaining balance cannot be unregistered")
)

// MaxAccountsPerUser limits how many accounts a single user may hold.
const MaxAccountsPerUser = 10

// AccountStatus describes whether an account can be transacted against.
type AccountStatus string

// Supported account statuses.
const (
	AccountStatusInUse        AccountStatus = "IN_USE"
	AccountStatusUnregistered AccountStatus = "UNREGISTERED"
)

// Account holds balance data for a single user account. Balance is an
// integer in the smallest currency unit and is never negative.
type Account struct {
	ID             int64         `json:"id"`
	Number         string        `json:"account_number"`
	UserID         int64         `json:"user_id"`
	Status         AccountStatus `json:"status"`
	Balance        int64         `json:"balance"`
	RegisteredAt   time.Time     `json:"registered_at"`
	UnregisteredAt time.Time     `json:"unregistered_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Number       string    `json:"account_number"`
	UserID       int64     `json:"user_id"`
	Balance      int64     `json:"balance"`
	RegisteredAt time.Time `json:"registered_at"`
}
