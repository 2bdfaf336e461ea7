// Package transactionservice manages business logic layer of balance transactions.
package transactionservice

import (
	"context"
	"strings"
	"time"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserRepo provides user data access needed by the transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type UserRepo interface {
	Get(ctx context.Context, id int64) (domain.User, error)
}

// AccountRepo provides account data access needed by the transaction service layer.
// AddBalance must apply the delta atomically and reject updates that would
// make the balance negative with domain.ErrAmountExceedsBalance.
type AccountRepo interface {
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	AddBalance(ctx context.Context, number string, delta int64) (domain.Account, error)
}

// TransactionRepo provides ledger data access needed by the transaction service layer.
type TransactionRepo interface {
	Get(ctx context.Context, transactionID string) (domain.Transaction, error)
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	userRepo        UserRepo
	accountRepo     AccountRepo
	transactionRepo TransactionRepo
}

// New returns transaction service struct to manage transaction business logic.
func New(ur UserRepo, ar AccountRepo, tr TransactionRepo) *Service {
	return &Service{
		userRepo:        ur,
		accountRepo:     ar,
		transactionRepo: tr,
	}
}

func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func validateUseBalance(user domain.User, account domain.Account, amount int64) error {
	if account.UserID != user.ID {
		return domain.ErrUserAccountMismatch
	}

	if account.Status != domain.AccountStatusInUse {
		return domain.ErrAccountAlreadyUnregistered
	}

	if amount > account.Balance {
		return domain.ErrAmountExceedsBalance
	}

	return nil
}

// UseBalance debits the account and appends a USE/SUCCESS record.
//
// Validation order is a fixed policy: user, account, ownership, status,
// balance. Only a balance failure leaves an audit trail, via RecordFailedUse;
// earlier failures have no valid account binding to record against.
func (s *Service) UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		l.Info().Err(err).Int64("user_id", userID).Send()
		return domain.Transaction{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		l.Info().Err(err).Str("account_number", accountNumber).Send()
		return domain.Transaction{}, err
	}

	if err := validateUseBalance(user, account, amount); err != nil {
		l.Info().Err(err).Str("account_number", accountNumber).Send()

		if err == domain.ErrAmountExceedsBalance {
			if saveErr := s.RecordFailedUse(ctx, accountNumber, amount); saveErr != nil {
				l.Error().Err(saveErr).Msg("recording failed use")
			}
		}

		return domain.Transaction{}, err
	}

	debited, err := s.accountRepo.AddBalance(ctx, accountNumber, -amount)
	if err != nil {
		// A concurrent debit can win the conditional update after the
		// snapshot check passed; treat it like any other declined debit.
		if err == domain.ErrAmountExceedsBalance {
			l.Info().Err(err).Str("account_number", accountNumber).Send()

			if saveErr := s.RecordFailedUse(ctx, accountNumber, amount); saveErr != nil {
				l.Error().Err(saveErr).Msg("recording failed use")
			}

			return domain.Transaction{}, err
		}

		l.Error().Err(err).Send()

		return domain.Transaction{}, err
	}

	transaction, err := s.transactionRepo.Create(ctx, domain.CreateTransactionParams{
		TransactionID:   newTransactionID(),
		AccountID:       account.ID,
		Type:            domain.TransactionTypeUse,
		Result:          domain.TransactionResultSuccess,
		Amount:          amount,
		BalanceSnapshot: debited.Balance,
		TransactedAt:    time.Now(),
	})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	return transaction, nil
}

// RecordFailedUse appends a USE/FAIL record with the account's current,
// unchanged balance as the snapshot. It is invoked on the declined-debit
// path after account existence has already been confirmed, so it performs
// no ownership or status checks.
func (s *Service) RecordFailedUse(ctx context.Context, accountNumber string, amount int64) error {
	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}

	_, err = s.transactionRepo.Create(ctx, domain.CreateTransactionParams{
		TransactionID:   newTransactionID(),
		AccountID:       account.ID,
		Type:            domain.TransactionTypeUse,
		Result:          domain.TransactionResultFail,
		Amount:          amount,
		BalanceSnapshot: account.Balance,
		TransactedAt:    time.Now(),
	})

	return err
}

func validateCancelBalance(transaction domain.Transaction, account domain.Account, amount int64) error {
	if transaction.AccountID != account.ID {
		return domain.ErrTransactionAccountMismatch
	}

	if transaction.Amount != amount {
		return domain.ErrCancelMustBeFull
	}

	// Exactly one year old is still cancellable.
	if transaction.TransactedAt.Before(time.Now().AddDate(-1, 0, 0)) {
		return domain.ErrTooOldToCancel
	}

	return nil
}

// CancelBalance reverses a prior use in full, credits the account and
// appends a CANCEL/SUCCESS record. Failed cancels write nothing.
func (s *Service) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	transaction, err := s.transactionRepo.Get(ctx, transactionID)
	if err != nil {
		l.Info().Err(err).Str("transaction_id", transactionID).Send()
		return domain.Transaction{}, err
	}

	account, err := s.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		l.Info().Err(err).Str("account_number", accountNumber).Send()
		return domain.Transaction{}, err
	}

	if err := validateCancelBalance(transaction, account, amount); err != nil {
		l.Info().Err(err).Str("transaction_id", transactionID).Send()
		return domain.Transaction{}, err
	}

	credited, err := s.accountRepo.AddBalance(ctx, accountNumber, amount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	cancelled, err := s.transactionRepo.Create(ctx, domain.CreateTransactionParams{
		TransactionID:   newTransactionID(),
		AccountID:       account.ID,
		Type:            domain.TransactionTypeCancel,
		Result:          domain.TransactionResultSuccess,
		Amount:          amount,
		BalanceSnapshot: credited.Balance,
		TransactedAt:    time.Now(),
	})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	return cancelled, nil
}

// Get returns the ledger record with the given transaction id. Failed
// records are returned as well; they are part of the audit trail.
func (s *Service) Get(ctx context.Context, transactionID string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	transaction, err := s.transactionRepo.Get(ctx, transactionID)
	if err != nil {
		l.Info().Err(err).Str("transaction_id", transactionID).Send()
		return domain.Transaction{}, err
	}

	return transaction, nil
}
