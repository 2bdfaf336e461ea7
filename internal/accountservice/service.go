// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strconv"
	"time"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	LastNumber(ctx context.Context) (string, error)
	Unregister(ctx context.Context, number string, at time.Time) (domain.Account, error)
}

// UserRepo provides user data access needed by account service layer.
type UserRepo interface {
	Get(ctx context.Context, id int64) (domain.User, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo     Repo
	userRepo UserRepo
}

// New returns account service struct to manage account business logic.
func New(ar Repo, ur UserRepo) *Service {
	return &Service{
		repo:     ar,
		userRepo: ur,
	}
}

const firstAccountNumber = "1000000000"

func (s *Service) nextAccountNumber(ctx context.Context) (string, error) {
	last, err := s.repo.LastNumber(ctx)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return firstAccountNumber, nil
		}

		return "", err
	}

	n, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n+1, 10), nil
}

// Create creates an account for the given user with the initial balance.
// A user holds at most domain.MaxAccountsPerUser accounts.
func (s *Service) Create(ctx context.Context, userID, initialBalance int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		l.Info().Err(err).Int64("user_id", userID).Send()
		return domain.Account{}, err
	}

	count, err := s.repo.CountByUser(ctx, user.ID)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	if count >= domain.MaxAccountsPerUser {
		l.Info().Err(domain.ErrMaxAccountsPerUser).Int64("user_id", userID).Send()
		return domain.Account{}, domain.ErrMaxAccountsPerUser
	}

	number, err := s.nextAccountNumber(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	account, err := s.repo.Create(ctx, domain.CreateAccountParams{
		Number:       number,
		UserID:       user.ID,
		Balance:      initialBalance,
		RegisteredAt: time.Now(),
	})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	return account, nil
}

func validateUnregister(user domain.User, account domain.Account) error {
	if account.UserID != user.ID {
		return domain.ErrUserAccountMismatch
	}

	if account.Status == domain.AccountStatusUnregistered {
		return domain.ErrAccountAlreadyUnregistered
	}

	if account.Balance > 0 {
		return domain.ErrBalanceNotEmpty
	}

	return nil
}

// Unregister closes the given account. Only the owner can close it, and
// only when the balance is zero.
func (s *Service) Unregister(ctx context.Context, userID int64, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		l.Info().Err(err).Int64("user_id", userID).Send()
		return domain.Account{}, err
	}

	account, err := s.repo.GetByNumber(ctx, accountNumber)
	if err != nil {
		l.Info().Err(err).Str("account_number", accountNumber).Send()
		return domain.Account{}, err
	}

	if err := validateUnregister(user, account); err != nil {
		l.Info().Err(err).Str("account_number", accountNumber).Send()
		return domain.Account{}, err
	}

	unregistered, err := s.repo.Unregister(ctx, accountNumber, time.Now())
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	return unregistered, nil
}

// ListByUser returns the accounts owned by the given user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		l.Info().Err(err).Int64("user_id", userID).Send()
		return nil, err
	}

	accounts, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, err
	}

	return accounts, nil
}
