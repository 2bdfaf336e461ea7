// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/go-woori/bank-ledger/internal/accountrepo"
	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/internal/transactionrepo"
	"github.com/go-woori/bank-ledger/internal/userrepo"
	"github.com/go-woori/bank-ledger/pkg/dbpkg"
	"github.com/go-woori/bank-ledger/pkg/randompkg"
)

// SeedUser creates a random user.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	name := randompkg.Owner()

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %v) returned error: %v", name, err)
	}

	return user
}

// SeedAccountWithBalance creates an account with the given balance for the given user.
func SeedAccountWithBalance(t *testing.T, tx dbpkg.SQLInterface, userID, balance int64) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		Number:       randompkg.AccountNumber(),
		UserID:       userID,
		Balance:      balance,
		RegisteredAt: time.Now().Truncate(time.Second).UTC(),
	}

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedTransaction creates a transaction row with the given parameters.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateTransactionParams) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewRepoPGS(tx)

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}
