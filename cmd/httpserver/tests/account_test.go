//go:build integration

package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/internal/test"
	"github.com/go-woori/bank-ledger/pkg/dbpkg/integrationtest"
	"github.com/go-woori/bank-ledger/pkg/web"
)

type accountData struct {
	UserID         int64     `json:"user_id"`
	AccountNumber  string    `json:"account_number"`
	Balance        int64     `json:"balance"`
	RegisteredAt   time.Time `json:"registered_at"`
	UnregisteredAt time.Time `json:"unregistered_at"`
}

func decodeAccount(t *testing.T, w *httptest.ResponseRecorder) (accountData, string) {
	t.Helper()

	res := web.Response{Data: &accountData{}}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return *res.Data.(*accountData), res.Error
}

func TestAccountLifecycle(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)

	// Open an account.
	w := postJSON(t, "/accounts", gin.H{
		"user_id":         user.ID,
		"initial_balance": 500,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	created, _ := decodeAccount(t, w)

	if created.UserID != user.ID {
		t.Errorf("user id got %v, want %v", created.UserID, user.ID)
	}

	if len(created.AccountNumber) != 10 {
		t.Errorf("account number %q is not 10 digits", created.AccountNumber)
	}

	if created.Balance != 500 {
		t.Errorf("balance got %v, want %v", created.Balance, 500)
	}

	// It shows up in the user's account list.
	w = getJSON(t, "/accounts?user_id="+formatID(user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("list: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	listRes := web.Response{Data: &[]accountData{}}
	if err := json.NewDecoder(w.Body).Decode(&listRes); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	accounts := *listRes.Data.(*[]accountData)
	if len(accounts) != 1 || accounts[0].AccountNumber != created.AccountNumber {
		t.Errorf("account list got %+v, want the created account only", accounts)
	}

	// A non-empty account cannot be closed.
	w = postDelete(t, "/accounts", gin.H{
		"user_id":        user.ID,
		"account_number": created.AccountNumber,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unregister: status code got %v, want %v, body %v", w.Code, http.StatusBadRequest, w.Body)
	}

	_, errMsg := decodeAccount(t, w)
	if errMsg != domain.ErrBalanceNotEmpty.Error() {
		t.Errorf("error got %q, want %q", errMsg, domain.ErrBalanceNotEmpty.Error())
	}

	// Spend the balance down to zero, then close.
	w = postJSON(t, "/transaction/use", gin.H{
		"user_id":        user.ID,
		"account_number": created.AccountNumber,
		"amount":         500,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("use: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	w = postDelete(t, "/accounts", gin.H{
		"user_id":        user.ID,
		"account_number": created.AccountNumber,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unregister: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	closed, _ := decodeAccount(t, w)
	if closed.UnregisteredAt.IsZero() {
		t.Error("unregistered account carries no unregistered_at timestamp")
	}
}

func TestCreateAccountLimit(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)

	for i := 0; i < domain.MaxAccountsPerUser; i++ {
		test.SeedAccountWithBalance(t, server.DB, user.ID, 0)
	}

	w := postJSON(t, "/accounts", gin.H{
		"user_id": user.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status code got %v, want %v, body %v", w.Code, http.StatusBadRequest, w.Body)
	}

	_, errMsg := decodeAccount(t, w)
	if errMsg != domain.ErrMaxAccountsPerUser.Error() {
		t.Errorf("error got %q, want %q", errMsg, domain.ErrMaxAccountsPerUser.Error())
	}
}
