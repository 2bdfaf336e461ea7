//go:build integration

package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/internal/test"
	"github.com/go-woori/bank-ledger/pkg/dbpkg/integrationtest"
	"github.com/go-woori/bank-ledger/pkg/web"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

type transactionData struct {
	AccountNumber   string                       `json:"account_number"`
	TransactionType domain.TransactionType       `json:"transaction_type"`
	ResultType      domain.TransactionResultType `json:"transaction_result_type"`
	TransactionID   string                       `json:"transaction_id"`
	Amount          int64                        `json:"amount"`
	BalanceSnapshot int64                        `json:"balance_snapshot"`
	TransactedAt    time.Time                    `json:"transacted_at"`
}

func decodeTransaction(t *testing.T, w *httptest.ResponseRecorder) (transactionData, string) {
	t.Helper()

	res := web.Response{Data: &transactionData{}}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return *res.Data.(*transactionData), res.Error
}

func TestTransactionLifecycle(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	account := test.SeedAccountWithBalance(t, server.DB, user.ID, 10_000)

	// Use part of the balance.
	w := postJSON(t, "/transaction/use", gin.H{
		"user_id":        user.ID,
		"account_number": account.Number,
		"amount":         1000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("use: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	used, _ := decodeTransaction(t, w)

	want := transactionData{
		AccountNumber:   account.Number,
		TransactionType: domain.TransactionTypeUse,
		ResultType:      domain.TransactionResultSuccess,
		TransactionID:   used.TransactionID,
		Amount:          1000,
		BalanceSnapshot: 9000,
		TransactedAt:    time.Now().UTC(),
	}

	approxTime := cmpopts.EquateApproxTime(5 * time.Second)
	if diff := cmp.Diff(want, used, approxTime); diff != "" {
		t.Errorf("use response mismatch (-want +got):\n%s", diff)
	}

	if used.TransactionID == "" {
		t.Fatal("use response carries no transaction id")
	}

	// Query it back.
	w = getJSON(t, "/transaction/"+used.TransactionID)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	got, _ := decodeTransaction(t, w)
	if diff := cmp.Diff(used, got, approxTime); diff != "" {
		t.Errorf("queried transaction mismatch (-want +got):\n%s", diff)
	}

	// Cancel it in full.
	w = postJSON(t, "/transaction/cancel", gin.H{
		"transaction_id": used.TransactionID,
		"account_number": account.Number,
		"amount":         1000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	cancelled, _ := decodeTransaction(t, w)

	if cancelled.TransactionType != domain.TransactionTypeCancel {
		t.Errorf("cancel type got %v, want %v", cancelled.TransactionType, domain.TransactionTypeCancel)
	}

	if cancelled.ResultType != domain.TransactionResultSuccess {
		t.Errorf("cancel result got %v, want %v", cancelled.ResultType, domain.TransactionResultSuccess)
	}

	if cancelled.BalanceSnapshot != 10_000 {
		t.Errorf("balance after cancel got %v, want %v", cancelled.BalanceSnapshot, 10_000)
	}
}

func TestUseBalanceFailureIsRecorded(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	account := test.SeedAccountWithBalance(t, server.DB, user.ID, 100)

	w := postJSON(t, "/transaction/use", gin.H{
		"user_id":        user.ID,
		"account_number": account.Number,
		"amount":         1000,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status code got %v, want %v, body %v", w.Code, http.StatusBadRequest, w.Body)
	}

	_, errMsg := decodeTransaction(t, w)
	if errMsg != domain.ErrAmountExceedsBalance.Error() {
		t.Errorf("error got %q, want %q", errMsg, domain.ErrAmountExceedsBalance.Error())
	}

	// The failed attempt must leave an audit record with the balance untouched.
	var transactionID string

	row := server.DB.QueryRow(
		`SELECT transaction_id FROM transactions WHERE account_id = $1 AND result_type = $2`,
		account.ID, string(domain.TransactionResultFail))
	if err := row.Scan(&transactionID); err != nil {
		t.Fatalf("looking up failure record: %v", err)
	}

	w = getJSON(t, "/transaction/"+transactionID)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status code got %v, want %v, body %v", w.Code, http.StatusOK, w.Body)
	}

	failed, _ := decodeTransaction(t, w)

	if failed.ResultType != domain.TransactionResultFail {
		t.Errorf("result got %v, want %v", failed.ResultType, domain.TransactionResultFail)
	}

	if failed.BalanceSnapshot != 100 {
		t.Errorf("balance snapshot got %v, want %v", failed.BalanceSnapshot, 100)
	}
}

func TestCancelTooOldTransaction(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	account := test.SeedAccountWithBalance(t, server.DB, user.ID, 9000)

	old := test.SeedTransaction(t, server.DB, domain.CreateTransactionParams{
		TransactionID:   strings.ReplaceAll(uuid.NewString(), "-", ""),
		AccountID:       account.ID,
		Type:            domain.TransactionTypeUse,
		Result:          domain.TransactionResultSuccess,
		Amount:          1000,
		BalanceSnapshot: 9000,
		TransactedAt:    time.Now().AddDate(-1, 0, -1).UTC(),
	})

	w := postJSON(t, "/transaction/cancel", gin.H{
		"transaction_id": old.TransactionID,
		"account_number": account.Number,
		"amount":         1000,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status code got %v, want %v, body %v", w.Code, http.StatusBadRequest, w.Body)
	}

	_, errMsg := decodeTransaction(t, w)
	if errMsg != domain.ErrTooOldToCancel.Error() {
		t.Errorf("error got %q, want %q", errMsg, domain.ErrTooOldToCancel.Error())
	}
}
