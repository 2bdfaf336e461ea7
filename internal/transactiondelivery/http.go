// Package transactiondelivery manages delivery layer of balance transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/pkg/errorspkg"
	"github.com/go-woori/bank-ledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (domain.Transaction, error)
	CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (domain.Transaction, error)
	Get(ctx context.Context, transactionID string) (domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type transactionData struct {
	AccountNumber   string                       `json:"account_number"`
	TransactionType domain.TransactionType       `json:"transaction_type"`
	ResultType      domain.TransactionResultType `json:"transaction_result_type"`
	TransactionID   string                       `json:"transaction_id"`
	Amount          int64                        `json:"amount"`
	BalanceSnapshot int64                        `json:"balance_snapshot"`
	TransactedAt    time.Time                    `json:"transacted_at"`
}

func toTransactionData(t domain.Transaction) transactionData {
	return transactionData{
		AccountNumber:   t.AccountNumber,
		TransactionType: t.Type,
		ResultType:      t.Result,
		TransactionID:   t.TransactionID,
		Amount:          t.Amount,
		BalanceSnapshot: t.BalanceSnapshot,
		TransactedAt:    t.TransactedAt,
	}
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func statusFromError(err error) int {
	switch err {
	case domain.ErrUserNotFound,
		domain.ErrAccountNotFound,
		domain.ErrTransactionNotFound:
		return http.StatusNotFound
	case domain.ErrUserAccountMismatch,
		domain.ErrAccountAlreadyUnregistered,
		domain.ErrAmountExceedsBalance,
		domain.ErrTransactionAccountMismatch,
		domain.ErrCancelMustBeFull,
		domain.ErrTooOldToCancel:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

type useRequest struct {
	UserID        int64  `json:"user_id" binding:"required,min=1"`
	AccountNumber string `json:"account_number" binding:"required,len=10,numeric"`
	Amount        int64  `json:"amount" binding:"required,min=1"`
}

// Use handles http request to use balance on an account.
func (h *Handler) Use(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req useRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.UseBalance(ctx, req.UserID, req.AccountNumber, req.Amount)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: toTransactionData(transaction)})
}

type cancelRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required,len=10,numeric"`
	Amount        int64  `json:"amount" binding:"required,min=1"`
}

// Cancel handles http request to cancel a prior use transaction.
func (h *Handler) Cancel(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req cancelRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.CancelBalance(ctx, req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: toTransactionData(transaction)})
}

type getRequest struct {
	TransactionID string `uri:"transaction_id" binding:"required"`
}

// Get handles http request to query a transaction by its id.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	transaction, err := h.service.Get(ctx, req.TransactionID)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: toTransactionData(transaction)})
}
