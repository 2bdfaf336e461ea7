// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID, initialBalance int64) (domain.Account, error)
	Unregister(ctx context.Context, userID int64, accountNumber string) (domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type accountData struct {
	UserID         int64     `json:"user_id"`
	AccountNumber  string    `json:"account_number"`
	Balance        int64     `json:"balance"`
	RegisteredAt   time.Time `json:"registered_at"`
	UnregisteredAt time.Time `json:"unregistered_at,omitempty"`
}

func toAccountData(a domain.Account) accountData {
	return accountData{
		UserID:         a.UserID,
		AccountNumber:  a.Number,
		Balance:        a.Balance,
		RegisteredAt:   a.RegisteredAt,
		UnregisteredAt: a.UnregisteredAt,
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
	case domain.ErrUserNotFound, domain.ErrAccountNotFound:
		return http.StatusNotFound
	case domain.ErrUserAccountMismatch,
		domain.ErrAccountAlreadyUnregistered,
		domain.ErrMaxAccountsPerUser,
		domain.ErrBalanceNotEmpty:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

type createRequest struct {
	UserID         int64 `json:"user_id" binding:"required,min=1"`
	InitialBalance int64 `json:"initial_balance" binding:"min=0"`
}

// Create handles http request to create an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	account, err := h.service.Create(ctx, req.UserID, req.InitialBalance)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: toAccountData(account)})
}

type unregisterRequest struct {
	UserID        int64  `json:"user_id" binding:"required,min=1"`
	AccountNumber string `json:"account_number" binding:"required,len=10,numeric"`
}

// Unregister handles http request to close an account.
func (h *Handler) Unregister(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req unregisterRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	account, err := h.service.Unregister(ctx, req.UserID, req.AccountNumber)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: toAccountData(account)})
}

type listRequest struct {
	UserID int64 `form:"user_id" binding:"required,min=1"`
}

// List handles http request to list a user's accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	accounts, err := h.service.ListByUser(ctx, req.UserID)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, web.Error(err))

		return
	}

	items := make([]accountData, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, toAccountData(a))
	}

	gctx.JSON(http.StatusOK, web.Response{Data: items})
}
