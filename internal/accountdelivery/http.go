// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-bot/internal/domain"
	"github.com/go-petr/bank-bot/pkg/errorspkg"
	"github.com/go-petr/bank-bot/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	Balance(ctx context.Context, id string) (decimal.Decimal, bool)
	History(ctx context.Context, id string, limit int) ([]domain.Transaction, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type uriRequest struct {
	ID string `uri:"id" binding:"required"`
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: &web.JSONError{Error: errMsg}})

		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			e := web.Error(err)
			gctx.JSON(http.StatusNotFound, web.Response{Error: &e})

			return
		}

		e := web.Error(errorspkg.ErrInternal)
		gctx.JSON(http.StatusInternalServerError, web.Response{Error: &e})

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

type balanceData struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}
type balanceResponse struct {
	Data balanceData `json:"data,omitempty"`
}

// GetBalance handles http request to get the account balance.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: &web.JSONError{Error: errMsg}})

		return
	}

	balance, ok := h.service.Balance(ctx, req.ID)
	if !ok {
		e := web.Error(domain.ErrAccountNotFound)
		gctx.JSON(http.StatusNotFound, web.Response{Error: &e})

		return
	}

	res := balanceResponse{
		Data: balanceData{
			AccountID: req.ID,
			Balance:   balance.StringFixed(2),
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type historyRequest struct {
	Limit int `form:"limit,default=5" binding:"min=1,max=100"`
}

type historyData struct {
	AccountID    string               `json:"account_id"`
	Transactions []domain.Transaction `json:"transactions"`
}
type historyResponse struct {
	Data historyData `json:"data,omitempty"`
}

// GetHistory handles http request to list recent account transactions.
func (h *Handler) GetHistory(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: &web.JSONError{Error: err.Error()}})

		return
	}

	var req historyRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: &web.JSONError{Error: errMsg}})

		return
	}

	transactions, err := h.service.History(ctx, uri.ID, req.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			e := web.Error(err)
			gctx.JSON(http.StatusNotFound, web.Response{Error: &e})

			return
		}

		e := web.Error(errorspkg.ErrInternal)
		gctx.JSON(http.StatusInternalServerError, web.Response{Error: &e})

		return
	}

	res := historyResponse{
		Data: historyData{
			AccountID:    uri.ID,
			Transactions: transactions,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
