// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

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

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type createRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required"`
	ToAccountID   string `json:"to_account_id" binding:"required"`
	Amount        string `json:"amount" binding:"required,decimal"`
}

type data struct {
	Result domain.TransferTxResult `json:"result"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to transfer funds between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		e := web.Error(domain.ErrInvalidAmount)
		gctx.JSON(http.StatusBadRequest, web.Response{Error: &e})

		return
	}

	result, err := h.service.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
	})
	if err != nil {
		e := web.Error(err)

		switch {
		case errors.Is(err, domain.ErrSourceAccountNotFound),
			errors.Is(err, domain.ErrDestinationAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Response{Error: &e})
		case errors.Is(err, domain.ErrNonPositiveAmount),
			errors.Is(err, domain.ErrInsufficientFunds):
			gctx.JSON(http.StatusBadRequest, web.Response{Error: &e})
		default:
			e = web.Error(errorspkg.ErrInternal)
			gctx.JSON(http.StatusInternalServerError, web.Response{Error: &e})
		}

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{result}})
}
