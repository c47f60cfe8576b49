// Package chatdelivery manages delivery layer of the conversation.
package chatdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-bot/internal/domain"
	"github.com/go-petr/bank-bot/pkg/errorspkg"
	"github.com/go-petr/bank-bot/pkg/web"
)

// Service provides service layer interface needed by chat delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package chatdelivery
type Service interface {
	ChatResult(ctx context.Context, userMessage string) (string, error)
	Reset()
	History() []domain.Message
}

// Dispatcher routes typed banking commands.
type Dispatcher interface {
	ProcessCommand(ctx context.Context, input string) string
}

// Handler facilitates chat delivery layer logic.
type Handler struct {
	service    Service
	dispatcher Dispatcher
}

// NewHandler returns chat handler.
func NewHandler(cs Service, d Dispatcher) Handler {
	return Handler{service: cs, dispatcher: d}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type chatData struct {
	Reply string `json:"reply"`
}
type chatResponse struct {
	Data chatData `json:"data,omitempty"`
}

// Chat handles http request for one free-form conversation turn.
//
// A gateway failure maps to 502; the reply text still carries the
// error string the chat service produced.
func (h *Handler) Chat(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req chatRequest
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

	reply, err := h.service.ChatResult(ctx, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			e := web.Error(err)
			gctx.JSON(http.StatusBadGateway, web.Response{
				Data:  chatData{Reply: reply},
				Error: &e,
			})

			return
		}

		e := web.Error(errorspkg.ErrInternal)
		gctx.JSON(http.StatusInternalServerError, web.Response{Error: &e})

		return
	}

	gctx.JSON(http.StatusOK, chatResponse{Data: chatData{Reply: reply}})
}

type commandRequest struct {
	Command string `json:"command" binding:"required"`
}

type commandData struct {
	Output string `json:"output"`
}
type commandResponse struct {
	Data commandData `json:"data,omitempty"`
}

// Command handles http request to run one dispatcher line.
func (h *Handler) Command(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req commandRequest
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

	output := h.dispatcher.ProcessCommand(ctx, req.Command)

	gctx.JSON(http.StatusOK, commandResponse{Data: commandData{Output: output}})
}

type historyData struct {
	Messages []domain.Message `json:"messages"`
}
type historyResponse struct {
	Data historyData `json:"data,omitempty"`
}

// History handles http request to read the stored conversation turns.
func (h *Handler) History(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, historyResponse{Data: historyData{Messages: h.service.History()}})
}

// Reset handles http request to clear the conversation history.
func (h *Handler) Reset(gctx *gin.Context) {
	h.service.Reset()
	gctx.Status(http.StatusNoContent)
}
