// Package gateway turns a conversation into a single model reply.
//
// Two channels are tried in a fixed order: an optional primary client
// (an SDK binding supplied by the caller) and the provider's REST
// chat-completion endpoint. Any primary failure falls through to REST
// instead of propagating.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/go-petr/bank-bot/internal/domain"
	"github.com/go-petr/bank-bot/pkg/configpkg"
)

const (
	completionsPath = "/v1/chat/completions"
	temperature     = 0.7
	maxTokens       = 500

	breakerFailureThreshold = 5
)

// ErrMissingAPIKey indicates the required credential was not supplied.
var ErrMissingAPIKey = errors.New("MISTRAL_API_KEY is not set")

// ChatClient is the primary invocation path. A nil client means no
// primary channel is configured and the gateway goes straight to REST.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []domain.Message) (string, error)
}

// Gateway sends the message list to the model provider and returns
// exactly one reply string.
type Gateway struct {
	client  ChatClient
	breaker *gobreaker.CircuitBreaker
	httpc   *http.Client
	apiKey  string
	model   string
	baseURL string
}

// New returns a gateway for the configured provider. A missing API key
// is a construction-time error; the instance must not be used after that.
func New(config configpkg.Config, client ChatClient, logger zerolog.Logger) (*Gateway, error) {
	if config.MistralAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	settings := gobreaker.Settings{
		Name: "primary-channel",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("channel", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &Gateway{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(settings),
		httpc:   &http.Client{Timeout: config.GatewayTimeout},
		apiKey:  config.MistralAPIKey,
		model:   config.MistralModel,
		baseURL: config.MistralBaseURL,
	}, nil
}

// Complete tries the primary channel first and falls back to REST on
// any error. The caller appends the reply to the session.
func (g *Gateway) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	l := zerolog.Ctx(ctx)

	if g.client != nil {
		reply, err := g.breaker.Execute(func() (any, error) {
			return g.client.Chat(ctx, g.model, messages)
		})
		if err == nil {
			return reply.(string), nil
		}

		l.Warn().Err(err).Msg("primary channel failed, falling back to REST")
	}

	return g.completeREST(ctx, messages)
}

type completionRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message domain.Message `json:"message"`
	} `json:"choices"`
}

func (g *Gateway) completeREST(ctx context.Context, messages []domain.Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var parsed completionResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrGatewayUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}
