// Package chatservice manages business logic layer of free-form conversation.
package chatservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-petr/bank-bot/internal/domain"
	"github.com/go-petr/bank-bot/internal/session"
)

// The system message is rebuilt for every call and never stored in the
// session history.
const systemPrompt = `You are a helpful banking assistant powered by Mistral AI. You help customers with:
- Account information and balance inquiries
- Transaction history
- Fund transfers between accounts
- General banking questions
- Security and fraud prevention advice

Be professional, secure (never ask for sensitive data), and helpful.
When users ask about specific accounts or transactions, acknowledge the information provided.
Always encourage secure banking practices.`

// Completer provides the gateway interface needed by chat service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package chatservice
type Completer interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

// Service orchestrates the conversation session and the model gateway.
type Service struct {
	session *session.Session
	gateway Completer
	window  int
}

// New returns chat service struct owning a fresh conversation session.
// window limits how many trailing turns each gateway call carries;
// 0 sends the entire history.
func New(g Completer, window int) *Service {
	return &Service{
		session: session.New(),
		gateway: g,
		window:  window,
	}
}

// ChatResult appends the user turn, asks the gateway for a reply and
// appends it back to the session.
//
// On a gateway failure the returned string is a user-visible error
// text shaped like the reply, and the typed error is returned along
// with it so structured callers can tell the two apart.
func (s *Service) ChatResult(ctx context.Context, userMessage string) (string, error) {
	l := zerolog.Ctx(ctx)

	s.session.AppendUser(userMessage)

	messages := make([]domain.Message, 0, s.session.Len()+1)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	messages = append(messages, s.session.Window(s.window)...)

	reply, err := s.gateway.Complete(ctx, messages)
	if err != nil {
		l.Error().Err(err).Msg("gateway completion failed")

		if errors.Is(err, domain.ErrGatewayUnavailable) {
			reply = fmt.Sprintf("Error calling Mistral API: %v", err)
		} else {
			reply = fmt.Sprintf("Sorry, I encountered an error: %v", err)
		}
	}

	s.session.AppendAssistant(reply)

	return reply, err
}

// Chat returns one reply string for one user message. Gateway failures
// surface as error-shaped reply text, never as an error.
func (s *Service) Chat(ctx context.Context, userMessage string) string {
	reply, _ := s.ChatResult(ctx, userMessage)
	return reply
}

// Reset clears the conversation history.
func (s *Service) Reset() {
	s.session.Reset()
}

// History returns a copy of the stored conversation turns.
func (s *Service) History() []domain.Message {
	return s.session.Snapshot()
}
