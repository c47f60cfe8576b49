// Package session holds the multi-turn conversation state of a bot instance.
package session

import (
	"sync"

	"github.com/go-petr/bank-bot/internal/domain"
)

// Session accumulates user and assistant turns in call order.
//
// A session belongs to exactly one bot instance but is served by
// concurrent HTTP handlers, so every method holds the session lock.
// The system message is never stored here.
type Session struct {
	mu       sync.Mutex
	messages []domain.Message
}

// New returns an empty conversation session.
func New() *Session {
	return &Session{}
}

// AppendUser records a user turn.
func (s *Session) AppendUser(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, domain.Message{Role: domain.RoleUser, Content: content})
}

// AppendAssistant records an assistant turn.
func (s *Session) AppendAssistant(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, domain.Message{Role: domain.RoleAssistant, Content: content})
}

// Reset clears the whole history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
}

// Len returns the number of stored turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.messages)
}

// Snapshot returns a copy of the full history in insertion order.
func (s *Session) Snapshot() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)

	return out
}

// Window returns a copy of the trailing n messages. When n is 0 or
// less the full history is returned and context grows without bound.
func (s *Session) Window(n int) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if n > 0 && len(s.messages) > n {
		start = len(s.messages) - n
	}

	out := make([]domain.Message, len(s.messages)-start)
	copy(out, s.messages[start:])

	return out
}
