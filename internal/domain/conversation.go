package domain

import "errors"

// ErrGatewayUnavailable indicates that the model provider could not
// produce a reply on any configured channel.
var ErrGatewayUnavailable = errors.New("model gateway unavailable")

// Message roles as expected by the chat completion contract.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
