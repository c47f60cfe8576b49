package chatservice

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-bot/internal/domain"
)

func TestChatAppendsTurns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := NewMockCompleter(ctrl)
	service := New(completer, 0)
	ctx := context.Background()

	var sent []domain.Message

	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, messages []domain.Message) (string, error) {
			sent = append([]domain.Message{}, messages...)
			return "You have two accounts.", nil
		})

	reply := service.Chat(ctx, "list my accounts")
	require.Equal(t, "You have two accounts.", reply)

	// One synthesized system message plus the single user turn.
	require.Len(t, sent, 2)
	require.Equal(t, domain.RoleSystem, sent[0].Role)
	require.Equal(t, domain.RoleUser, sent[1].Role)
	require.Equal(t, "list my accounts", sent[1].Content)

	// The stored history never contains the system message.
	history := service.History()
	require.Len(t, history, 2)
	require.Equal(t, domain.RoleUser, history[0].Role)
	require.Equal(t, domain.RoleAssistant, history[1].Role)
	require.Equal(t, "You have two accounts.", history[1].Content)
}

func TestChatCarriesFullHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := NewMockCompleter(ctrl)
	service := New(completer, 0)
	ctx := context.Background()

	var lastLen int

	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, messages []domain.Message) (string, error) {
			lastLen = len(messages)
			return "ok", nil
		})

	service.Chat(ctx, "first")
	require.Equal(t, 2, lastLen) // system + 1 user

	service.Chat(ctx, "second")
	require.Equal(t, 4, lastLen) // system + user/assistant + user

	service.Chat(ctx, "third")
	require.Equal(t, 6, lastLen)
}

func TestChatWindowLimitsContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := NewMockCompleter(ctrl)
	service := New(completer, 2)
	ctx := context.Background()

	var lastLen int

	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, messages []domain.Message) (string, error) {
			lastLen = len(messages)
			return "ok", nil
		})

	service.Chat(ctx, "first")
	service.Chat(ctx, "second")
	service.Chat(ctx, "third")

	// system + at most 2 trailing turns, while the stored history keeps growing.
	require.Equal(t, 3, lastLen)
	require.Len(t, service.History(), 6)
}

func TestResetClearsContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := NewMockCompleter(ctrl)
	service := New(completer, 0)
	ctx := context.Background()

	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(1).
		Return("hi", nil)

	service.Chat(ctx, "first")
	service.Reset()
	require.Empty(t, service.History())

	// The next call carries no prior turns.
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, messages []domain.Message) (string, error) {
			require.Len(t, messages, 2)
			return "hello again", nil
		})

	service.Chat(ctx, "second")
}

func TestChatConcurrentTurns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := NewMockCompleter(ctrl)
	service := New(completer, 0)
	ctx := context.Background()

	const callers = 8

	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(callers).
		Return("ok", nil)

	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()
			service.Chat(ctx, fmt.Sprintf("question %d", n))
		}(i)
	}

	wg.Wait()

	// Every user turn and its assistant reply survive interleaving.
	history := service.History()
	require.Len(t, history, 2*callers)

	var users, assistants int
	for _, m := range history {
		switch m.Role {
		case domain.RoleUser:
			users++
		case domain.RoleAssistant:
			assistants++
		}
	}

	require.Equal(t, callers, users)
	require.Equal(t, callers, assistants)
}

func TestChatGatewayFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	completer := NewMockCompleter(ctrl)
	service := New(completer, 0)
	ctx := context.Background()

	wrapped := fmt.Errorf("%w: status 503", domain.ErrGatewayUnavailable)

	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(1).
		Return("", wrapped)

	reply, err := service.ChatResult(ctx, "hello")
	require.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	require.Contains(t, reply, "Error calling Mistral API")

	// The error-shaped reply is recorded as the assistant turn.
	history := service.History()
	require.Len(t, history, 2)
	require.Equal(t, reply, history[1].Content)

	// Chat callers get the text only, never an error.
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Times(1).
		Return("", wrapped)

	text := service.Chat(ctx, "still there?")
	require.Contains(t, text, "Error calling Mistral API")
}
