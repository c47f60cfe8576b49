// Package botservice routes raw input to the ledger or the conversation.
//
// The dispatch table is flat and first-match wins: a recognized command
// prefix with enough tokens goes to the ledger services, everything
// else is free-form chat.
package botservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-bot/internal/domain"
)

// DefaultHistoryLimit caps how many transactions the history command prints.
const DefaultHistoryLimit = 5

// AccountService provides account queries needed by the dispatcher.
//
//go:generate mockgen -source service.go -destination service_mock.go -package botservice
type AccountService interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	Balance(ctx context.Context, id string) (decimal.Decimal, bool)
	History(ctx context.Context, id string, limit int) ([]domain.Transaction, error)
}

// TransferService provides fund movement needed by the dispatcher.
type TransferService interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// ChatService provides the free-form conversation path.
type ChatService interface {
	Chat(ctx context.Context, userMessage string) string
	Reset()
}

// Service is the bot facade consumed by the CLI loop and the HTTP layer.
type Service struct {
	accounts  AccountService
	transfers TransferService
	chat      ChatService
}

// New returns the bot service over the given collaborators.
func New(as AccountService, ts TransferService, cs ChatService) *Service {
	return &Service{
		accounts:  as,
		transfers: ts,
		chat:      cs,
	}
}

// ProcessCommand parses one line of user input and returns one line
// (or block) of output. Command prefixes are case-sensitive; input
// with a recognized prefix but too few tokens falls through to chat.
func (s *Service) ProcessCommand(ctx context.Context, input string) string {
	switch {
	case strings.HasPrefix(input, "balance"):
		fields := strings.Fields(input)
		if len(fields) > 1 {
			return s.balanceText(ctx, fields[1])
		}

	case strings.HasPrefix(input, "transfer"):
		fields := strings.Fields(input)
		if len(fields) >= 4 {
			return s.transferText(ctx, fields[1], fields[2], fields[3])
		}

	case strings.HasPrefix(input, "history"):
		fields := strings.Fields(input)
		if len(fields) > 1 {
			return s.historyText(ctx, fields[1])
		}
	}

	return s.chat.Chat(ctx, input)
}

func (s *Service) balanceText(ctx context.Context, id string) string {
	balance, ok := s.accounts.Balance(ctx, id)
	if !ok {
		return fmt.Sprintf("Account %s not found", id)
	}

	return fmt.Sprintf("Account %s balance: $%s", id, balance.StringFixed(2))
}

func (s *Service) transferText(ctx context.Context, from, to, rawAmount string) string {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		// The ledger is not touched on a parse failure.
		return "Invalid transfer amount"
	}

	result, err := s.transfers.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSourceAccountNotFound):
			return fmt.Sprintf("Source account %s not found", from)
		case errors.Is(err, domain.ErrDestinationAccountNotFound):
			return fmt.Sprintf("Destination account %s not found", to)
		case errors.Is(err, domain.ErrNonPositiveAmount):
			return "Transfer amount must be positive"
		case errors.Is(err, domain.ErrInsufficientFunds):
			return "Insufficient funds"
		default:
			return "Transfer failed"
		}
	}

	return fmt.Sprintf("Transferred $%s from %s to %s",
		result.Transaction.Amount.StringFixed(2), from, to)
}

func (s *Service) historyText(ctx context.Context, id string) string {
	transactions, err := s.accounts.History(ctx, id, DefaultHistoryLimit)
	if err != nil {
		return fmt.Sprintf("Account %s not found", id)
	}

	lines := make([]string, 0, len(transactions)+1)
	lines = append(lines, fmt.Sprintf("Recent transactions for %s:", id))

	for _, t := range transactions {
		lines = append(lines, fmt.Sprintf("  %s: %s $%s - %s",
			t.Date, t.Kind, t.Amount.StringFixed(2), t.Description))
	}

	return strings.Join(lines, "\n")
}

// Chat forwards free-form text to the conversation.
func (s *Service) Chat(ctx context.Context, userMessage string) string {
	return s.chat.Chat(ctx, userMessage)
}

// GetAccountInfo returns the full account record.
func (s *Service) GetAccountInfo(ctx context.Context, id string) (domain.Account, error) {
	return s.accounts.Get(ctx, id)
}

// GetAccountBalance returns the balance and the absent-signal.
func (s *Service) GetAccountBalance(ctx context.Context, id string) (decimal.Decimal, bool) {
	return s.accounts.Balance(ctx, id)
}

// GetTransactionHistory returns the most recent limit transactions.
func (s *Service) GetTransactionHistory(ctx context.Context, id string, limit int) ([]domain.Transaction, error) {
	return s.accounts.History(ctx, id, limit)
}

// TransferFunds moves amount between two ledger accounts.
func (s *Service) TransferFunds(ctx context.Context, from, to string, amount decimal.Decimal) (domain.TransferTxResult, error) {
	return s.transfers.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
	})
}

// ResetConversation clears the conversation history.
func (s *Service) ResetConversation() {
	s.chat.Reset()
}
