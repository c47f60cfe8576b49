// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-bot/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	History(ctx context.Context, id string, limit int) ([]domain.Transaction, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Balance returns the account balance and whether the account exists.
//
// The boolean is the absent-signal: callers must be able to tell a zero
// balance from an unknown account, so a missing id is not an error here.
func (s *Service) Balance(ctx context.Context, id string) (decimal.Decimal, bool) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return account.Balance, true
}

// History returns the most recent limit transactions in chronological order.
func (s *Service) History(ctx context.Context, id string, limit int) ([]domain.Transaction, error) {
	transactions, err := s.repo.History(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
