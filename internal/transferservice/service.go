// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-bot/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo Repo
}

// New return transfer service struct to manage transfer bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Precondition order matters: the first failing check wins and the
// later ones are not evaluated.
func (s *Service) validRequest(ctx context.Context, arg domain.CreateTransferParams) error {
	l := zerolog.Ctx(ctx)

	fromAccount, err := s.repo.Get(ctx, arg.FromAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrSourceAccountNotFound
		}

		l.Error().Err(err).Send()

		return err
	}

	if _, err = s.repo.Get(ctx, arg.ToAccountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrDestinationAccountNotFound
		}

		l.Error().Err(err).Send()

		return err
	}

	if arg.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveAmount
	}

	// Self-transfer is permitted; the amount must still not exceed
	// the source balance.
	if fromAccount.Balance.LessThan(arg.Amount) {
		return domain.ErrInsufficientFunds
	}

	return nil
}

// Transfer checks if transfer request is valid and then executes transfer.
//
// A failed check leaves both accounts untouched.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	if err := s.validRequest(ctx, arg); err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}
