// Package ledgerrepo manages the in-memory data access layer of the mock ledger.
package ledgerrepo

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-bot/internal/domain"
)

// RepoMem holds the account arena for the life of the process.
//
// All accounts are seeded at construction time and never deleted.
// A single lock serializes transfers, which is stronger than the
// per-pair serialization the atomicity invariant needs.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewRepoMem returns a ledger repo seeded with the fixture accounts.
func NewRepoMem() *RepoMem {
	return &RepoMem{accounts: seedAccounts()}
}

func seedAccounts() map[string]*domain.Account {
	return map[string]*domain.Account{
		"ACC001": {
			ID:      "ACC001",
			Holder:  "John Doe",
			Type:    domain.Checking,
			Balance: decimal.NewFromFloat(5000.00),
			Transactions: []domain.Transaction{
				{Date: "2024-12-10", Kind: domain.Deposit, Amount: decimal.NewFromFloat(1000.00), Description: "Salary"},
				{Date: "2024-12-08", Kind: domain.Withdrawal, Amount: decimal.NewFromFloat(200.00), Description: "ATM"},
			},
		},
		"ACC002": {
			ID:      "ACC002",
			Holder:  "Jane Smith",
			Type:    domain.Savings,
			Balance: decimal.NewFromFloat(15000.00),
			Transactions: []domain.Transaction{
				{Date: "2024-12-12", Kind: domain.Deposit, Amount: decimal.NewFromFloat(500.00), Description: "Transfer"},
			},
		},
	}
}

func copyAccount(a *domain.Account) domain.Account {
	out := *a
	out.Transactions = make([]domain.Transaction, len(a.Transactions))
	copy(out.Transactions, a.Transactions)

	return out
}

// Get returns a copy of the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return copyAccount(acc), nil
}

// History returns the most recent limit transactions of the account in
// insertion order. A limit of 0 or less returns the full log.
func (r *RepoMem) History(ctx context.Context, id string, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	start := 0
	if limit > 0 && len(acc.Transactions) > limit {
		start = len(acc.Transactions) - limit
	}

	out := make([]domain.Transaction, len(acc.Transactions)-start)
	copy(out, acc.Transactions[start:])

	return out, nil
}

// Transfer debits the source, credits the destination and appends the
// transfer entry to the source log, all under one lock so no partial
// state is visible to other readers.
//
// Preconditions are rechecked here so the repo stays consistent even
// when called around the service layer.
func (r *RepoMem) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.accounts[arg.FromAccountID]
	if !ok {
		return domain.TransferTxResult{}, domain.ErrSourceAccountNotFound
	}

	to, ok := r.accounts[arg.ToAccountID]
	if !ok {
		return domain.TransferTxResult{}, domain.ErrDestinationAccountNotFound
	}

	if arg.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.TransferTxResult{}, domain.ErrNonPositiveAmount
	}

	if from.Balance.LessThan(arg.Amount) {
		return domain.TransferTxResult{}, domain.ErrInsufficientFunds
	}

	// Self-transfer is allowed and nets to zero.
	from.Balance = from.Balance.Sub(arg.Amount)
	to.Balance = to.Balance.Add(arg.Amount)

	tx := domain.Transaction{
		Date:        time.Now().Format("2006-01-02"),
		Kind:        domain.Transfer,
		Amount:      arg.Amount,
		Description: "Transfer to " + arg.ToAccountID,
	}
	// The destination log is intentionally not appended; only the
	// source account records the transfer.
	from.Transactions = append(from.Transactions, tx)

	l.Info().
		Str("from", arg.FromAccountID).
		Str("to", arg.ToAccountID).
		Str("amount", arg.Amount.StringFixed(2)).
		Msg("transfer applied")

	return domain.TransferTxResult{
		FromAccount: copyAccount(from),
		ToAccount:   copyAccount(to),
		Transaction: tx,
	}, nil
}
