// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSourceAccountNotFound indicates that the transfer source account is not found.
	ErrSourceAccountNotFound = errors.New("source account not found")
	// ErrDestinationAccountNotFound indicates that the transfer destination account is not found.
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	// ErrInvalidAmount indicates an unparseable transfer amount.
	ErrInvalidAmount = errors.New("invalid transfer amount")
	// ErrNonPositiveAmount indicates a zero or negative transfer amount.
	ErrNonPositiveAmount = errors.New("transfer amount must be positive")
	// ErrInsufficientFunds indicates that the source account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account types supported by the mock ledger.
const (
	Checking = "checking"
	Savings  = "savings"
)

// Account holds holder data, the current balance and the transaction log.
type Account struct {
	ID           string          `json:"id"`
	Holder       string          `json:"holder"`
	Type         string          `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}

// Transaction kinds.
const (
	Deposit    = "deposit"
	Withdrawal = "withdrawal"
	Transfer   = "transfer"
)

// Transaction is a single immutable entry in an account log.
// Date uses the YYYY-MM-DD calendar format.
type Transaction struct {
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
// Only the source account log records the transfer entry; the
// destination log is left untouched.
type TransferTxResult struct {
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
	Transaction Transaction `json:"transaction"`
}
