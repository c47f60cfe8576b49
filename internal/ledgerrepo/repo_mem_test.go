package ledgerrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-bot/internal/domain"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func TestSeedState(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	acc1, err := repo.Get(ctx, "ACC001")
	require.NoError(t, err)
	require.Equal(t, "John Doe", acc1.Holder)
	require.Equal(t, domain.Checking, acc1.Type)
	require.True(t, acc1.Balance.Equal(decimal.NewFromFloat(5000.00)))
	require.Len(t, acc1.Transactions, 2)
	require.Equal(t, domain.Deposit, acc1.Transactions[0].Kind)
	require.Equal(t, "Salary", acc1.Transactions[0].Description)
	require.Equal(t, domain.Withdrawal, acc1.Transactions[1].Kind)
	require.Equal(t, "ATM", acc1.Transactions[1].Description)

	acc2, err := repo.Get(ctx, "ACC002")
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", acc2.Holder)
	require.Equal(t, domain.Savings, acc2.Type)
	require.True(t, acc2.Balance.Equal(decimal.NewFromFloat(15000.00)))
	require.Len(t, acc2.Transactions, 1)
}

func TestGetUnknownAccount(t *testing.T) {
	repo := NewRepoMem()

	_, err := repo.Get(context.Background(), "ACC999")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	acc, err := repo.Get(ctx, "ACC001")
	require.NoError(t, err)

	acc.Balance = decimal.Zero
	acc.Transactions[0].Description = "mutated"

	fresh, err := repo.Get(ctx, "ACC001")
	require.NoError(t, err)
	require.True(t, fresh.Balance.Equal(decimal.NewFromFloat(5000.00)))
	require.Equal(t, "Salary", fresh.Transactions[0].Description)
}

func TestHistory(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	testCases := []struct {
		name      string
		id        string
		limit     int
		wantLen   int
		wantFirst string
		wantErr   error
	}{
		{
			name:      "Full log when limit exceeds length",
			id:        "ACC001",
			limit:     5,
			wantLen:   2,
			wantFirst: "Salary",
		},
		{
			name:      "Trailing slice keeps insertion order",
			id:        "ACC001",
			limit:     1,
			wantLen:   1,
			wantFirst: "ATM",
		},
		{
			name:    "Unknown account",
			id:      "ACC999",
			limit:   5,
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.History(ctx, tc.id, tc.limit)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, tc.wantLen)
			require.Equal(t, tc.wantFirst, got[0].Description)
		})
	}
}

func TestTransfer(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()
	amount := decimal.NewFromFloat(500.00)

	before1, err := repo.Get(ctx, "ACC001")
	require.NoError(t, err)
	before2, err := repo.Get(ctx, "ACC002")
	require.NoError(t, err)

	result, err := repo.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: "ACC001",
		ToAccountID:   "ACC002",
		Amount:        amount,
	})
	require.NoError(t, err)

	// Conservation law.
	require.True(t, result.FromAccount.Balance.Add(result.ToAccount.Balance).
		Equal(before1.Balance.Add(before2.Balance)))

	require.True(t, result.FromAccount.Balance.Equal(before1.Balance.Sub(amount)))
	require.True(t, result.ToAccount.Balance.Equal(before2.Balance.Add(amount)))

	// The source log records the transfer dated today; the destination
	// log stays untouched. The asymmetry is intentional.
	require.Len(t, result.FromAccount.Transactions, len(before1.Transactions)+1)
	require.Len(t, result.ToAccount.Transactions, len(before2.Transactions))

	appended := result.FromAccount.Transactions[len(result.FromAccount.Transactions)-1]
	require.Equal(t, domain.Transfer, appended.Kind)
	require.Equal(t, time.Now().Format("2006-01-02"), appended.Date)
	require.Equal(t, "Transfer to ACC002", appended.Description)
	require.True(t, appended.Amount.Equal(amount))
}

func TestTransferSelf(t *testing.T) {
	repo := NewRepoMem()
	ctx := context.Background()

	result, err := repo.Transfer(ctx, domain.CreateTransferParams{
		FromAccountID: "ACC001",
		ToAccountID:   "ACC001",
		Amount:        decimal.NewFromFloat(100.00),
	})
	require.NoError(t, err)
	require.True(t, result.FromAccount.Balance.Equal(decimal.NewFromFloat(5000.00)))
	require.Len(t, result.FromAccount.Transactions, 3)
}

func TestTransferFailuresDoNotMutate(t *testing.T) {
	testCases := []struct {
		name    string
		arg     domain.CreateTransferParams
		wantErr error
	}{
		{
			name: "Source not found",
			arg: domain.CreateTransferParams{
				FromAccountID: "ACC999",
				ToAccountID:   "ACC002",
				Amount:        decimal.NewFromFloat(100.00),
			},
			wantErr: domain.ErrSourceAccountNotFound,
		},
		{
			name: "Destination not found",
			arg: domain.CreateTransferParams{
				FromAccountID: "ACC001",
				ToAccountID:   "ACC999",
				Amount:        decimal.NewFromFloat(100.00),
			},
			wantErr: domain.ErrDestinationAccountNotFound,
		},
		{
			name: "Non-positive amount",
			arg: domain.CreateTransferParams{
				FromAccountID: "ACC001",
				ToAccountID:   "ACC002",
				Amount:        decimal.NewFromFloat(-100.00),
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name: "Insufficient funds",
			arg: domain.CreateTransferParams{
				FromAccountID: "ACC001",
				ToAccountID:   "ACC002",
				Amount:        decimal.NewFromFloat(999999.00),
			},
			wantErr: domain.ErrInsufficientFunds,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewRepoMem()
			ctx := context.Background()

			before1, err := repo.Get(ctx, "ACC001")
			require.NoError(t, err)
			before2, err := repo.Get(ctx, "ACC002")
			require.NoError(t, err)

			result, err := repo.Transfer(ctx, tc.arg)
			require.ErrorIs(t, err, tc.wantErr)
			require.Empty(t, result.Transaction.Kind)

			after1, err := repo.Get(ctx, "ACC001")
			require.NoError(t, err)
			after2, err := repo.Get(ctx, "ACC002")
			require.NoError(t, err)

			require.Empty(t, cmp.Diff(before1, after1, decimalComparer))
			require.Empty(t, cmp.Diff(before2, after2, decimalComparer))
		})
	}
}
