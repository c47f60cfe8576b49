package transferservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-bot/internal/domain"
	"github.com/go-petr/bank-bot/pkg/randompkg"
)

func testAccount(id string, balance decimal.Decimal) domain.Account {
	return domain.Account{
		ID:      id,
		Holder:  randompkg.Holder(),
		Type:    domain.Checking,
		Balance: balance,
	}
}

func TestTransfer(t *testing.T) {
	account1 := testAccount("ACC001", decimal.NewFromFloat(1000.00))
	account2 := testAccount("ACC002", decimal.NewFromFloat(1000.00))
	amount := decimal.NewFromFloat(100.00)

	arg := func(from, to string, amount decimal.Decimal) domain.CreateTransferParams {
		return domain.CreateTransferParams{
			FromAccountID: from,
			ToAccountID:   to,
			Amount:        amount,
		}
	}

	testCases := []struct {
		name          string
		arg           domain.CreateTransferParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.TransferTxResult, err error)
	}{
		{
			name: "Source not found",
			arg:  arg("ACC999", account2.ID, amount),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("ACC999")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrSourceAccountNotFound)
			},
		},
		{
			name: "Destination not found",
			arg:  arg(account1.ID, "ACC999", amount),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account1.ID)).
					Times(1).
					Return(account1, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("ACC999")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrDestinationAccountNotFound)
			},
		},
		{
			name: "Negative amount",
			arg:  arg(account1.ID, account2.ID, decimal.NewFromFloat(-100.00)),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account1.ID)).
					Times(1).
					Return(account1, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account2.ID)).
					Times(1).
					Return(account2, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			},
		},
		{
			name: "Insufficient funds",
			arg:  arg(account1.ID, account2.ID, decimal.NewFromFloat(999999.00)),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account1.ID)).
					Times(1).
					Return(account1, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account2.ID)).
					Times(1).
					Return(account2, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientFunds)
			},
		},
		{
			name: "Self transfer is permitted",
			arg:  arg(account1.ID, account1.ID, amount),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account1.ID)).
					Times(2).
					Return(account1, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(arg(account1.ID, account1.ID, amount))).
					Times(1).
					Return(domain.TransferTxResult{FromAccount: account1, ToAccount: account1}, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "OK",
			arg:  arg(account1.ID, account2.ID, amount),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account1.ID)).
					Times(1).
					Return(account1, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account2.ID)).
					Times(1).
					Return(account2, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(arg(account1.ID, account2.ID, amount))).
					Times(1).
					Return(domain.TransferTxResult{
						FromAccount: account1,
						ToAccount:   account2,
					}, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, account1.ID, res.FromAccount.ID)
				require.Equal(t, account2.ID, res.ToAccount.ID)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			res, err := service.Transfer(context.Background(), tc.arg)
			tc.checkResponse(res, err)
		})
	}
}
