package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/retail-store/internal/account"
	"github.com/mmeshcher/retail-store/internal/model"
)

type stubAccounts struct {
	outcome account.Outcome
	calls   int
	amounts []int64
}

func (s *stubAccounts) Withdraw(c *model.Customer, amount int64) account.Outcome {
	s.calls++
	s.amounts = append(s.amounts, amount)
	return s.outcome
}

func TestBuy(t *testing.T) {
	type want struct {
		err      error
		message  string
		balance  int64
		quantity int64
	}

	tests := []struct {
		name     string
		product  model.Product
		customer model.Customer
		want     want
	}{
		{
			name:     "success",
			product:  model.Product{Name: "book", Price: 200, Quantity: 10},
			customer: model.Customer{Balance: 1000},
			want:     want{balance: 800, quantity: 9},
		},
		{
			name:     "out of stock",
			product:  model.Product{Name: "book", Price: 200, Quantity: 0},
			customer: model.Customer{Balance: 1000},
			want:     want{err: ErrOutOfStock, message: "Product out of stock", balance: 1000, quantity: 0},
		},
		{
			name:     "negative quantity",
			product:  model.Product{Name: "book", Price: 200, Quantity: -3},
			customer: model.Customer{Balance: 1000},
			want:     want{err: ErrOutOfStock, message: "Product out of stock", balance: 1000, quantity: -3},
		},
		{
			name:     "payment failure",
			product:  model.Product{Name: "tv", Price: 1500, Quantity: 2},
			customer: model.Customer{Balance: 100},
			want: want{
				err:      ErrPaymentFailure,
				message:  "Payment failure: maximum credit exceeded",
				balance:  100,
				quantity: 2,
			},
		},
		{
			name:     "payment on credit",
			product:  model.Product{Name: "tv", Price: 1000, Quantity: 2},
			customer: model.Customer{Balance: 0, CreditAllowed: true},
			want:     want{balance: -1000, quantity: 1},
		},
		{
			name:     "zero price",
			product:  model.Product{Name: "sample", Price: 0, Quantity: 1},
			customer: model.Customer{Balance: 0},
			want:     want{balance: 0, quantity: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolicy(account.NewPolicy())
			product := tt.product
			customer := tt.customer

			err := p.Buy(&product, &customer)

			if tt.want.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.want.err), "got %v", err)
				assert.Equal(t, tt.want.message, err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want.balance, customer.Balance)
			assert.Equal(t, tt.want.quantity, product.Quantity)
		})
	}
}

func TestBuy_OutOfStockSkipsPayment(t *testing.T) {
	accounts := &stubAccounts{outcome: account.OutcomeSuccess}
	p := NewPolicy(accounts)

	err := p.Buy(&model.Product{Price: 10, Quantity: 0}, &model.Customer{Balance: 100})

	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Zero(t, accounts.calls)
}

func TestBuy_AnyNonSuccessOutcomeIsPaymentFailure(t *testing.T) {
	accounts := &stubAccounts{outcome: "insufficient funds"}
	p := NewPolicy(accounts)
	product := model.Product{Price: 50, Quantity: 5}

	err := p.Buy(&product, &model.Customer{Balance: 100})

	require.ErrorIs(t, err, ErrPaymentFailure)
	assert.EqualError(t, err, "Payment failure: insufficient funds")

	var payErr *PaymentError
	require.True(t, errors.As(err, &payErr))
	assert.Equal(t, account.Outcome("insufficient funds"), payErr.Outcome)
	assert.Equal(t, int64(5), product.Quantity)
	assert.Equal(t, []int64{50}, accounts.amounts)
}

func TestBuy_MultiplePurchases(t *testing.T) {
	p := NewPolicy(account.NewPolicy())
	customer := model.Customer{Balance: 1000}
	fridge := model.Product{Name: "Fridges", Price: 200, Quantity: 10}
	phone := model.Product{Name: "Phones", Price: 50, Quantity: 5}

	require.NoError(t, p.Buy(&fridge, &customer))
	assert.Equal(t, int64(800), customer.Balance)

	require.NoError(t, p.Buy(&phone, &customer))

	assert.Equal(t, int64(9), fridge.Quantity)
	assert.Equal(t, int64(4), phone.Quantity)
	assert.Equal(t, int64(750), customer.Balance)
}
