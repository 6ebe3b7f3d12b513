package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/retail-store/internal/model"
)

func TestMemoryRepository_CustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	id, err := repo.CreateCustomer(ctx, model.Customer{Balance: 100, CreditAllowed: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	err = repo.UpdateCustomer(ctx, id, func(c *model.Customer) error {
		c.Balance -= 50
		return nil
	})
	require.NoError(t, err)

	c, err := repo.GetCustomer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.Customer{ID: id, Balance: 50, CreditAllowed: true}, *c)

	c.Balance = 1_000_000
	stored, err := repo.GetCustomer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(50), stored.Balance, "returned value must be a copy")
}

func TestMemoryRepository_UpdateCustomerRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	id, _ := repo.CreateCustomer(ctx, model.Customer{Balance: 100})

	errBoom := errors.New("boom")
	err := repo.UpdateCustomer(ctx, id, func(c *model.Customer) error {
		c.Balance = 0
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	c, err := repo.GetCustomer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.Balance)
}

func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetCustomer(ctx, 1)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = repo.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = repo.UpdateCustomer(ctx, 1, func(*model.Customer) error { return nil })
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	productID, _ := repo.CreateProduct(ctx, model.Product{Name: "pen", Price: 1, Quantity: 1})
	err = repo.UpdatePurchase(ctx, productID, 42, func(*model.Product, *model.Customer) error { return nil })
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	err = repo.UpdatePurchase(ctx, 42, 1, func(*model.Product, *model.Customer) error { return nil })
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryRepository_UpdatePurchase(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	customerID, _ := repo.CreateCustomer(ctx, model.Customer{Balance: 1000})
	productID, _ := repo.CreateProduct(ctx, model.Product{Name: "book", Price: 200, Quantity: 10})

	err := repo.UpdatePurchase(ctx, productID, customerID, func(p *model.Product, c *model.Customer) error {
		p.Quantity--
		c.Balance -= p.Price
		return nil
	})
	require.NoError(t, err)

	p, _ := repo.GetProduct(ctx, productID)
	c, _ := repo.GetCustomer(ctx, customerID)
	assert.Equal(t, int64(9), p.Quantity)
	assert.Equal(t, int64(800), c.Balance)

	err = repo.UpdatePurchase(ctx, productID, customerID, func(p *model.Product, c *model.Customer) error {
		p.Quantity = 0
		c.Balance = 0
		return errors.New("declined")
	})
	require.Error(t, err)

	p, _ = repo.GetProduct(ctx, productID)
	c, _ = repo.GetCustomer(ctx, customerID)
	assert.Equal(t, int64(9), p.Quantity)
	assert.Equal(t, int64(800), c.Balance)
}

func TestMemoryRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	id, _ := repo.CreateCustomer(ctx, model.Customer{})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.UpdateCustomer(ctx, id, func(c *model.Customer) error {
				c.Balance++
				return nil
			})
		}()
	}
	wg.Wait()

	c, err := repo.GetCustomer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.Balance)
}
