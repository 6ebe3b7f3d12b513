// Package service реализует бизнес-логику магазина поверх хранилища.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/retail-store/internal/account"
	"github.com/mmeshcher/retail-store/internal/metrics"
	"github.com/mmeshcher/retail-store/internal/model"
	"github.com/mmeshcher/retail-store/internal/store"
	"github.com/mmeshcher/retail-store/internal/validation"
)

// ErrInvalidProduct возвращается при попытке создать товар с некорректным названием или отрицательной ценой.
var ErrInvalidProduct = errors.New("invalid product")

// ErrInvalidAmount возвращается, если сумма операции или итоговый баланс выходят за допустимые пределы.
var ErrInvalidAmount = errors.New("invalid amount")

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	CreateCustomer(ctx context.Context, c model.Customer) (int64, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, fn func(*model.Customer) error) error
	CreateProduct(ctx context.Context, p model.Product) (int64, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	UpdatePurchase(ctx context.Context, productID, customerID int64, fn func(*model.Product, *model.Customer) error) error
}

// Service содержит бизнес-логику магазина.
type Service struct {
	repo     Repository
	accounts *account.Policy
	store    *store.Policy
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService создаёт новый сервис с указанным репозиторием.
// metrics может быть nil.
func NewService(repo Repository, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	accounts := account.NewPolicy()

	return &Service{
		repo:     repo,
		accounts: accounts,
		store:    store.NewPolicy(accounts),
		metrics:  m,
		logger:   logger,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// CreateCustomer регистрирует нового покупателя.
func (s *Service) CreateCustomer(ctx context.Context, balance int64, creditAllowed, vip bool) (*model.Customer, error) {
	if !validation.IsValidBalance(balance) {
		return nil, ErrInvalidAmount
	}

	c := model.Customer{
		Balance:       balance,
		CreditAllowed: creditAllowed,
		VIP:           vip,
	}

	id, err := s.repo.CreateCustomer(ctx, c)
	if err != nil {
		return nil, err
	}

	c.ID = id
	return &c, nil
}

// GetCustomer возвращает покупателя по идентификатору.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// Deposit пополняет счёт покупателя и возвращает его новое состояние.
// Зачисление, после которого баланс превысил бы validation.MaxBalance, отклоняется с ErrInvalidAmount.
func (s *Service) Deposit(ctx context.Context, customerID, amount int64) (*model.Customer, error) {
	var updated model.Customer
	err := s.repo.UpdateCustomer(ctx, customerID, func(c *model.Customer) error {
		if !validation.FitsDeposit(c.Balance, amount) {
			return ErrInvalidAmount
		}
		s.accounts.Deposit(c, amount)
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveDeposit()
	return &updated, nil
}

// Withdraw списывает сумму со счёта покупателя.
// Отказ по кредитному лимиту не является ошибкой и возвращается как Outcome.
// Если баланс после списания вышел бы за validation.MaxBalance, возвращается ErrInvalidAmount.
func (s *Service) Withdraw(ctx context.Context, customerID, amount int64) (account.Outcome, *model.Customer, error) {
	var (
		outcome account.Outcome
		updated model.Customer
	)
	err := s.repo.UpdateCustomer(ctx, customerID, func(c *model.Customer) error {
		if !validation.FitsWithdrawal(c.Balance, amount) {
			return ErrInvalidAmount
		}
		outcome = s.accounts.Withdraw(c, amount)
		updated = *c
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	s.metrics.ObserveWithdrawal(string(outcome))
	return outcome, &updated, nil
}

// CreateProduct добавляет товар в каталог.
func (s *Service) CreateProduct(ctx context.Context, name string, price, quantity int64) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if !validation.IsValidProductName(name) || !validation.IsValidPrice(price) {
		return nil, ErrInvalidProduct
	}

	p := model.Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}

	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}

	p.ID = id
	return &p, nil
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// Buy продаёт одну единицу товара покупателю и возвращает новое состояние товара и покупателя.
// Ошибки store.ErrOutOfStock и store.ErrPaymentFailure возвращаются без изменений в хранилище.
func (s *Service) Buy(ctx context.Context, productID, customerID int64) (*model.Product, *model.Customer, error) {
	var (
		product  model.Product
		customer model.Customer
	)
	err := s.repo.UpdatePurchase(ctx, productID, customerID, func(p *model.Product, c *model.Customer) error {
		if p.Quantity > 0 && !validation.FitsWithdrawal(c.Balance, p.Price) {
			return ErrInvalidAmount
		}
		if err := s.store.Buy(p, c); err != nil {
			return err
		}
		product, customer = *p, *c
		return nil
	})

	switch {
	case err == nil:
		s.metrics.ObservePurchase(metrics.PurchaseSuccess)
	case errors.Is(err, store.ErrOutOfStock):
		s.metrics.ObservePurchase(metrics.PurchaseOutOfStock)
		s.logger.Info("purchase declined", zap.Int64("productID", productID), zap.Int64("customerID", customerID), zap.Error(err))
	case errors.Is(err, store.ErrPaymentFailure):
		s.metrics.ObservePurchase(metrics.PurchasePaymentFailure)
		s.logger.Info("purchase declined", zap.Int64("productID", productID), zap.Int64("customerID", customerID), zap.Error(err))
	}
	if err != nil {
		return nil, nil, err
	}

	return &product, &customer, nil
}
