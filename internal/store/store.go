// Package store реализует правила покупки товара в магазине.
package store

import (
	"github.com/mmeshcher/retail-store/internal/account"
	"github.com/mmeshcher/retail-store/internal/model"
)

// AccountManager описывает списание средств, которое магазин делегирует счёту покупателя.
type AccountManager interface {
	Withdraw(c *model.Customer, amount int64) account.Outcome
}

// Policy проверяет наличие товара и проводит оплату через AccountManager.
type Policy struct {
	accounts AccountManager
}

// NewPolicy создаёт политику магазина поверх указанного менеджера счетов.
func NewPolicy(accounts AccountManager) *Policy {
	return &Policy{accounts: accounts}
}

// Buy продаёт одну единицу товара покупателю.
// При ошибке количество товара не меняется.
func (p *Policy) Buy(product *model.Product, customer *model.Customer) error {
	if product.Quantity <= 0 {
		return ErrOutOfStock
	}

	outcome := p.accounts.Withdraw(customer, product.Price)
	if outcome != account.OutcomeSuccess {
		return &PaymentError{Outcome: outcome}
	}

	product.Quantity--
	return nil
}
