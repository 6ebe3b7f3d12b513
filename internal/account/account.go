// Package account реализует правила списания и пополнения счёта покупателя.
package account

import "github.com/mmeshcher/retail-store/internal/model"

// MaxCredit — максимальный кредит для покупателя без статуса VIP.
const MaxCredit int64 = 1000

// Outcome описывает результат операции списания.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeMaxCreditExceeded Outcome = "maximum credit exceeded"
)

// Policy применяет правила баланса и кредита к счёту покупателя.
// Собственного состояния не хранит, все изменения выполняются над переданным покупателем.
type Policy struct{}

// NewPolicy создаёт политику счёта.
func NewPolicy() *Policy {
	return &Policy{}
}

// Withdraw списывает amount со счёта покупателя.
// Неположительная сумма ничего не меняет и считается успешной операцией.
func (p *Policy) Withdraw(c *model.Customer, amount int64) Outcome {
	if amount <= 0 {
		return OutcomeSuccess
	}

	newBalance := c.Balance - amount

	switch {
	case c.VIP:
		// VIP-покупателю кредит не ограничен
	case c.CreditAllowed:
		if newBalance < -MaxCredit {
			return OutcomeMaxCreditExceeded
		}
	default:
		if newBalance < 0 {
			return OutcomeMaxCreditExceeded
		}
	}

	c.Balance = newBalance
	return OutcomeSuccess
}

// Deposit зачисляет amount на счёт покупателя. Неположительная сумма игнорируется.
func (p *Policy) Deposit(c *model.Customer, amount int64) {
	if amount <= 0 {
		return
	}
	c.Balance += amount
}
