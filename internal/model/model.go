// Package model содержит доменные сущности магазина.
package model

// Customer представляет покупателя и состояние его счёта.
// Balance может быть отрицательным, если покупателю разрешён кредит.
type Customer struct {
	ID            int64
	Balance       int64
	CreditAllowed bool
	VIP           bool
}

// Product описывает товар и его остаток на складе.
// Quantity <= 0 означает, что товар недоступен для покупки.
type Product struct {
	ID       int64
	Name     string
	Price    int64
	Quantity int64
}
