package store

import (
	"errors"

	"github.com/mmeshcher/retail-store/internal/account"
)

var (
	// ErrOutOfStock возвращается, если товара нет в наличии.
	ErrOutOfStock = errors.New("Product out of stock")
	// ErrPaymentFailure сопоставляется с любой ошибкой оплаты через errors.Is.
	ErrPaymentFailure = errors.New("payment failure")
)

// PaymentError описывает отказ в оплате и хранит результат списания со счёта.
type PaymentError struct {
	Outcome account.Outcome
}

func (e *PaymentError) Error() string {
	return "Payment failure: " + string(e.Outcome)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrPaymentFailure).
func (e *PaymentError) Is(target error) bool {
	return target == ErrPaymentFailure
}
