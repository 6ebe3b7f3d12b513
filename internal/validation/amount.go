package validation

// MaxAmount — наибольшая сумма одной операции (зачисление, списание, цена товара).
const MaxAmount int64 = 1_000_000_000_000_000

// MaxBalance — наибольший модуль баланса покупателя.
// Вместе с MaxAmount гарантирует, что арифметика над балансом не выходит за пределы int64.
const MaxBalance int64 = 1_000_000_000_000_000

// IsValidAmount проверяет, что модуль суммы не превышает MaxAmount.
func IsValidAmount(amount int64) bool {
	return amount >= -MaxAmount && amount <= MaxAmount
}

// IsValidBalance проверяет, что модуль баланса не превышает MaxBalance.
func IsValidBalance(balance int64) bool {
	return balance >= -MaxBalance && balance <= MaxBalance
}

// FitsDeposit сообщает, останется ли баланс в пределах MaxBalance после зачисления amount.
// Неположительная сумма баланс не меняет и всегда допустима.
func FitsDeposit(balance, amount int64) bool {
	if amount <= 0 {
		return true
	}
	return amount <= MaxAmount && balance <= MaxBalance-amount
}

// FitsWithdrawal сообщает, останется ли баланс в пределах MaxBalance после списания amount.
func FitsWithdrawal(balance, amount int64) bool {
	if amount <= 0 {
		return true
	}
	return amount <= MaxAmount && balance >= -MaxBalance+amount
}
