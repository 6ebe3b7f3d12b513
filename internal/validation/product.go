// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"
	"unicode/utf8"
)

// MaxProductNameLength — максимальная длина названия товара в символах.
const MaxProductNameLength = 200

// IsValidProductName проверяет, что название товара не пустое и не слишком длинное.
func IsValidProductName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && utf8.RuneCountInString(name) <= MaxProductNameLength
}

// IsValidPrice проверяет, что цена неотрицательна и не превышает MaxAmount. Нулевая цена допустима.
func IsValidPrice(price int64) bool {
	return price >= 0 && price <= MaxAmount
}
