package view

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is what the backend reports amounts in.
const DefaultCurrency = "USD"

// Money formats an amount with the default currency and two fixed decimals.
// E.g., 1234.5 -> "$1234.50"
func Money(amount decimal.Decimal) string {
	return MoneyIn(amount, DefaultCurrency)
}

// MoneyIn formats an amount with the symbol for currency.
func MoneyIn(amount decimal.Decimal, currency string) string {
	return currencySymbol(currency) + amount.StringFixed(2)
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "TRY":
		return "₺"
	default:
		return code + " "
	}
}

// ThumbResolver turns a product image entry into a browser-usable URL.
type ThumbResolver func(image string) string

func (r ThumbResolver) resolve(image string) string {
	if r == nil || image == "" {
		return image
	}
	return r(image)
}
