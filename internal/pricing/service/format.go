package service

import "github.com/shopspring/decimal"

const (
	amountUnavailable = "N/A"
	feeFree           = "Free"
)

// FormatAmount renders a currency amount as "<currency> <amount to 2dp>",
// or "N/A" when no amount is present.
func FormatAmount(value *decimal.Decimal, currencyCode string) string {
	if value == nil {
		return amountUnavailable
	}
	return currencyCode + " " + value.StringFixed(2)
}

// FormatFeePercent renders a fee percentage as "<pct to 2dp>%".
// Zero and absent are both rendered as "Free": a zero-or-unset fee is
// advertised as free.
func FormatFeePercent(value *decimal.Decimal) string {
	if value == nil || !value.IsPositive() {
		return feeFree
	}
	return value.StringFixed(2) + "%"
}
