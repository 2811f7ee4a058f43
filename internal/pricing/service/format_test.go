package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(nil, "EUR"); got != "N/A" {
		t.Fatalf("expected N/A for absent amount, got %q", got)
	}
	if got := FormatAmount(decPtr("20"), "EUR"); got != "EUR 20.00" {
		t.Fatalf("expected EUR 20.00, got %q", got)
	}
	if got := FormatAmount(decPtr("9.999"), "GBP"); got != "GBP 10.00" {
		t.Fatalf("expected GBP 10.00, got %q", got)
	}
	if got := FormatAmount(decPtr("0"), "USD"); got != "USD 0.00" {
		t.Fatalf("expected USD 0.00, got %q", got)
	}
}

func TestFormatFeePercent_ZeroAndAbsentAreFree(t *testing.T) {
	if got := FormatFeePercent(nil); got != "Free" {
		t.Fatalf("expected Free for absent fee, got %q", got)
	}
	if got := FormatFeePercent(decPtr("0")); got != "Free" {
		t.Fatalf("expected Free for zero fee, got %q", got)
	}
}

func TestFormatFeePercent_PositiveFee(t *testing.T) {
	if got := FormatFeePercent(decPtr("1.7")); got != "1.70%" {
		t.Fatalf("expected 1.70%%, got %q", got)
	}
	if got := FormatFeePercent(decPtr("0.5")); got != "0.50%" {
		t.Fatalf("expected 0.50%%, got %q", got)
	}
}
