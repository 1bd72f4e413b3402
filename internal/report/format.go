package report

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// notANumber is shown for values that cannot be formatted (NaN or ±Inf).
const notANumber = "n/a"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// INR formats a rupee amount, e.g. "₹1,234.50".
func INR(amount float64) string {
	if !finite(amount) {
		return notANumber
	}
	return money.NewFromFloat(amount, money.INR).Display()
}

// Percent formats v with two decimals and a percent sign, e.g. "12.35%".
func Percent(v float64) string {
	if !finite(v) {
		return notANumber
	}
	return decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
}

// SignedPercent is Percent with an explicit sign for positive values.
func SignedPercent(v float64) string {
	if !finite(v) {
		return notANumber
	}
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// Number formats v with the given number of decimals.
func Number(v float64, places int32) string {
	if !finite(v) {
		return notANumber
	}
	return decimal.NewFromFloat(v).Round(places).StringFixed(places)
}
