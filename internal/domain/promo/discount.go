package promo

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Discount returns quantity * unitPrice * percent / 100.
// The result is exact, never rounded: 12.99 * 2 at 10% yields 2.598.
// Negative inputs clamp to zero.
func Discount(unitPrice decimal.Decimal, quantity int32, percent decimal.Decimal) decimal.Decimal {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	amount := subtotal.Mul(percent).Div(hundred)
	return floorAtZero(amount)
}

// floorAtZero clamps negative values to zero.
func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
