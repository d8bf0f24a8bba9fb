package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order represents a customer's request for a quantity of one menu item,
// optionally discounted by a promo code.
type Order struct {
	ID           int64
	ItemID       int64
	Quantity     int32
	CustomerName string
	CreatedAt    time.Time
	// PromoCodeID is set only when a promo code was applied at creation time.
	PromoCodeID    *int64
	DiscountAmount decimal.Decimal
}

// Details is an order joined with its menu item and, if present, the applied
// promo code. It is the read model for the confirmation page.
type Details struct {
	Order
	ItemName  string
	ItemPrice decimal.Decimal
	// PromoCode is empty when no code was applied.
	PromoCode       string
	DiscountPercent decimal.Decimal
}

// Subtotal returns item price * quantity.
func (d *Details) Subtotal() decimal.Decimal {
	return d.ItemPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// Total returns subtotal - discount, floored at zero.
func (d *Details) Total() decimal.Decimal {
	total := d.Subtotal().Sub(d.DiscountAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Repository defines persistence operations for orders.
//
// Create persists the order as one atomic unit: the order row plus, when
// PromoCodeID is set, the promo linkage and usage counter increment. A
// failing promo step must not abort the order; implementations drop the
// promo fields and commit the order undiscounted.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetDetails(ctx context.Context, id int64) (*Details, error)
}
