package promo

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCode is returned when a promo code is unknown or inactive.
	ErrInvalidCode = errors.New("invalid or inactive promo code")
	// ErrUsageLimitReached is returned when a promo code has exhausted its allowed uses.
	ErrUsageLimitReached = errors.New("promo code usage limit reached")
)

// Code is a promotional discount code with activation state and usage accounting.
type Code struct {
	ID     int64
	Code   string
	Active bool
	// UsageLimit caps how many orders may apply this code. Nil means unlimited.
	UsageLimit      *int32
	TimesUsed       int32
	DiscountPercent decimal.Decimal
}

// Remaining reports whether the code still has uses left.
func (c *Code) Remaining() bool {
	return c.UsageLimit == nil || c.TimesUsed < *c.UsageLimit
}

// Repository provides lookup of promo codes. Lookups are case-insensitive
// and match active codes only.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Code, error)
}
