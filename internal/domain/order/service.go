package order

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/pizza-orders/internal/domain/menu"
	"github.com/xenking/pizza-orders/internal/domain/promo"
)

// Sentinel errors for order validation.
var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrEmptyCustomerName = errors.New("customer name required")
)

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	ItemID       int64
	Quantity     int32
	CustomerName string
	// PromoCode is optional; empty means no discount is requested.
	PromoCode string
}

// Service encapsulates order placement and retrieval.
type Service struct {
	items  menu.Repository
	promos promo.Validator
	orders Repository
}

// NewService creates an order Service with the required domain dependencies.
func NewService(items menu.Repository, promos promo.Validator, orders Repository) *Service {
	return &Service{
		items:  items,
		promos: promos,
		orders: orders,
	}
}

// PlaceOrder validates the request, resolves the menu item, applies an
// optional promo code, and persists the order.
//
// Discounts are best-effort: an unknown, inactive, or exhausted code is
// logged and ignored, and the order is placed without a discount. Only
// invalid input or a storage failure fails the call.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrEmptyCustomerName
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			return nil, menu.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get item %d", req.ItemID)
	}

	o := &Order{
		ItemID:         item.ID,
		Quantity:       req.Quantity,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		DiscountAmount: decimal.Zero,
	}

	if code := strings.TrimSpace(req.PromoCode); code != "" {
		pc, err := s.promos.Validate(ctx, code)
		if err != nil {
			zctx.From(ctx).Info("Promo code rejected, placing order without discount",
				zap.String("code", code),
				zap.Error(err),
			)
		} else {
			o.PromoCodeID = &pc.ID
			o.DiscountAmount = promo.Discount(item.Price, req.Quantity, pc.DiscountPercent)
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// GetDetails returns the order joined with its item and promo code.
// It returns ErrNotFound for unknown ids.
func (s *Service) GetDetails(ctx context.Context, id int64) (*Details, error) {
	d, err := s.orders.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}
	return d, nil
}
