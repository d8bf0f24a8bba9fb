package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/pizza-orders/internal/domain/menu"
	"github.com/xenking/pizza-orders/internal/domain/promo"
)

// --- Mock implementations ---

type mockMenuRepo struct {
	byID   map[int64]*menu.Item
	getErr error
}

func (m *mockMenuRepo) List(_ context.Context) ([]menu.Item, error) {
	return nil, nil
}

func (m *mockMenuRepo) GetByID(_ context.Context, id int64) (*menu.Item, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	item, ok := m.byID[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	return item, nil
}

type mockPromoValidator struct {
	code *promo.Code
	err  error
}

func (m *mockPromoValidator) Validate(_ context.Context, _ string) (*promo.Code, error) {
	return m.code, m.err
}

type mockOrderRepo struct {
	lastOrder *Order
	details   *Details
	createErr error
	getErr    error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	o.ID = 42
	m.lastOrder = o
	return nil
}

func (m *mockOrderRepo) GetDetails(_ context.Context, _ int64) (*Details, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.details, nil
}

// --- Helpers ---

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func newMenuRepo(items ...menu.Item) *mockMenuRepo {
	byID := make(map[int64]*menu.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return &mockMenuRepo{byID: byID}
}

// --- Tests ---

func TestPlaceOrder_NoPromoCode(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(
		newMenuRepo(menu.Item{ID: 1, Name: "Vegetarian", Price: d("12.99")}),
		&mockPromoValidator{err: promo.ErrInvalidCode},
		repo,
	)

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ItemID:       1,
		Quantity:     2,
		CustomerName: "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), o.ID)
	assert.Nil(t, o.PromoCodeID)
	assert.True(t, o.DiscountAmount.IsZero())
	require.NotNil(t, repo.lastOrder)
}

func TestPlaceOrder_ValidPromoCode(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(
		newMenuRepo(menu.Item{ID: 1, Name: "Vegetarian", Price: d("12.99")}),
		&mockPromoValidator{code: &promo.Code{ID: 7, Code: "PIZZA10", Active: true, DiscountPercent: d("10")}},
		repo,
	)

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ItemID:       1,
		Quantity:     2,
		CustomerName: "Alice",
		PromoCode:    "pizza10",
	})
	require.NoError(t, err)

	require.NotNil(t, o.PromoCodeID)
	assert.Equal(t, int64(7), *o.PromoCodeID)
	assert.True(t, d("2.598").Equal(o.DiscountAmount), "got %s", o.DiscountAmount)
}

func TestPlaceOrder_RejectedPromoCodeStillPlacesOrder(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
	}{
		{"unknown code", promo.ErrInvalidCode},
		{"exhausted code", promo.ErrUsageLimitReached},
		{"validator storage error", errors.New("connection refused")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockOrderRepo{}
			svc := NewService(
				newMenuRepo(menu.Item{ID: 1, Name: "Supreme", Price: d("14.99")}),
				&mockPromoValidator{err: tc.err},
				repo,
			)

			o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
				ItemID:       1,
				Quantity:     1,
				CustomerName: "Bob",
				PromoCode:    "BOGUS",
			})
			require.NoError(t, err)

			assert.Nil(t, o.PromoCodeID)
			assert.True(t, o.DiscountAmount.IsZero())
			require.NotNil(t, repo.lastOrder)
		})
	}
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(newMenuRepo(), &mockPromoValidator{}, repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ItemID:       1,
		Quantity:     0,
		CustomerName: "Alice",
	})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Nil(t, repo.lastOrder, "nothing must be persisted")
}

func TestPlaceOrder_EmptyCustomerName(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(newMenuRepo(), &mockPromoValidator{}, repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ItemID:       1,
		Quantity:     1,
		CustomerName: "   ",
	})
	require.ErrorIs(t, err, ErrEmptyCustomerName)
	assert.Nil(t, repo.lastOrder, "nothing must be persisted")
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	svc := NewService(newMenuRepo(), &mockPromoValidator{}, &mockOrderRepo{})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ItemID:       99,
		Quantity:     1,
		CustomerName: "Alice",
	})
	require.ErrorIs(t, err, menu.ErrNotFound)
}

func TestPlaceOrder_CreateFailure(t *testing.T) {
	svc := NewService(
		newMenuRepo(menu.Item{ID: 1, Name: "Buffalo", Price: d("16.99")}),
		&mockPromoValidator{err: promo.ErrInvalidCode},
		&mockOrderRepo{createErr: errors.New("insert failed")},
	)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		ItemID:       1,
		Quantity:     1,
		CustomerName: "Alice",
	})
	require.Error(t, err)
}

func TestGetDetails(t *testing.T) {
	details := &Details{
		Order: Order{
			ID:             42,
			ItemID:         1,
			Quantity:       2,
			CustomerName:   "Alice",
			DiscountAmount: d("2.598"),
		},
		ItemName:        "Vegetarian",
		ItemPrice:       d("12.99"),
		PromoCode:       "PIZZA10",
		DiscountPercent: d("10"),
	}
	svc := NewService(newMenuRepo(), &mockPromoValidator{}, &mockOrderRepo{details: details})

	got, err := svc.GetDetails(context.Background(), 42)
	require.NoError(t, err)

	assert.True(t, d("25.98").Equal(got.Subtotal()), "subtotal %s", got.Subtotal())
	assert.True(t, d("23.382").Equal(got.Total()), "total %s", got.Total())
}

func TestGetDetails_NotFound(t *testing.T) {
	svc := NewService(newMenuRepo(), &mockPromoValidator{}, &mockOrderRepo{getErr: ErrNotFound})

	_, err := svc.GetDetails(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDetails_TotalFloorsAtZero(t *testing.T) {
	d := &Details{
		Order: Order{
			Quantity:       1,
			DiscountAmount: decimal.NewFromInt(100),
		},
		ItemPrice: decimal.NewFromInt(10),
	}
	assert.True(t, d.Total().IsZero())
}
