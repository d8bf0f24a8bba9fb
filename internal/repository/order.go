package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/pizza-orders/internal/domain/order"
	"github.com/xenking/pizza-orders/internal/domain/promo"
)

const (
	insertOrderSQL = `INSERT INTO orders (item_id, quantity, customer_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	// Conditional increment: zero rows affected means the last slot was
	// taken by a concurrent order, so the promo is not applied here.
	incrementPromoUsesSQL = `UPDATE promo_codes
		SET times_used = times_used + 1
		WHERE id = $1 AND active
		AND (usage_limit IS NULL OR times_used < usage_limit)`

	attachPromoSQL = `UPDATE orders
		SET promo_code_id = $1, discount_amount = $2
		WHERE id = $3`

	getOrderDetailsSQL = `SELECT o.id, o.item_id, o.quantity, o.customer_name, o.created_at,
		o.promo_code_id, o.discount_amount,
		i.name, i.price,
		COALESCE(pc.code, ''), COALESCE(pc.discount_percent, 0)
		FROM orders o
		JOIN items i ON i.id = o.item_id
		LEFT JOIN promo_codes pc ON pc.id = o.promo_code_id
		WHERE o.id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order in a single transaction. When PromoCodeID is
// set, the promo linkage and usage counter increment run inside a savepoint:
// if that step fails for any reason, the savepoint is rolled back, the
// failure is logged, and the order commits without a discount.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	err = tx.QueryRow(ctx, insertOrderSQL, o.ItemID, o.Quantity, o.CustomerName).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	if o.PromoCodeID != nil {
		if err := r.attachPromo(ctx, tx, o); err != nil {
			zctx.From(ctx).Warn("Promo application failed, order commits without discount",
				zap.Int64("order_id", o.ID),
				zap.Int64("promo_code_id", *o.PromoCodeID),
				zap.Error(err),
			)
			o.PromoCodeID = nil
			o.DiscountAmount = decimal.Zero
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %d: %w", o.ID, err)
	}
	return nil
}

// attachPromo increments the promo usage counter and links the code to the
// just-inserted order. It runs in a nested transaction (savepoint) so a
// failure here leaves the outer order insert intact.
func (r *OrderRepository) attachPromo(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin savepoint: %w", err)
	}
	defer sp.Rollback(ctx) //nolint:errcheck // no-op after commit

	tag, err := sp.Exec(ctx, incrementPromoUsesSQL, *o.PromoCodeID)
	if err != nil {
		return fmt.Errorf("incrementing promo uses: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return promo.ErrUsageLimitReached
	}

	if _, err := sp.Exec(ctx, attachPromoSQL, *o.PromoCodeID, o.DiscountAmount, o.ID); err != nil {
		return fmt.Errorf("attaching promo to order: %w", err)
	}

	return sp.Commit(ctx)
}

// GetDetails returns the order joined with its item and promo code.
// Returns order.ErrNotFound when no such order exists.
func (r *OrderRepository) GetDetails(ctx context.Context, id int64) (*order.Details, error) {
	rows, err := r.pool.Query(ctx, getOrderDetailsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	d, err := pgx.CollectExactlyOneRow(rows, scanOrderDetails)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}
	return &d, nil
}

func scanOrderDetails(row pgx.CollectableRow) (order.Details, error) {
	var d order.Details
	err := row.Scan(
		&d.ID, &d.ItemID, &d.Quantity, &d.CustomerName, &d.CreatedAt,
		&d.PromoCodeID, &d.DiscountAmount,
		&d.ItemName, &d.ItemPrice,
		&d.PromoCode, &d.DiscountPercent,
	)
	return d, err
}
