// Command seed-db applies migrations and seeds the menu and starter promo
// codes. It is idempotent: items are matched by name, promo codes by code.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/pizza-orders/internal/repository"
)

type seedItem struct {
	name  string
	price decimal.Decimal
}

type seedPromo struct {
	code            string
	discountPercent decimal.Decimal
	usageLimit      *int32
}

func limit(n int32) *int32 { return &n }

var menuItems = []seedItem{
	{"Margherita", decimal.RequireFromString("14.99")},
	{"Pepperoni", decimal.RequireFromString("1.99")},
	{"Hawaiian", decimal.RequireFromString("99.99")},
	{"Vegetarian", decimal.RequireFromString("12.99")},
	{"Supreme", decimal.RequireFromString("14.99")},
	{"BBQ Chicken", decimal.RequireFromString("13.99")},
	{"Meat Lovers", decimal.RequireFromString("15.99")},
	{"Buffalo", decimal.RequireFromString("16.99")},
}

var promoCodes = []seedPromo{
	{code: "PIZZA10", discountPercent: decimal.NewFromInt(10)},
	{code: "WELCOME20", discountPercent: decimal.NewFromInt(20), usageLimit: limit(100)},
}

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedMenu(ctx, pool); err != nil {
		return errors.Wrap(err, "seed menu")
	}

	if err := seedPromoCodes(ctx, pool); err != nil {
		return errors.Wrap(err, "seed promo codes")
	}

	return nil
}

func seedMenu(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("seeding menu items", slog.Int("count", len(menuItems)))

	for _, item := range menuItems {
		_, err := pool.Exec(ctx,
			`INSERT INTO items (name, price)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM items WHERE name = $1)`,
			item.name, item.price,
		)
		if err != nil {
			return errors.Wrapf(err, "insert item %s", item.name)
		}

		slog.Info("seeded item", slog.String("name", item.name), slog.String("price", item.price.String()))
	}

	return nil
}

func seedPromoCodes(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("seeding promo codes", slog.Int("count", len(promoCodes)))

	for _, p := range promoCodes {
		_, err := pool.Exec(ctx,
			`INSERT INTO promo_codes (code, active, usage_limit, discount_percent)
			SELECT $1, TRUE, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM promo_codes WHERE UPPER(code) = UPPER($1))`,
			p.code, p.usageLimit, p.discountPercent,
		)
		if err != nil {
			return errors.Wrapf(err, "insert promo code %s", p.code)
		}

		slog.Info("seeded promo code",
			slog.String("code", p.code),
			slog.String("discount_percent", p.discountPercent.String()),
		)
	}

	return nil
}
