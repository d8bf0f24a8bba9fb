// Command promo-ingest bulk-loads promotional codes from gzipped text files
// (one code per line) into the promo_codes table. Files are read
// concurrently; duplicates are filtered with a bloom filter so the tool can
// process code dumps far larger than memory.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/pizza-orders/internal/repository"
)

const (
	bloomCapacity = 120_000_000
	// A false positive drops one valid code per thousand; acceptable for
	// bulk promo dumps and the price of not holding every code in memory.
	bloomFPR = 0.001

	minCodeLen = 8
	maxCodeLen = 10
	batchSize  = 1000
)

func main() {
	var (
		databaseURL     string
		discountPercent string
		usageLimit      int
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&discountPercent, "discount-percent", "10", "discount percentage for ingested codes")
	flag.IntVar(&usageLimit, "usage-limit", 0, "usage limit per code (0 = unlimited)")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		slog.Error("at least one code file is required: promo-ingest [flags] file1.gz [file2.gz ...]")
		os.Exit(1)
	}

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	percent, err := decimal.NewFromString(discountPercent)
	if err != nil {
		slog.Error("invalid discount percentage", slog.String("value", discountPercent))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, files, percent, usageLimit); err != nil {
		slog.Error("promo ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("promo ingest completed successfully")
}

func run(ctx context.Context, databaseURL string, files []string, percent decimal.Decimal, usageLimit int) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	slog.Info("ingesting promo code files", slog.Int("files", len(files)))

	// Producers read and validate codes; a single consumer dedupes with the
	// bloom filter and writes batches, so the filter needs no locking.
	codes := make(chan string, batchSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(codes)

		readers, rctx := errgroup.WithContext(gctx)
		for _, file := range files {
			readers.Go(func() error {
				return readCodes(rctx, file, codes)
			})
		}
		return readers.Wait()
	})

	var total int
	g.Go(func() error {
		n, err := insertCodes(gctx, pool, codes, percent, usageLimit)
		total = n
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("codes ingested", slog.Int("count", total))
	return nil
}

// readCodes streams valid codes from a gzipped file into out.
func readCodes(ctx context.Context, path string, out chan<- string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "gzip reader %s", path)
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		code := scanner.Text()
		if !validCode(code) {
			continue
		}
		select {
		case out <- code:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}

// insertCodes dedupes incoming codes and inserts them in batches.
// Codes already present in the table are skipped via ON CONFLICT.
func insertCodes(ctx context.Context, pool *pgxpool.Pool, codes <-chan string, percent decimal.Decimal, usageLimit int) (int, error) {
	seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)

	var limit *int32
	if usageLimit > 0 {
		l := int32(usageLimit)
		limit = &l
	}

	batch := &pgx.Batch{}
	total := 0

	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		if err := pool.SendBatch(ctx, batch).Close(); err != nil {
			return errors.Wrap(err, "insert batch")
		}
		total += batch.Len()
		batch = &pgx.Batch{}
		return nil
	}

	for code := range codes {
		if seen.TestAndAddString(code) {
			continue
		}

		batch.Queue(
			`INSERT INTO promo_codes (code, active, usage_limit, discount_percent)
			VALUES ($1, TRUE, $2, $3)
			ON CONFLICT DO NOTHING`,
			code, limit, percent,
		)
		if batch.Len() >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// validCode accepts uppercase alphanumeric codes of 8 to 10 characters.
func validCode(code string) bool {
	if len(code) < minCodeLen || len(code) > maxCodeLen {
		return false
	}
	for i := range len(code) {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
