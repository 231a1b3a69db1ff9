package driver

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"search-service/logger"
)

type DatabaseDriver struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewDatabaseDriver(pool *pgxpool.Pool, queryTimeout time.Duration) *DatabaseDriver {
	return &DatabaseDriver{pool: pool, timeout: queryTimeout}
}

// NewDatabaseDriverFromURL creates a DatabaseDriver with a connection pool
// built from the given connection string. queryTimeout bounds every
// statement the driver runs; incoming request contexts are otherwise
// unbounded.
func NewDatabaseDriverFromURL(ctx context.Context, dbURL string, queryTimeout time.Duration) (*DatabaseDriver, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, &DriverError{
			Op:  "NewDatabaseDriverFromURL",
			Err: "failed to parse database URL: " + err.Error(),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &DriverError{
			Op:  "NewDatabaseDriverFromURL",
			Err: "failed to create database pool: " + err.Error(),
		}
	}

	d := &DatabaseDriver{pool: pool, timeout: queryTimeout}

	pingCtx, cancel := d.withTimeout(ctx)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, &DriverError{
			Op:  "NewDatabaseDriverFromURL",
			Err: "failed to ping database: " + err.Error(),
		}
	}

	logger.Logger.Info("Database connected successfully")
	return d, nil
}

// withTimeout bounds one statement. A non-positive timeout leaves the
// caller's context untouched.
func (d *DatabaseDriver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.timeout)
}

// Close closes the database connection pool.
func (d *DatabaseDriver) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// GetServiceByID fetches one active service row. The active filter is part
// of the query so a row mid-deactivation is never returned. A missing or
// inactive row yields (nil, nil); the gateway maps that to the not-found
// outcome.
func (d *DatabaseDriver) GetServiceByID(ctx context.Context, id string) (*ServiceRow, error) {
	query := `
		SELECT
			id::text,
			title,
			COALESCE(description, ''),
			COALESCE(category, ''),
			COALESCE(location, ''),
			COALESCE(capacity, ''),
			COALESCE(technical_specs, ''),
			COALESCE(supplier_id::text, ''),
			COALESCE(supplier_name, ''),
			COALESCE(price_per_day, 0),
			created_at
		FROM services
		WHERE id = $1 AND is_active = TRUE
	`

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var row ServiceRow
	var createdAt time.Time
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.Title,
		&row.Description,
		&row.Category,
		&row.Location,
		&row.Capacity,
		&row.TechnicalSpecs,
		&row.SupplierID,
		&row.SupplierName,
		&row.PricePerDay,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &DriverError{Op: "GetServiceByID", Err: err.Error()}
	}

	row.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &row, nil
}

// GetAllSynonyms fetches every (word, synonym) pair, ordered by root word so
// grouping downstream is deterministic.
func (d *DatabaseDriver) GetAllSynonyms(ctx context.Context) ([]SynonymRow, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `SELECT word, synonym FROM synonyms ORDER BY word, synonym`)
	if err != nil {
		return nil, &DriverError{Op: "GetAllSynonyms", Err: err.Error()}
	}
	defer rows.Close()

	var pairs []SynonymRow
	for rows.Next() {
		var pair SynonymRow
		if err := rows.Scan(&pair.Word, &pair.Synonym); err != nil {
			return nil, &DriverError{Op: "GetAllSynonyms", Err: err.Error()}
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{Op: "GetAllSynonyms", Err: err.Error()}
	}

	return pairs, nil
}
