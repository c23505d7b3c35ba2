package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"budget-control/internal/data"
	"budget-control/internal/model"
)

// Postgres serves series from a shared database, for deployments where
// several API instances read the same history.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (p *Postgres) SaveSeries(ctx context.Context, ts model.TimeSeries) error {
	if ts.Key == "" {
		return model.Invalid("key", "must not be empty")
	}
	if err := ts.Validate(1); err != nil {
		return err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO series (key, unit, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET unit = EXCLUDED.unit, updated_at = NOW()`,
		ts.Key, ts.Unit,
	); err != nil {
		return fmt.Errorf("failed to save series %s: %w", ts.Key, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM series_points WHERE key = $1`, ts.Key); err != nil {
		return fmt.Errorf("failed to clear points %s: %w", ts.Key, err)
	}

	batch := &pgx.Batch{}
	for _, pt := range ts.Points {
		batch.Queue(`INSERT INTO series_points (key, period, value) VALUES ($1, $2, $3)`, ts.Key, pt.Period, pt.Value)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert points %s: %w", ts.Key, err)
	}
	return tx.Commit(ctx)
}

// FetchSeries implements data.SeriesSource.
func (p *Postgres) FetchSeries(ctx context.Context, key string) (model.TimeSeries, error) {
	ts := model.TimeSeries{Key: key}
	err := p.pool.QueryRow(ctx, `SELECT unit FROM series WHERE key = $1`, key).Scan(&ts.Unit)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TimeSeries{}, fmt.Errorf("%w: %s", data.ErrSeriesNotFound, key)
	}
	if err != nil {
		return model.TimeSeries{}, err
	}

	rows, err := p.pool.Query(ctx, `SELECT period, value FROM series_points WHERE key = $1 ORDER BY period`, key)
	if err != nil {
		return model.TimeSeries{}, err
	}
	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Point, error) {
		var pt model.Point
		err := row.Scan(&pt.Period, &pt.Value)
		return pt, err
	})
	if err != nil {
		return model.TimeSeries{}, err
	}
	ts.Points = points
	return ts, nil
}

func (p *Postgres) ListSeriesKeys(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT key FROM series ORDER BY key`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (p *Postgres) DeleteSeries(ctx context.Context, key string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM series WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete series %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", data.ErrSeriesNotFound, key)
	}
	return nil
}
