package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rate *SeasonalRate) error
	Delete(ctx context.Context, id string) error
	ListForYacht(ctx context.Context, yachtID string) ([]SeasonalRate, error)

	// ListForYachtInWindow returns rates intersecting [start, end).
	ListForYachtInWindow(ctx context.Context, yachtID string, start, end time.Time) ([]SeasonalRate, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rate *SeasonalRate) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.seasonal_rates").
		Columns("yacht_id", "name", "start_date", "end_date", "daily_rate").
		Values(rate.YachtID, rate.Name, rate.StartDate, rate.EndDate, rate.DailyRate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rate query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rate.ID, &rate.CreatedAt); err != nil {
		return fmt.Errorf("create rate failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.seasonal_rates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rate query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rate failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListForYacht(ctx context.Context, yachtID string) ([]SeasonalRate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "yacht_id", "name", "start_date", "end_date", "daily_rate", "created_at").
		From("public.seasonal_rates").
		Where(squirrel.Eq{"yacht_id": yachtID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rates query failed: %w", err)
	}

	return r.queryRates(ctx, sql, args)
}

func (r *pgxRepository) ListForYachtInWindow(ctx context.Context, yachtID string, start, end time.Time) ([]SeasonalRate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select("id", "yacht_id", "name", "start_date", "end_date", "daily_rate", "created_at").
		From("public.seasonal_rates").
		Where(squirrel.Eq{"yacht_id": yachtID}).
		Where(squirrel.Lt{"start_date": end}).
		Where(squirrel.Gt{"end_date": start}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rates in window query failed: %w", err)
	}

	return r.queryRates(ctx, sql, args)
}

func (r *pgxRepository) queryRates(ctx context.Context, sql string, args []interface{}) ([]SeasonalRate, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("list rates failed: %w", err)
	}
	defer rows.Close()

	var rates []SeasonalRate
	for rows.Next() {
		var rate SeasonalRate
		if err := rows.Scan(&rate.ID, &rate.YachtID, &rate.Name, &rate.StartDate, &rate.EndDate, &rate.DailyRate, &rate.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rate failed: %w", err)
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
