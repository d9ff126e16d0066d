package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines access to stored blackout periods.
type Repository interface {
	CreateBlackout(ctx context.Context, b *Blackout) error
	DeleteBlackout(ctx context.Context, id string) error
	ListBlackouts(ctx context.Context, yachtID string) ([]Blackout, error)

	// ListBlackoutsInWindow returns blackouts intersecting [start, end),
	// optionally restricted to one yacht.
	ListBlackoutsInWindow(ctx context.Context, yachtID string, start, end time.Time) ([]Blackout, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateBlackout(ctx context.Context, b *Blackout) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blackout_periods").
		Columns("yacht_id", "start_time", "end_time", "reason").
		Values(b.YachtID, b.StartTime, b.EndTime, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create blackout query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create blackout failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) DeleteBlackout(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.blackout_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete blackout query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete blackout failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListBlackouts(ctx context.Context, yachtID string) ([]Blackout, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "yacht_id", "start_time", "end_time", "reason", "created_at").
		From("public.blackout_periods").
		OrderBy("start_time ASC")

	if yachtID != "" {
		query = query.Where(squirrel.Eq{"yacht_id": yachtID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blackouts query failed: %w", err)
	}

	return r.queryBlackouts(ctx, sql, args)
}

func (r *pgxRepository) ListBlackoutsInWindow(ctx context.Context, yachtID string, start, end time.Time) ([]Blackout, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// Half-open intersection: blackout.start < end AND blackout.end > start
	query := psql.Select("id", "yacht_id", "start_time", "end_time", "reason", "created_at").
		From("public.blackout_periods").
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if yachtID != "" {
		query = query.Where(squirrel.Eq{"yacht_id": yachtID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blackouts in window query failed: %w", err)
	}

	return r.queryBlackouts(ctx, sql, args)
}

func (r *pgxRepository) queryBlackouts(ctx context.Context, sql string, args []interface{}) ([]Blackout, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list blackouts failed: %w", err)
	}
	defer rows.Close()

	var blackouts []Blackout
	for rows.Next() {
		var b Blackout
		if err := rows.Scan(&b.ID, &b.YachtID, &b.StartTime, &b.EndTime, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blackout failed: %w", err)
		}
		blackouts = append(blackouts, b)
	}

	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate blackouts failed: %w", err)
	}

	return blackouts, nil
}
