package yacht

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, y *Yacht) error
	GetByID(ctx context.Context, id string) (*Yacht, error)
	List(ctx context.Context, filter Filter) ([]*Yacht, int, error)
	Update(ctx context.Context, y *Yacht) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, y *Yacht) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.yachts").
		Columns("name", "capacity", "home_port", "base_daily_rate", "is_active").
		Values(y.Name, y.Capacity, y.HomePort, y.BaseDailyRate, y.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create yacht query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&y.ID, &y.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("create yacht failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Yacht, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "capacity", "home_port", "base_daily_rate",
		"photo_path", "is_active", "created_at",
	).
		From("public.yachts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get yacht query failed: %w", err)
	}

	var y Yacht
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&y.ID, &y.Name, &y.Capacity, &y.HomePort, &y.BaseDailyRate,
		&y.PhotoPath, &y.IsActive, &y.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get yacht failed: %w", err)
	}
	return &y, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Yacht, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "capacity", "home_port", "base_daily_rate",
		"photo_path", "is_active", "created_at",
		"count(*) OVER() as total_count",
	).
		From("public.yachts")

	if filter.HomePort != "" {
		query = query.Where(squirrel.Eq{"home_port": filter.HomePort})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	query = query.OrderBy("name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list yachts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list yachts failed: %w", err)
	}
	defer rows.Close()

	var yachts []*Yacht
	var total int

	for rows.Next() {
		var y Yacht
		if err := rows.Scan(
			&y.ID, &y.Name, &y.Capacity, &y.HomePort, &y.BaseDailyRate,
			&y.PhotoPath, &y.IsActive, &y.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan yacht failed: %w", err)
		}
		yachts = append(yachts, &y)
	}

	return yachts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, y *Yacht) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.yachts").
		Set("name", y.Name).
		Set("capacity", y.Capacity).
		Set("home_port", y.HomePort).
		Set("base_daily_rate", y.BaseDailyRate).
		Set("photo_path", y.PhotoPath).
		Set("is_active", y.IsActive).
		Where(squirrel.Eq{"id": y.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update yacht query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("update yacht failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.yachts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete yacht query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete yacht failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
