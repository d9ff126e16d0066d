package charter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// SnapshotForYacht loads every booking on the yacht intersecting
	// [start, end). The conflict core operates on this snapshot.
	SnapshotForYacht(ctx context.Context, yachtID string, start, end time.Time) ([]*Booking, error)

	// SnapshotInWindow loads bookings across the whole fleet intersecting
	// [start, end), for the calendar and the situation report.
	SnapshotInWindow(ctx context.Context, start, end time.Time) ([]*Booking, error)

	// HasOverlap re-checks the half-open overlap predicate in the database
	// immediately before a write. The pure check against the snapshot can
	// race a concurrent writer; this closes the window.
	HasOverlap(ctx context.Context, yachtID string, start, end time.Time, excludeID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingSelectColumns = []string{
	"b.id", "b.yacht_id", "y.name",
	"b.customer_name", "b.customer_email", "b.customer_phone",
	"b.start_time", "b.end_time", "b.status",
	"b.guest_count", "b.total_value", "b.deposit_amount", "b.notes",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.YachtID, &b.YachtName,
		&b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.StartTime, &b.EndTime, &b.Status,
		&b.GuestCount, &b.TotalValue, &b.DepositAmount, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"yacht_id", "customer_name", "customer_email", "customer_phone",
			"start_time", "end_time", "status",
			"guest_count", "total_value", "deposit_amount", "notes",
		).
		Values(
			b.YachtID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
			b.StartTime, b.EndTime, b.Status,
			b.GuestCount, b.TotalValue, b.DepositAmount, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingSelectColumns...).
		From("public.bookings b").
		Join("public.yachts y ON b.yacht_id = y.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingSelectColumns...), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.bookings b").
		Join("public.yachts y ON b.yacht_id = y.id")

	if filter.YachtID != "" {
		query = query.Where(squirrel.Eq{"b.yacht_id": filter.YachtID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Window intersection: keep bookings that touch [StartTime, EndTime)
	if filter.StartTime != nil {
		query = query.Where(squirrel.Gt{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.Lt{"b.start_time": filter.EndTime})
	}

	orderBy := "b.start_time"
	switch filter.SortBy {
	case "start_time", "end_time", "created_at", "status":
		orderBy = "b." + filter.SortBy
	}
	orderDir := "ASC"
	if filter.SortOrder == "desc" {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("yacht_id", b.YachtID).
		Set("customer_name", b.CustomerName).
		Set("customer_email", b.CustomerEmail).
		Set("customer_phone", b.CustomerPhone).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("status", b.Status).
		Set("guest_count", b.GuestCount).
		Set("total_value", b.TotalValue).
		Set("deposit_amount", b.DepositAmount).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SnapshotForYacht(ctx context.Context, yachtID string, start, end time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingSelectColumns...).
		From("public.bookings b").
		Join("public.yachts y ON b.yacht_id = y.id").
		Where(squirrel.Eq{"b.yacht_id": yachtID}).
		Where(squirrel.Lt{"b.start_time": end}).
		Where(squirrel.Gt{"b.end_time": start}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot query failed: %w", err)
	}

	return r.querySnapshot(ctx, query, args)
}

func (r *pgxRepository) SnapshotInWindow(ctx context.Context, start, end time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingSelectColumns...).
		From("public.bookings b").
		Join("public.yachts y ON b.yacht_id = y.id").
		Where(squirrel.Lt{"b.start_time": end}).
		Where(squirrel.Gt{"b.end_time": start}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fleet snapshot query failed: %w", err)
	}

	return r.querySnapshot(ctx, query, args)
}

func (r *pgxRepository) querySnapshot(ctx context.Context, sql string, args []interface{}) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, yachtID string, start, end time.Time, excludeID string) (bool, error) {
	// Same predicate as charter.Overlaps: start_time < end AND end_time > start,
	// blocking statuses only.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"yacht_id": yachtID}).
		Where(squirrel.NotEq{"status": string(StatusCancelled)}).
		Where(squirrel.NotEq{"status": string(StatusCompleted)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
