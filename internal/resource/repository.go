package resource

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
	Create(ctx context.Context, res *Resource) error
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)
	Update(ctx context.Context, res *Resource) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const resourceColumns = `id, name, type, capacity_max, description, features,
	site, building, floor, room_number, open_time, close_time, status,
	image_url, hourly_rate_internal, is_deleted, created_at`

func (r *pgxRepository) Create(ctx context.Context, res *Resource) error {
	const query = `
		INSERT INTO public.resources
			(name, type, capacity_max, description, features, site, building,
			 floor, room_number, open_time, close_time, status, image_url,
			 hourly_rate_internal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		res.Name, res.Type, res.CapacityMax, res.Description, res.Features,
		res.Site, res.Building, res.Floor, res.RoomNumber, res.OpenTime,
		res.CloseTime, res.Status, res.ImageURL, res.HourlyRateInternal,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create resource failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Resource, error) {
	// Soft-deleted resources behave as absent for every caller.
	query := `
		SELECT ` + resourceColumns + `
		FROM public.resources
		WHERE id = $1 AND is_deleted = false
	`
	row := r.pool.QueryRow(ctx, query, id)

	res, err := scanResource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resource failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "type", "capacity_max", "description", "features",
		"site", "building", "floor", "room_number", "open_time", "close_time",
		"status", "image_url", "hourly_rate_internal", "is_deleted",
		"created_at", "count(*) OVER() AS total_count",
	).
		From("public.resources").
		Where(squirrel.Eq{"is_deleted": false})

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Site != "" {
		query = query.Where(squirrel.Eq{"site": filter.Site})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.MinCapacity > 0 {
		query = query.Where(squirrel.GtOrEq{"capacity_max": filter.MinCapacity})
	}
	if filter.Feature != "" {
		query = query.Where("? = ANY(features)", filter.Feature)
	}

	orderBy := "name"
	switch filter.Sort {
	case "capacity":
		orderBy = "capacity_max"
	case "type":
		orderBy = "type"
	}
	query = query.OrderBy(orderBy + " ASC")

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
		return nil, 0, fmt.Errorf("build list resources query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list resources failed: %w", err)
	}
	defer rows.Close()

	var resources []*Resource
	var total int

	for rows.Next() {
		var res Resource
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Type, &res.CapacityMax, &res.Description,
			&res.Features, &res.Site, &res.Building, &res.Floor, &res.RoomNumber,
			&res.OpenTime, &res.CloseTime, &res.Status, &res.ImageURL,
			&res.HourlyRateInternal, &res.IsDeleted, &res.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan resource failed: %w", err)
		}
		resources = append(resources, &res)
	}

	return resources, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, res *Resource) error {
	const query = `
		UPDATE public.resources
		SET name = $1, capacity_max = $2, description = $3, features = $4,
		    site = $5, building = $6, floor = $7, room_number = $8,
		    open_time = $9, close_time = $10, status = $11, image_url = $12,
		    hourly_rate_internal = $13, is_deleted = $14
		WHERE id = $15
	`
	ct, err := r.pool.Exec(ctx, query,
		res.Name, res.CapacityMax, res.Description, res.Features,
		res.Site, res.Building, res.Floor, res.RoomNumber,
		res.OpenTime, res.CloseTime, res.Status, res.ImageURL,
		res.HourlyRateInternal, res.IsDeleted, res.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("update resource failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResource(row pgx.Row) (*Resource, error) {
	var res Resource
	if err := row.Scan(
		&res.ID, &res.Name, &res.Type, &res.CapacityMax, &res.Description,
		&res.Features, &res.Site, &res.Building, &res.Floor, &res.RoomNumber,
		&res.OpenTime, &res.CloseTime, &res.Status, &res.ImageURL,
		&res.HourlyRateInternal, &res.IsDeleted, &res.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}
