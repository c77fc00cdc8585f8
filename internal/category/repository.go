package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/apperr"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// FindByName returns (nil, nil) when no category has that name;
	// absence is not an error here.
	FindByName(ctx context.Context, name string) (*Category, error)
	FindByID(ctx context.Context, id int) (*Category, error)
	Create(ctx context.Context, name, description string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) FindByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM categories WHERE name = $1",
		name,
	).Scan(&c.ID, &c.Name, &c.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM categories WHERE id = $1",
		id,
	).Scan(&c.ID, &c.Name, &c.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("category %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, name, description string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("category_name", name),
	)

	if name == "" {
		return nil, apperr.Validation("category name cannot be empty")
	}

	var c Category
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, name, description",
		name, description,
	).Scan(&c.ID, &c.Name, &c.Description)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Conflict("category already exists")
		}
		log.Error("db: failed to insert category", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description FROM categories ORDER BY name ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&n)
	return n, err
}
