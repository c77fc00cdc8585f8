package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByID(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p CreateParams) (*Product, error)
	Update(ctx context.Context, id int, p UpdateParams) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const selectProduct = `
	SELECT
		p.id,
		p.name,
		p.description,
		p.price,
		p.image_url,
		p.stock_quantity,
		p.category_id,
		c.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.StockQuantity,
		&p.CategoryID,
		&p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Product, error) {
	row := r.db.QueryRowContext(ctx, selectProduct+" WHERE p.id = $1", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("product_name", p.Name),
	)

	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, image_url, stock_quantity, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		p.Name, p.Description, p.Price, p.ImageURL, p.StockQuantity, p.CategoryID,
	).Scan(&id)

	if err != nil {
		log.Error("db: failed to insert product", zap.Error(err))
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *repository) Update(ctx context.Context, id int, p UpdateParams) (*Product, error) {
	if p.Empty() {
		return r.FindByID(ctx, id)
	}

	set := []string{}
	args := []any{}

	appendSet := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if p.Name != nil {
		appendSet("name", *p.Name)
	}
	if p.Description != nil {
		appendSet("description", *p.Description)
	}
	if p.Price != nil {
		appendSet("price", *p.Price)
	}
	if p.ImageURL != nil {
		appendSet("image_url", *p.ImageURL)
	}
	if p.StockQuantity != nil {
		appendSet("stock_quantity", *p.StockQuantity)
	}
	if p.CategoryID != nil {
		appendSet("category_id", *p.CategoryID)
	}

	query := "UPDATE products SET " + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d", len(args)+1)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, apperr.NotFoundf("product %d not found", id)
	}

	return r.FindByID(ctx, id)
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProduct+" ORDER BY p.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

func (r *repository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products")
	return err
}
