package product

import (
	"context"
	"io"

	"storefront-be/internal/apperr"
	"storefront-be/internal/category"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, p CreateParams) (*Product, error)
	Update(ctx context.Context, id int, p UpdateParams) (*Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	// ImportCSV ingests a product feed row by row; it returns the
	// number of rows committed, which stays valid even when the
	// returned error aborted the rest of the feed.
	ImportCSV(ctx context.Context, r io.Reader, defaultStock int) (int, error)
}

type service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) Service {
	return &service{repo: repo, categories: categories}
}

func (s *service) Create(ctx context.Context, p CreateParams) (*Product, error) {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "Product name is required"
	}
	if !p.Price.IsPositive() {
		fields["price"] = "Price must be greater than zero"
	}
	if p.StockQuantity < 0 {
		fields["stockQuantity"] = "Stock quantity cannot be negative"
	}
	if len(fields) > 0 {
		return nil, apperr.FieldViolations(fields)
	}

	if p.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *p.CategoryID); err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.Validation("category not found")
			}
			return nil, err
		}
	}

	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, id int, p UpdateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Int("product_id", id),
	)

	// Validate only provided fields
	fields := map[string]string{}
	if p.Name != nil && *p.Name == "" {
		fields["name"] = "Product name cannot be empty"
	}
	if p.Price != nil && !p.Price.IsPositive() {
		fields["price"] = "Price must be greater than zero"
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		fields["stockQuantity"] = "Stock quantity cannot be negative"
	}
	if len(fields) > 0 {
		return nil, apperr.FieldViolations(fields)
	}

	if p.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *p.CategoryID); err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.Validation("category not found")
			}
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return updated, nil
}

func (s *service) Get(ctx context.Context, id int) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}
