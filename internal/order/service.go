package order

import (
	"context"
	"time"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	// Place resolves the requester and every product, snapshots the
	// current product prices, and persists the order aggregate
	// atomically. Nothing is written when any item fails to resolve.
	Place(ctx context.Context, userEmail string, items []ItemRequest) (*Order, error)
}

type service struct {
	repo     Repository
	products product.Repository
	users    user.Repository
}

func NewService(repo Repository, products product.Repository, users user.Repository) Service {
	return &service{
		repo:     repo,
		products: products,
		users:    users,
	}
}

func (s *service) Place(ctx context.Context, userEmail string, items []ItemRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Place"),
		zap.Int("item_count", len(items)),
	)

	if len(items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	u, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		log.Warn("order requester not found", zap.Error(err))
		return nil, err
	}

	// Resolve every product before any write so a missing id leaves
	// the store untouched. Stock is not checked or decremented here;
	// ordering beyond available stock currently succeeds.
	orderItems := make([]OrderItem, 0, len(items))
	total := decimal.Zero

	for _, req := range items {
		p, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			log.Warn("order item product not found",
				zap.Int("product_id", req.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		orderItems = append(orderItems, OrderItem{
			ProductID: p.ID,
			Quantity:  req.Quantity,
			Price:     p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(req.Quantity))))
	}

	o := &Order{
		UserID:      u.ID,
		TotalAmount: total,
		CreatedAt:   time.Now(),
		Items:       orderItems,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order placed",
		zap.Int("order_id", o.ID),
		zap.String("total_amount", o.TotalAmount.String()),
	)

	return o, nil
}
