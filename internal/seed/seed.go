package seed

import (
	"context"
	"fmt"
	"os"

	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// demoProductThreshold is the product count below which the demo
// seeder considers the catalog partial and rebuilds it.
const demoProductThreshold = 6

type demoProduct struct {
	name        string
	description string
	price       string
	imageURL    string
}

var demoProducts = []demoProduct{
	{"Classic Wristwatch", "Elegant timepiece with leather strap.", "129.99",
		"https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&w=800&q=80"},
	{"Noise-Cancelling Headphones", "Immersive sound quality with 30h battery life.", "249.99",
		"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&w=800&q=80"},
	{"Retro Camera", "Capture memories with vintage style.", "599.00",
		"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&w=800&q=80"},
	{"Canvas Sneakers", "Comfortable everyday wear.", "45.00",
		"https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=800&q=80"},
	{"VR Headset", "Explore new worlds.", "399.99",
		"https://images.unsplash.com/photo-1585298723682-7115561c51b7?auto=format&fit=crop&w=800&q=80"},
	{"Designer Denim Jacket", "A classic addition to any wardrobe.", "89.95",
		"https://images.unsplash.com/photo-1572569028738-411a56106515?auto=format&fit=crop&w=800&q=80"},
}

type Seeder struct {
	cfg        *config.Config
	categories category.Repository
	products   product.Repository
	productSvc product.Service
}

func New(cfg *config.Config, categories category.Repository, products product.Repository, productSvc product.Service) *Seeder {
	return &Seeder{
		cfg:        cfg,
		categories: categories,
		products:   products,
		productSvc: productSvc,
	}
}

// Run executes the startup seeding collaborators: first the CSV
// initializer against an empty catalog, then the demo seeder.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.initFromCSV(ctx); err != nil {
		return fmt.Errorf("csv init: %w", err)
	}
	if err := s.seedDemo(ctx); err != nil {
		return fmt.Errorf("demo seed: %w", err)
	}
	return nil
}

// initFromCSV loads the sample feed, but only into a catalog that has
// no categories and no products at all.
func (s *Seeder) initFromCSV(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("component", "seed"))

	catCount, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	prodCount, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if catCount > 0 || prodCount > 0 {
		return nil
	}

	f, err := os.Open(s.cfg.SeedCSVPath)
	if os.IsNotExist(err) {
		log.Info("seed csv not found, skipping initialization",
			zap.String("path", s.cfg.SeedCSVPath),
		)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	imported, err := s.productSvc.ImportCSV(ctx, f, product.DefaultSeedStock)
	if err != nil {
		return err
	}

	log.Info("initialized catalog from csv",
		zap.String("path", s.cfg.SeedCSVPath),
		zap.Int("imported", imported),
	)
	return nil
}

// seedDemo ensures the General category and a fixed demo catalog.
// It clears the product table when fewer than demoProductThreshold
// products exist, so it must never run against a production store.
func (s *Seeder) seedDemo(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("component", "seed"))

	if s.cfg.IsProduction() || !s.cfg.SeedDemo {
		log.Debug("demo seeding disabled")
		return nil
	}

	general, err := s.categories.FindByName(ctx, "General")
	if err != nil {
		return err
	}
	if general == nil {
		general, err = s.categories.Create(ctx, "General", "Default category")
		if err != nil {
			return err
		}
		log.Info("seeded General category")
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if count >= demoProductThreshold {
		return nil
	}

	// Clear old/partial data so the demo catalog is consistent.
	if err := s.products.DeleteAll(ctx); err != nil {
		return err
	}

	for _, d := range demoProducts {
		img := d.imageURL
		_, err := s.products.Create(ctx, product.CreateParams{
			Name:          d.name,
			Description:   d.description,
			Price:         decimal.RequireFromString(d.price),
			ImageURL:      &img,
			StockQuantity: product.DefaultSeedStock,
			CategoryID:    &general.ID,
		})
		if err != nil {
			return err
		}
	}

	log.Info("seeded demo products", zap.Int("count", len(demoProducts)))
	return nil
}
