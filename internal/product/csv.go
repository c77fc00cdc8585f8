package product

import (
	"bufio"
	"context"
	"io"
	"strings"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Default stock quantities assigned to ingested products. The feed
// format carries no stock column.
const (
	DefaultUploadStock = 10
	DefaultSeedStock   = 50
)

// splitFeedLine splits a feed line on commas that are not enclosed in
// double quotes. Quote characters stay in the field; cleanField strips
// them afterwards.
func splitFeedLine(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// cleanField trims surrounding whitespace and strips one matching pair
// of double quotes.
func cleanField(field string) string {
	trimmed := strings.TrimSpace(field)
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		return trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}

// ImportCSV reads a product feed of the form
//
//	name, description, price, categoryName[, imageUrl]
//
// The first line is a header and is skipped. Rows with fewer than four
// fields are skipped silently. A price that does not parse aborts the
// remaining feed; rows already persisted stay persisted, since every
// row commits on its own.
func (s *service) ImportCSV(ctx context.Context, r io.Reader, defaultStock int) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ImportCSV"),
	)

	scanner := bufio.NewScanner(r)
	imported := 0
	header := true

	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			continue
		}

		fields := splitFeedLine(line)
		if len(fields) < 4 {
			log.Debug("skipping short row", zap.Int("field_count", len(fields)))
			continue
		}

		name := cleanField(fields[0])
		description := cleanField(fields[1])
		rawPrice := cleanField(fields[2])
		categoryName := cleanField(fields[3])

		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			log.Error("unparsable price in feed",
				zap.String("value", rawPrice),
				zap.Int("imported_so_far", imported),
			)
			return imported, apperr.Ingestionf("invalid price value: %q", rawPrice)
		}

		var imageURL *string
		if len(fields) > 4 {
			if v := cleanField(fields[4]); v != "" {
				imageURL = &v
			}
		}

		cat, err := s.categories.FindByName(ctx, categoryName)
		if err != nil {
			return imported, err
		}
		if cat == nil {
			// Category name doubles as the default description.
			cat, err = s.categories.Create(ctx, categoryName, categoryName)
			if err != nil {
				return imported, err
			}
		}

		_, err = s.repo.Create(ctx, CreateParams{
			Name:          name,
			Description:   description,
			Price:         price,
			ImageURL:      imageURL,
			StockQuantity: defaultStock,
			CategoryID:    &cat.ID,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}

	if err := scanner.Err(); err != nil {
		return imported, err
	}

	log.Info("feed import finished", zap.Int("imported", imported))
	return imported, nil
}
