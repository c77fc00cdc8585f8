package product

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    *int            `json:"categoryId,omitempty"`
	CategoryName  *string         `json:"categoryName,omitempty"`
}

type CreateParams struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	ImageURL      *string
	StockQuantity int
	CategoryID    *int
}

// UpdateParams carries a partial update: only non-nil fields
// overwrite the stored values.
type UpdateParams struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	StockQuantity *int
	CategoryID    *int
}

func (p UpdateParams) Empty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Price == nil &&
		p.ImageURL == nil &&
		p.StockQuantity == nil &&
		p.CategoryID == nil
}
