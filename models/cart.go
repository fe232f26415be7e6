package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineKey identifies a cart line: the same product in another color or size is another line.
type LineKey struct {
	ProductID int    `json:"product_id"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

func (k LineKey) String() string {
	return fmt.Sprintf("%d-%s-%s", k.ProductID, k.Color, k.Size)
}

type CartLine struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selected_color,omitempty"`
	SelectedSize  string  `json:"selected_size,omitempty"`
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Color: l.SelectedColor, Size: l.SelectedSize}
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartSummary struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

type CartView struct {
	Lines   []CartLine  `json:"lines"`
	Summary CartSummary `json:"summary"`
}
