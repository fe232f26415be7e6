package models

import "github.com/shopspring/decimal"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`
	Description   string           `json:"description"`
	Features      []string         `json:"features"`
	Colors        []string         `json:"colors"`
	Sizes         []string         `json:"sizes,omitempty"`
	IsNew         bool             `json:"is_new"`
	IsSale        bool             `json:"is_sale"`
}

// DiscountPercent is the rounded markdown from OriginalPrice, or 0 when not discounted.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

type ProductDetail struct {
	Product         Product   `json:"product"`
	DiscountPercent int       `json:"discount_percent"`
	Recommendations []Product `json:"recommendations"`
}
