package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID                 int32  `json:"id"`
	Name               string `json:"name"`
	IncludeMounting    bool   `json:"include_mounting"`
	IncludeAccessories bool   `json:"include_accessories"`
	CreatedOn          string `json:"created_on,omitempty"`
	UpdatedOn          string `json:"updated_on,omitempty"`
}

type Product struct {
	ID          int32     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CategoryID  int32     `json:"category_id"`
	Category    *Category `json:"category,omitempty"` // Populated when fetching product details
	// Day rates. Which one applies is decided per order, never per line.
	PrepaidPrice       decimal.Decimal `json:"prepaid_price"`
	StandardPrice      decimal.Decimal `json:"standard_price"`
	HasLabourPrice     bool            `json:"has_labour_price"`
	LabourPrice        decimal.Decimal `json:"labour_price"`
	ExcludeConsumables bool            `json:"exclude_consumables"`
	CreatedOn          string          `json:"created_on,omitempty"`
	UpdatedOn          string          `json:"updated_on,omitempty"`
}

// DayRate returns the per-unit day rate for the order's pricing mode.
func (p Product) DayRate(isPrepaid bool) decimal.Decimal {
	if isPrepaid {
		return p.PrepaidPrice
	}
	return p.StandardPrice
}

type ProductFilter struct {
	Search     string
	CategoryID int32
	Page       int32
	PageSize   int32
}

// Catalog is a point-in-time copy of the products and categories an order can draw from.
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}

// Index resolves every product to its category. Products whose category is
// unknown are returned with a nil Category.
func (c Catalog) Index() map[int32]Product {
	cats := make(map[int32]Category, len(c.Categories))
	for _, cat := range c.Categories {
		cats[cat.ID] = cat
	}
	out := make(map[int32]Product, len(c.Products))
	for _, p := range c.Products {
		if cat, ok := cats[p.CategoryID]; ok {
			p.Category = &cat
		} else if p.Category != nil && p.Category.ID != p.CategoryID {
			p.Category = nil
		}
		out[p.ID] = p
	}
	return out
}
