package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response views are explicit per endpoint; which fields appear is fixed
// at compile time.

// CategoryRef is the short category form embedded in product views.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// VendorRef is the short vendor form embedded in product views.
type VendorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ReviewAggregate is the per-product review summary attached to product
// views. It is recomputed for every request because which reviews count
// depends on the caller.
type ReviewAggregate struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Sum     int     `json:"sum"`
}

// ProductView is the full product representation returned by the catalog
// endpoints.
type ProductView struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPrice      *decimal.Decimal `json:"discount_price,omitempty"`
	SellingPrice       decimal.Decimal  `json:"selling_price"`
	HasDiscount        bool             `json:"has_discount"`
	DiscountAmount     decimal.Decimal  `json:"discount_amount"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	Stock              int              `json:"stock"`
	InStock            bool             `json:"in_stock"`
	Status             ProductStatus    `json:"status"`
	StatusLabel        string           `json:"status_label"`
	Category           CategoryRef      `json:"category"`
	Vendor             VendorRef        `json:"vendor"`
	Rating             float64          `json:"rating"`
	TotalReviews       int              `json:"total_reviews"`
	TotalRatings       int              `json:"total_ratings"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewProductView assembles the full view from a product and its review
// aggregate.
func NewProductView(p *Product, reviews ReviewAggregate) *ProductView {
	return &ProductView{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPrice:      p.DiscountPrice,
		SellingPrice:       p.SellingPrice(),
		HasDiscount:        p.HasDiscount(),
		DiscountAmount:     p.DiscountAmount(),
		DiscountPercentage: p.DiscountPercentage(),
		Stock:              p.Stock,
		InStock:            p.InStock(),
		Status:             p.Status,
		StatusLabel:        p.Status.Label(),
		Category:           CategoryRef{ID: p.CategoryID, Name: p.CategoryName, Slug: p.CategorySlug},
		Vendor:             VendorRef{ID: p.VendorID, Name: p.VendorName},
		Rating:             reviews.Average,
		TotalReviews:       reviews.Count,
		TotalRatings:       reviews.Sum,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ProductSummary is the short product form embedded in cart line views.
type ProductSummary struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	SellingPrice  decimal.Decimal  `json:"selling_price"`
	HasDiscount   bool             `json:"has_discount"`
	Stock         int              `json:"stock"`
}

// NewProductSummary assembles the short view.
func NewProductSummary(p *Product) ProductSummary {
	return ProductSummary{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		SellingPrice:  p.SellingPrice(),
		HasDiscount:   p.HasDiscount(),
		Stock:         p.Stock,
	}
}
