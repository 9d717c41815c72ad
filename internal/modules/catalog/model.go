package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle state of a product. Status is
// authoritative and set manually; stock never changes it.
type ProductStatus string

const (
	StatusDraft        ProductStatus = "DRAFT"
	StatusActive       ProductStatus = "ACTIVE"
	StatusInactive     ProductStatus = "INACTIVE"
	StatusDiscontinued ProductStatus = "DISCONTINUED"
)

var statusLabels = map[ProductStatus]string{
	StatusDraft:        "Draft",
	StatusActive:       "Active",
	StatusInactive:     "Inactive",
	StatusDiscontinued: "Discontinued",
}

// Label returns the display label for a status.
func (s ProductStatus) Label() string { return statusLabels[s] }

// Valid reports whether the status is one of the known values.
func (s ProductStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusChoice is a value/label pair for form rendering.
type StatusChoice struct {
	Value ProductStatus `json:"value"`
	Label string        `json:"label"`
}

// StatusChoices lists every product status with its display label.
func StatusChoices() []StatusChoice {
	return []StatusChoice{
		{StatusDraft, "Draft"},
		{StatusActive, "Active"},
		{StatusInactive, "Inactive"},
		{StatusDiscontinued, "Discontinued"},
	}
}

// Category groups products. Deleting a category that still has products
// is refused.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a catalog item owned by a vendor.
type Product struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Stock         int              `json:"stock"`
	Status        ProductStatus    `json:"status"`
	CategoryID    uuid.UUID        `json:"category_id"`
	VendorID      uuid.UUID        `json:"vendor_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Denormalized join fields, populated on every read.
	CategoryName string    `json:"-"`
	CategorySlug string    `json:"-"`
	VendorName   string    `json:"-"`
	VendorUserID uuid.UUID `json:"-"` // owning vendor's user, for the visibility policy
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Stock         int              `json:"stock"`
	Status        string           `json:"status"`
	CategoryID    string           `json:"category_id"`
	VendorID      string           `json:"vendor_id"`
}

// UpdateProductRequest is the payload for editing a product. The slug is
// fixed at creation.
type UpdateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Stock         int              `json:"stock"`
	Status        string           `json:"status"`
	CategoryID    string           `json:"category_id"`
}

// CategoryRequest is the payload for creating or editing a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *uuid.UUID
	VendorID   *uuid.UUID
}

// slugify derives a URL slug from a name: lowercase, runs of anything
// that is not a letter or digit collapse to a single hyphen.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
