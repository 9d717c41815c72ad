package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
)

// Cart is owned 1:1 by a user account and created when the account is.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem is one product line in a cart.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cart_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	DateAdded time.Time `json:"date_added"`
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ItemView is the cart line representation returned to clients.
type ItemView struct {
	ID        uuid.UUID              `json:"id"`
	Product   catalog.ProductSummary `json:"product"`
	Quantity  int                    `json:"quantity"`
	Total     decimal.Decimal        `json:"total"`
	DateAdded time.Time              `json:"date_added"`
}

// CartView is the full cart representation with derived totals.
type CartView struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Items              []ItemView      `json:"items"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DeliveryCharge     decimal.Decimal `json:"delivery_charge"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Total              decimal.Decimal `json:"total"`
	CreatedAt          time.Time       `json:"created_at"`
}
