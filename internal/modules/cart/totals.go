package cart

import (
	"github.com/shopspring/decimal"

	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
)

// StandardDeliveryCharge is the flat delivery charge applied to every
// cart, empty or not.
var StandardDeliveryCharge = decimal.NewFromFloat(10.00)

var hundred = decimal.NewFromInt(100)

// Line pairs a cart item with its product as read at aggregation time.
type Line struct {
	Item    *CartItem
	Product *catalog.Product
}

func (l Line) quantity() decimal.Decimal {
	return decimal.NewFromInt(int64(l.Item.Quantity))
}

// LineTotal is the line's price at the product's selling price.
func LineTotal(l Line) decimal.Decimal {
	return l.Product.SellingPrice().Mul(l.quantity())
}

// Subtotal sums line totals; an empty cart yields zero.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l))
	}
	return sum
}

// Total is the subtotal plus the flat delivery charge.
func Total(lines []Line) decimal.Decimal {
	return Subtotal(lines).Add(StandardDeliveryCharge)
}

// OriginalTotal sums base prices, ignoring discounts. Used to display
// what the cart would have cost undiscounted.
func OriginalTotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Product.Price.Mul(l.quantity()))
	}
	return sum
}

// DiscountTotal sums the per-unit savings across all lines.
func DiscountTotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Product.DiscountAmount().Mul(l.quantity()))
	}
	return sum
}

// DiscountPercentage is the cart-wide saving as a percentage of the
// undiscounted total, rounded to two decimals; 0.00 for an empty cart.
func DiscountPercentage(lines []Line) decimal.Decimal {
	original := OriginalTotal(lines)
	if !original.IsPositive() {
		return decimal.Zero
	}
	return DiscountTotal(lines).Div(original).Mul(hundred).Round(2)
}

// NewCartView assembles the full cart view with all derived totals.
func NewCartView(c *Cart, lines []Line) *CartView {
	items := make([]ItemView, 0, len(lines))
	for _, l := range lines {
		items = append(items, ItemView{
			ID:        l.Item.ID,
			Product:   catalog.NewProductSummary(l.Product),
			Quantity:  l.Item.Quantity,
			Total:     LineTotal(l),
			DateAdded: l.Item.DateAdded,
		})
	}
	return &CartView{
		ID:                 c.ID,
		UserID:             c.UserID,
		Items:              items,
		OriginalPrice:      OriginalTotal(lines),
		DiscountedPrice:    DiscountTotal(lines),
		DiscountPercentage: DiscountPercentage(lines),
		DeliveryCharge:     StandardDeliveryCharge,
		Subtotal:           Subtotal(lines),
		Total:              Total(lines),
		CreatedAt:          c.CreatedAt,
	}
}
