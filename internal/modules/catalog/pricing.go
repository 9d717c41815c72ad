package catalog

import "github.com/shopspring/decimal"

// All monetary arithmetic is fixed-point decimal with two fractional
// digits. Prices are constrained to at least MinimumPrice, so the
// percentage division below can never divide by zero.

// MinimumPrice is the lowest allowed price or discount price.
var MinimumPrice = decimal.NewFromFloat(10.00)

var hundred = decimal.NewFromInt(100)

// HasDiscount reports whether a discount price is set.
func (p *Product) HasDiscount() bool { return p.DiscountPrice != nil }

// SellingPrice is the price actually charged: the discount price when
// set, otherwise the base price.
func (p *Product) SellingPrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountAmount is the saving per unit against the base price.
func (p *Product) DiscountAmount() decimal.Decimal {
	if p.HasDiscount() {
		return p.Price.Sub(*p.DiscountPrice)
	}
	return decimal.Zero
}

// DiscountPercentage is the saving as a percentage of the base price,
// rounded to two decimal places. 0.00 when no discount is set.
func (p *Product) DiscountPercentage() decimal.Decimal {
	if !p.HasDiscount() {
		return decimal.Zero
	}
	return p.DiscountAmount().Div(p.Price).Mul(hundred).Round(2)
}

// InStock reports whether the product can currently be bought.
func (p *Product) InStock() bool {
	return p.Status == StatusActive && p.Stock > 0
}
