package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for cart data storage.
type Repository interface {
	CreateCart(ctx context.Context, c *Cart) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	ListCarts(ctx context.Context) ([]*Cart, error)

	CreateItem(ctx context.Context, item *CartItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*CartItem, error)
	GetItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error)
	// ListItems returns a cart's lines most recently added first.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error)
	UpdateItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
