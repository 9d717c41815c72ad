package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Service defines cart business logic. Every quantity mutation
// re-validates against the product's stock as read at call time; stock is
// never cached between requests.
type Service interface {
	// ProvisionCart creates the cart for a freshly registered account.
	ProvisionCart(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)

	// GetUserCart returns the caller's cart with derived totals, creating
	// it on first use.
	GetUserCart(ctx context.Context, caller policy.Caller) (*CartView, error)

	// ListCarts returns every cart with totals. Administrator only.
	ListCarts(ctx context.Context, caller policy.Caller) ([]*CartView, error)

	// AddItem merges the product into the cart: an existing line has its
	// quantity incremented by the requested amount, otherwise a new line
	// is created. Fails with StockExceeded when the resulting quantity
	// would pass the product's current stock.
	AddItem(ctx context.Context, caller policy.Caller, req AddItemRequest) (*CartItem, error)

	// RemoveItem deletes a line from the caller's cart.
	RemoveItem(ctx context.Context, caller policy.Caller, itemID string) error

	// IncrementItem raises a line's quantity by one, re-checking stock.
	IncrementItem(ctx context.Context, caller policy.Caller, itemID string) (int, error)

	// DecrementItem lowers a line's quantity by one; quantity never drops
	// below one.
	DecrementItem(ctx context.Context, caller policy.Caller, itemID string) (int, error)
}

// ProductSource is the slice of the catalog repository carts need: a
// fresh product read for pricing and the stock ceiling.
type ProductSource interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

const maxQuantity = 1000

type service struct {
	repo     Repository
	products ProductSource
}

// NewService creates a new cart service.
func NewService(repo Repository, products ProductSource) Service {
	return &service{repo: repo, products: products}
}

func (s *service) ProvisionCart(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	c := &Cart{ID: uuid.New(), UserID: userID}
	if err := s.repo.CreateCart(ctx, c); err != nil {
		return uuid.Nil, fmt.Errorf("failed to persist cart: %w", err)
	}
	return c.ID, nil
}

func (s *service) GetUserCart(ctx context.Context, caller policy.Caller) (*CartView, error) {
	c, err := s.userCart(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, c)
}

func (s *service) ListCarts(ctx context.Context, caller policy.Caller) ([]*CartView, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	carts, err := s.repo.ListCarts(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*CartView, 0, len(carts))
	for _, c := range carts {
		view, err := s.buildView(ctx, c)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) AddItem(ctx context.Context, caller policy.Caller, req AddItemRequest) (*CartItem, error) {
	c, err := s.userCart(ctx, caller)
	if err != nil {
		return nil, err
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 || quantity > maxQuantity {
		return nil, apperr.Validation("quantity", "quantity must be between 1 and 1000")
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	p, err := s.products.GetProductByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByProduct(ctx, c.ID, p.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		// The ceiling is checked against stock as read now, not at the
		// time the line was created.
		if existing.Quantity+quantity > p.Stock {
			return nil, &apperr.StockExceededError{Quantity: existing.Quantity}
		}
		existing.Quantity += quantity
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if quantity > p.Stock {
		return nil, &apperr.StockExceededError{Quantity: 0}
	}
	item := &CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: p.ID,
		Quantity:  quantity,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to persist cart item: %w", err)
	}
	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, caller policy.Caller, itemID string) error {
	item, err := s.ownedItem(ctx, caller, itemID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, item.ID)
}

func (s *service) IncrementItem(ctx context.Context, caller policy.Caller, itemID string) (int, error) {
	item, err := s.ownedItem(ctx, caller, itemID)
	if err != nil {
		return 0, err
	}
	p, err := s.products.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return 0, err
	}
	if item.Quantity+1 > p.Stock {
		return item.Quantity, &apperr.StockExceededError{Quantity: item.Quantity}
	}
	item.Quantity++
	if err := s.repo.UpdateItemQuantity(ctx, item.ID, item.Quantity); err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

func (s *service) DecrementItem(ctx context.Context, caller policy.Caller, itemID string) (int, error) {
	item, err := s.ownedItem(ctx, caller, itemID)
	if err != nil {
		return 0, err
	}
	if item.Quantity <= 1 {
		return item.Quantity, &apperr.MinimumQuantityError{Quantity: item.Quantity}
	}
	item.Quantity--
	if err := s.repo.UpdateItemQuantity(ctx, item.ID, item.Quantity); err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

// userCart fetches the caller's cart, creating it on first use.
func (s *service) userCart(ctx context.Context, caller policy.Caller) (*Cart, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCartByUserID(ctx, caller.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		c = &Cart{ID: uuid.New(), UserID: caller.UserID}
		if err := s.repo.CreateCart(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return c, err
}

// ownedItem resolves a line and verifies it belongs to the caller's cart;
// lines in other carts are reported as absent.
func (s *service) ownedItem(ctx context.Context, caller policy.Caller, itemID string) (*CartItem, error) {
	c, err := s.userCart(ctx, caller)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.CartID != c.ID {
		return nil, apperr.ErrNotFound
	}
	return item, nil
}

func (s *service) buildView(ctx context.Context, c *Cart) (*CartView, error) {
	items, err := s.repo.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		p, err := s.products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{Item: item, Product: p})
	}
	return NewCartView(c, lines), nil
}
