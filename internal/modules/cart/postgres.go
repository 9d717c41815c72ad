package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL cart repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateCart(ctx context.Context, c *Cart) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO carts (id, user_id) VALUES ($1,$2)`, c.ID, c.UserID)
	return err
}

func (r *postgresRepo) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c := &Cart{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE user_id=$1`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListCarts(ctx context.Context) ([]*Cart, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, created_at FROM carts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []*Cart
	for rows.Next() {
		c := &Cart{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}
	return carts, rows.Err()
}

func scanItem(scan func(...interface{}) error) (*CartItem, error) {
	item := &CartItem{}
	err := scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.DateAdded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) CreateItem(ctx context.Context, item *CartItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1,$2,$3,$4)`,
		item.ID, item.CartID, item.ProductID, item.Quantity)
	return err
}

func (r *postgresRepo) GetItem(ctx context.Context, id uuid.UUID) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, cart_id, product_id, quantity, date_added FROM cart_items WHERE id=$1`, id)
	return scanItem(row.Scan)
}

func (r *postgresRepo) GetItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity, date_added
		FROM cart_items WHERE cart_id=$1 AND product_id=$2`, cartID, productID)
	return scanItem(row.Scan)
}

func (r *postgresRepo) ListItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cart_id, product_id, quantity, date_added
		FROM cart_items WHERE cart_id=$1 ORDER BY date_added DESC`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity=$1 WHERE id=$2`, quantity, id)
	return err
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id=$1`, id)
	return err
}
