package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifhossain/multimart-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productSelect = `
	SELECT p.id, p.name, p.slug, p.description, p.price, p.discount_price,
	       p.stock, p.status, p.category_id, p.vendor_id, p.created_at, p.updated_at,
	       c.name, c.slug, v.name, v.user_id
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN vendors v ON v.id = p.vendor_id`

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var discount decimal.NullDecimal
	err := scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &discount,
		&p.Stock, &p.Status, &p.CategoryID, &p.VendorID, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.CategorySlug, &p.VendorName, &p.VendorUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		p.DiscountPrice = &discount.Decimal
	}
	return p, nil
}

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	var discount interface{}
	if p.DiscountPrice != nil {
		discount = *p.DiscountPrice
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, slug, description, price, discount_price, stock, status, category_id, vendor_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, discount,
		p.Stock, p.Status, p.CategoryID, p.VendorID)
	return err
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.id=$1`, id)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.slug=$1`, slug)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	query := productSelect + ` WHERE 1=1`
	args := []interface{}{}
	n := 1
	if filter.CategoryID != nil {
		query += fmt.Sprintf(` AND p.category_id=$%d`, n)
		args = append(args, *filter.CategoryID)
		n++
	}
	if filter.VendorID != nil {
		query += fmt.Sprintf(` AND p.vendor_id=$%d`, n)
		args = append(args, *filter.VendorID)
		n++
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	var discount interface{}
	if p.DiscountPrice != nil {
		discount = *p.DiscountPrice
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, discount_price=$4, stock=$5,
		    status=$6, category_id=$7, updated_at=NOW()
		WHERE id=$8`,
		p.Name, p.Description, p.Price, discount, p.Stock, p.Status, p.CategoryID, p.ID)
	return err
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func (r *postgresRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE slug=$1)`, slug).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id=$1`, categoryID).Scan(&count)
	return count, err
}
