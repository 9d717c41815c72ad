package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
)

type categoryPostgresRepo struct{ db *sql.DB }

// NewCategoryPostgresRepository creates a new PostgreSQL category repository.
func NewCategoryPostgresRepository(db *sql.DB) CategoryRepository {
	return &categoryPostgresRepo{db: db}
}

func scanCategory(scan func(...interface{}) error) (*Category, error) {
	c := &Category{}
	err := scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryPostgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug) VALUES ($1,$2,$3)`,
		c.ID, c.Name, c.Slug)
	return err
}

func (r *categoryPostgresRepo) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE id=$1`, id)
	return scanCategory(row.Scan)
}

func (r *categoryPostgresRepo) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug=$1`, slug)
	return scanCategory(row.Scan)
}

func (r *categoryPostgresRepo) ListCategories(ctx context.Context, search string) ([]*Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryPostgresRepo) UpdateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name=$1, slug=$2, updated_at=NOW() WHERE id=$3`,
		c.Name, c.Slug, c.ID)
	return err
}

func (r *categoryPostgresRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	return err
}
