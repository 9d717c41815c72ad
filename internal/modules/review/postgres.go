package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const reviewSelect = `
	SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.is_active,
	       r.created_at, r.updated_at, p.name, u.first_name || ' ' || u.last_name
	FROM reviews r
	JOIN products p ON p.id = r.product_id
	JOIN users u ON u.id = r.user_id`

func scanReview(scan func(...interface{}) error) (*Review, error) {
	r := &Review{}
	err := scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment,
		&r.IsActive, &r.CreatedAt, &r.UpdatedAt, &r.ProductName, &r.UserName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *postgresRepo) CreateReview(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.IsActive)
	return err
}

func (r *postgresRepo) GetReviewByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	row := r.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id=$1`, id)
	return scanReview(row.Scan)
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx,
		reviewSelect+` WHERE r.product_id=$1 ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID uuid.UUID, rating int) ([]*Review, error) {
	query := reviewSelect + ` WHERE r.user_id=$1`
	args := []interface{}{userID}
	if rating != 0 {
		query += ` AND r.rating=$2`
		args = append(args, rating)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*Review, error) {
	var reviews []*Review
	for rows.Next() {
		rv, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) ExistsByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id=$1 AND user_id=$2)`,
		productID, userID).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) UpdateReview(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reviews
		SET rating=$1, comment=$2, is_active=$3, updated_at=NOW()
		WHERE id=$4`,
		rv.Rating, rv.Comment, rv.IsActive, rv.ID)
	return err
}

func (r *postgresRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	return err
}
