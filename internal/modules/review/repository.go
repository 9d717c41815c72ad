package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for review data storage.
type Repository interface {
	CreateReview(ctx context.Context, r *Review) error
	GetReviewByID(ctx context.Context, id uuid.UUID) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error)
	// ListByUser optionally narrows to a single rating value; rating 0
	// means no filter.
	ListByUser(ctx context.Context, userID uuid.UUID, rating int) ([]*Review, error)
	ExistsByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	UpdateReview(ctx context.Context, r *Review) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
}
