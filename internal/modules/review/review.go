package review

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
)

// Review is a customer's rating of a product, unique per (product, user).
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Denormalized join fields, populated on reads.
	ProductName string `json:"product,omitempty"`
	UserName    string `json:"user,omitempty"`
}

// visibilityStatus maps the active flag onto the policy status vocabulary.
func (r *Review) visibilityStatus() string {
	if r.IsActive {
		return "ACTIVE"
	}
	return "INACTIVE"
}

// CreateRequest is the payload for posting a review.
type CreateRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UpdateRequest is the payload for editing a review.
type UpdateRequest struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Aggregate computes the review summary over a product's reviews.
// Administrators count every review; everyone else counts only active
// ones. The average is rounded to two decimals and zero when no review
// is counted.
func Aggregate(reviews []*Review, includeInactive bool) catalog.ReviewAggregate {
	count, sum := 0, 0
	for _, r := range reviews {
		if !r.IsActive && !includeInactive {
			continue
		}
		count++
		sum += r.Rating
	}
	if count == 0 {
		return catalog.ReviewAggregate{}
	}
	average := math.Round(float64(sum)/float64(count)*100) / 100
	return catalog.ReviewAggregate{Count: count, Average: average, Sum: sum}
}
