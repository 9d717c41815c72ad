package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Service defines review business logic.
type Service interface {
	// CreateReview posts a review for a product the caller can see; one
	// review per (product, user).
	CreateReview(ctx context.Context, caller policy.Caller, req CreateRequest) (*Review, error)

	// GetReview retrieves one review; inactive reviews are visible only
	// to their author or an administrator.
	GetReview(ctx context.Context, caller policy.Caller, id string) (*Review, error)

	// ListProductReviews returns a product's reviews visible to the caller.
	ListProductReviews(ctx context.Context, caller policy.Caller, productSlug string) ([]*Review, error)

	// ListUserReviews returns the caller's reviews, or — administrators
	// only — another user's. Rating 0 means no rating filter.
	ListUserReviews(ctx context.Context, caller policy.Caller, userID string, rating int) ([]*Review, error)

	// UpdateReview edits a review; author or administrator only.
	UpdateReview(ctx context.Context, caller policy.Caller, id string, req UpdateRequest) (*Review, error)

	// DeleteReview removes a review; author or administrator only.
	DeleteReview(ctx context.Context, caller policy.Caller, id string) error

	// ProductReviewStats recomputes the caller-dependent aggregate for a
	// product. Never cached.
	ProductReviewStats(ctx context.Context, productID uuid.UUID, includeInactive bool) (catalog.ReviewAggregate, error)
}

// ProductFinder is the slice of the catalog repository reviews need.
type ProductFinder interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error)
}

type service struct {
	repo     Repository
	products ProductFinder
}

// NewService creates a new review service.
func NewService(repo Repository, products ProductFinder) Service {
	return &service{repo: repo, products: products}
}

func (s *service) CreateReview(ctx context.Context, caller policy.Caller, req CreateRequest) (*Review, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating", "rating must be between 1 and 5")
	}
	if len(req.Comment) > 1000 {
		return nil, apperr.Validation("comment", "comment must be at most 1000 characters")
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	p, err := s.products.GetProductByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRead(caller, policy.KindProduct, string(p.Status), p.VendorUserID); err != nil {
		return nil, err
	}
	if exists, err := s.repo.ExistsByProductAndUser(ctx, p.ID, caller.UserID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Validation("product", "you have already reviewed this product")
	}

	rv := &Review{
		ID:        uuid.New(),
		ProductID: p.ID,
		UserID:    caller.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		IsActive:  true,
	}
	if err := s.repo.CreateReview(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}
	return rv, nil
}

func (s *service) GetReview(ctx context.Context, caller policy.Caller, id string) (*Review, error) {
	rv, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRead(caller, policy.KindReview, rv.visibilityStatus(), rv.UserID); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ListProductReviews(ctx context.Context, caller policy.Caller, productSlug string) ([]*Review, error) {
	p, err := s.products.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRead(caller, policy.KindProduct, string(p.Status), p.VendorUserID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	visible := make([]*Review, 0, len(reviews))
	for _, rv := range reviews {
		if policy.CanRead(caller, policy.KindReview, rv.visibilityStatus(), rv.UserID) == nil {
			visible = append(visible, rv)
		}
	}
	return visible, nil
}

func (s *service) ListUserReviews(ctx context.Context, caller policy.Caller, userID string, rating int) ([]*Review, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	target := caller.UserID
	if userID != "" {
		if err := policy.RequireAdmin(caller); err != nil {
			return nil, err
		}
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return nil, apperr.ErrNotFound
		}
		target = parsed
	}
	return s.repo.ListByUser(ctx, target, rating)
}

func (s *service) UpdateReview(ctx context.Context, caller policy.Caller, id string, req UpdateRequest) (*Review, error) {
	rv, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWrite(caller, rv.UserID); err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating", "rating must be between 1 and 5")
	}
	if len(req.Comment) > 1000 {
		return nil, apperr.Validation("comment", "comment must be at most 1000 characters")
	}
	rv.Rating = req.Rating
	rv.Comment = req.Comment
	if req.IsActive != nil {
		rv.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateReview(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) DeleteReview(ctx context.Context, caller policy.Caller, id string) error {
	rv, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanWrite(caller, rv.UserID); err != nil {
		return err
	}
	return s.repo.DeleteReview(ctx, rv.ID)
}

func (s *service) ProductReviewStats(ctx context.Context, productID uuid.UUID, includeInactive bool) (catalog.ReviewAggregate, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return catalog.ReviewAggregate{}, err
	}
	return Aggregate(reviews, includeInactive), nil
}

func (s *service) get(ctx context.Context, id string) (*Review, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return s.repo.GetReviewByID(ctx, rid)
}
