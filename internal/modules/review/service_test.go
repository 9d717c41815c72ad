package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

type memRepo struct {
	reviews map[uuid.UUID]*Review
}

func newMemRepo() *memRepo {
	return &memRepo{reviews: map[uuid.UUID]*Review{}}
}

func (m *memRepo) CreateReview(_ context.Context, r *Review) error {
	m.reviews[r.ID] = r
	return nil
}

func (m *memRepo) GetReviewByID(_ context.Context, id uuid.UUID) (*Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*Review, error) {
	out := make([]*Review, 0)
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID uuid.UUID, rating int) ([]*Review, error) {
	out := make([]*Review, 0)
	for _, r := range m.reviews {
		if r.UserID != userID {
			continue
		}
		if rating != 0 && r.Rating != rating {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) ExistsByProductAndUser(_ context.Context, productID, userID uuid.UUID) (bool, error) {
	for _, r := range m.reviews {
		if r.ProductID == productID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) UpdateReview(_ context.Context, r *Review) error {
	m.reviews[r.ID] = r
	return nil
}

func (m *memRepo) DeleteReview(_ context.Context, id uuid.UUID) error {
	delete(m.reviews, id)
	return nil
}

type memProducts map[uuid.UUID]*catalog.Product

func (m memProducts) GetProductByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (m memProducts) GetProductBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	for _, p := range m {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func customer() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Role: policy.RoleCustomer, Authenticated: true}
}

func adminCaller() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Role: policy.RoleAdministrator, Authenticated: true}
}

func activeProduct() *catalog.Product {
	return &catalog.Product{
		ID:     uuid.New(),
		Name:   "Desk Lamp",
		Slug:   "desk-lamp",
		Price:  decimal.NewFromFloat(25.00),
		Stock:  10,
		Status: catalog.StatusActive,
	}
}

func TestCreateReview(t *testing.T) {
	repo := newMemRepo()
	p := activeProduct()
	svc := NewService(repo, memProducts{p.ID: p})
	caller := customer()

	rv, err := svc.CreateReview(context.Background(), caller, CreateRequest{
		ProductID: p.ID.String(),
		Rating:    4,
		Comment:   "solid lamp",
	})
	require.NoError(t, err)
	assert.True(t, rv.IsActive, "new reviews start active")
	assert.Equal(t, caller.UserID, rv.UserID)
}

func TestCreateReviewValidation(t *testing.T) {
	p := activeProduct()
	svc := NewService(newMemRepo(), memProducts{p.ID: p})
	caller := customer()

	_, err := svc.CreateReview(context.Background(), caller, CreateRequest{ProductID: p.ID.String(), Rating: 0})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rating", vErr.Field)

	_, err = svc.CreateReview(context.Background(), caller, CreateRequest{ProductID: p.ID.String(), Rating: 6})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rating", vErr.Field)

	_, err = svc.CreateReview(context.Background(), caller, CreateRequest{
		ProductID: p.ID.String(),
		Rating:    3,
		Comment:   strings.Repeat("x", 1001),
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "comment", vErr.Field)
}

func TestCreateReviewOncePerProduct(t *testing.T) {
	p := activeProduct()
	svc := NewService(newMemRepo(), memProducts{p.ID: p})
	caller := customer()

	_, err := svc.CreateReview(context.Background(), caller, CreateRequest{ProductID: p.ID.String(), Rating: 5})
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), caller, CreateRequest{ProductID: p.ID.String(), Rating: 1})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "product", vErr.Field)

	// A different user may still review the same product.
	_, err = svc.CreateReview(context.Background(), customer(), CreateRequest{ProductID: p.ID.String(), Rating: 3})
	require.NoError(t, err)
}

func TestCreateReviewHiddenProduct(t *testing.T) {
	p := activeProduct()
	p.Status = catalog.StatusDraft
	p.VendorUserID = uuid.New()
	svc := NewService(newMemRepo(), memProducts{p.ID: p})

	_, err := svc.CreateReview(context.Background(), customer(), CreateRequest{ProductID: p.ID.String(), Rating: 5})
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied),
		"products the caller cannot see cannot be reviewed")
}

func TestInactiveReviewVisibility(t *testing.T) {
	repo := newMemRepo()
	p := activeProduct()
	svc := NewService(repo, memProducts{p.ID: p})
	author := customer()

	rv, err := svc.CreateReview(context.Background(), author, CreateRequest{ProductID: p.ID.String(), Rating: 2})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateReview(context.Background(), adminCaller(), rv.ID.String(), UpdateRequest{
		Rating:   rv.Rating,
		Comment:  rv.Comment,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	_, err = svc.GetReview(context.Background(), policy.Anonymous(), rv.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.GetReview(context.Background(), customer(), rv.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))

	got, err := svc.GetReview(context.Background(), author, rv.ID.String())
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestListProductReviewsFiltersInactive(t *testing.T) {
	repo := newMemRepo()
	p := activeProduct()
	svc := NewService(repo, memProducts{p.ID: p})

	visible := &Review{ID: uuid.New(), ProductID: p.ID, UserID: uuid.New(), Rating: 5, IsActive: true}
	hidden := &Review{ID: uuid.New(), ProductID: p.ID, UserID: uuid.New(), Rating: 1, IsActive: false}
	repo.reviews[visible.ID] = visible
	repo.reviews[hidden.ID] = hidden

	public, err := svc.ListProductReviews(context.Background(), policy.Anonymous(), p.Slug)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	all, err := svc.ListProductReviews(context.Background(), adminCaller(), p.Slug)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductReviewStatsDependOnCaller(t *testing.T) {
	repo := newMemRepo()
	p := activeProduct()
	svc := NewService(repo, memProducts{p.ID: p})

	active := &Review{ID: uuid.New(), ProductID: p.ID, UserID: uuid.New(), Rating: 5, IsActive: true}
	inactive := &Review{ID: uuid.New(), ProductID: p.ID, UserID: uuid.New(), Rating: 1, IsActive: false}
	repo.reviews[active.ID] = active
	repo.reviews[inactive.ID] = inactive

	public, err := svc.ProductReviewStats(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, catalog.ReviewAggregate{Count: 1, Average: 5, Sum: 5}, public)

	admin, err := svc.ProductReviewStats(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, catalog.ReviewAggregate{Count: 2, Average: 3, Sum: 6}, admin)
}

func TestListUserReviews(t *testing.T) {
	repo := newMemRepo()
	p := activeProduct()
	svc := NewService(repo, memProducts{p.ID: p})
	caller := customer()

	first := &Review{ID: uuid.New(), ProductID: p.ID, UserID: caller.UserID, Rating: 5, IsActive: true}
	second := &Review{ID: uuid.New(), ProductID: p.ID, UserID: caller.UserID, Rating: 3, IsActive: true}
	repo.reviews[first.ID] = first
	repo.reviews[second.ID] = second

	mine, err := svc.ListUserReviews(context.Background(), caller, "", 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	fives, err := svc.ListUserReviews(context.Background(), caller, "", 5)
	require.NoError(t, err)
	assert.Len(t, fives, 1)

	// Only administrators may read another user's reviews.
	_, err = svc.ListUserReviews(context.Background(), customer(), caller.UserID.String(), 0)
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))

	others, err := svc.ListUserReviews(context.Background(), adminCaller(), caller.UserID.String(), 0)
	require.NoError(t, err)
	assert.Len(t, others, 2)
}

func TestDeleteReviewAuthorOrAdmin(t *testing.T) {
	repo := newMemRepo()
	p := activeProduct()
	svc := NewService(repo, memProducts{p.ID: p})
	author := customer()

	rv, err := svc.CreateReview(context.Background(), author, CreateRequest{ProductID: p.ID.String(), Rating: 4})
	require.NoError(t, err)

	err = svc.DeleteReview(context.Background(), customer(), rv.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))

	err = svc.DeleteReview(context.Background(), author, rv.ID.String())
	require.NoError(t, err)
}
