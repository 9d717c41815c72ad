package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
	"github.com/arifhossain/multimart-backend/internal/modules/vendor"
)

// Service defines catalog business logic.
type Service interface {
	ListCategories(ctx context.Context, search string) ([]*Category, error)
	CreateCategory(ctx context.Context, caller policy.Caller, req CategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, slug string) (*Category, error)
	UpdateCategory(ctx context.Context, caller policy.Caller, slug string, req CategoryRequest) (*Category, error)
	// DeleteCategory refuses to remove a category that still has products.
	DeleteCategory(ctx context.Context, caller policy.Caller, slug string) error

	// ListProducts returns the products visible to the caller, with
	// pricing fields and caller-dependent review aggregates.
	ListProducts(ctx context.Context, caller policy.Caller, categorySlug, vendorID string) ([]*ProductView, error)
	CreateProduct(ctx context.Context, caller policy.Caller, req CreateProductRequest) (*ProductView, error)
	GetProduct(ctx context.Context, caller policy.Caller, slug string) (*ProductView, error)
	UpdateProduct(ctx context.Context, caller policy.Caller, slug string, req UpdateProductRequest) (*ProductView, error)
	DeleteProduct(ctx context.Context, caller policy.Caller, slug string) error
}

// VendorDirectory is the slice of the vendor repository the catalog
// needs: resolving a vendor to check its status and owning user.
type VendorDirectory interface {
	GetVendorByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error)
}

// ReviewStats computes the caller-dependent review aggregate for one
// product. Implemented by the review service.
type ReviewStats interface {
	ProductReviewStats(ctx context.Context, productID uuid.UUID, includeInactive bool) (ReviewAggregate, error)
}

type service struct {
	repo       Repository
	categories CategoryRepository
	vendors    VendorDirectory
	reviews    ReviewStats
}

// NewService creates a new catalog service.
func NewService(repo Repository, categories CategoryRepository, vendors VendorDirectory, reviews ReviewStats) Service {
	return &service{repo: repo, categories: categories, vendors: vendors, reviews: reviews}
}

// ── Categories ────────────────────────────────────────────────────────────

func (s *service) ListCategories(ctx context.Context, search string) ([]*Category, error) {
	return s.categories.ListCategories(ctx, search)
}

func (s *service) CreateCategory(ctx context.Context, caller policy.Caller, req CategoryRequest) (*Category, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	slug := slugify(req.Name)
	if _, err := s.categories.GetCategoryBySlug(ctx, slug); err == nil {
		return nil, apperr.Validation("name", "a category with this name already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	c := &Category{ID: uuid.New(), Name: req.Name, Slug: slug}
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to persist category: %w", err)
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, slug string) (*Category, error) {
	return s.categories.GetCategoryBySlug(ctx, slug)
}

func (s *service) UpdateCategory(ctx context.Context, caller policy.Caller, slug string, req CategoryRequest) (*Category, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	c, err := s.categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	c.Name = req.Name
	if err := s.categories.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, caller policy.Caller, slug string) error {
	if err := policy.RequireAdmin(caller); err != nil {
		return err
	}
	c, err := s.categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return err
	}
	count, err := s.repo.CountByCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.StateConflict("category %q still has %d products", c.Name, count)
	}
	return s.categories.DeleteCategory(ctx, c.ID)
}

// ── Products ──────────────────────────────────────────────────────────────

func (s *service) ListProducts(ctx context.Context, caller policy.Caller, categorySlug, vendorID string) ([]*ProductView, error) {
	filter := ProductFilter{}
	if categorySlug != "" {
		c, err := s.categories.GetCategoryBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &c.ID
	}
	if vendorID != "" {
		vid, err := uuid.Parse(vendorID)
		if err != nil {
			return nil, apperr.ErrNotFound
		}
		filter.VendorID = &vid
	}

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		if policy.CanRead(caller, policy.KindProduct, string(p.Status), p.VendorUserID) != nil {
			continue
		}
		view, err := s.view(ctx, caller, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) CreateProduct(ctx context.Context, caller policy.Caller, req CreateProductRequest) (*ProductView, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	vid, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, apperr.Validation("vendor_id", "invalid vendor id")
	}
	v, err := s.vendors.GetVendorByID(ctx, vid)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWrite(caller, v.UserID); err != nil {
		return nil, err
	}
	// Re-checked on every creation, never cached: a suspended vendor
	// cannot list new products.
	if v.Status != vendor.StatusActive {
		return nil, apperr.Validation("vendor", "product can only be created for active vendors")
	}

	cid, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperr.Validation("category_id", "invalid category id")
	}
	c, err := s.categories.GetCategoryByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	status := StatusDraft
	if req.Status != "" {
		status = ProductStatus(req.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", fmt.Sprintf("unknown status %q", req.Status))
		}
	}
	if err := validateProduct(req.Name, req.Price, req.DiscountPrice, req.Stock); err != nil {
		return nil, err
	}

	slug := slugify(req.Name)
	if exists, err := s.repo.SlugExists(ctx, slug); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.Validation("name", "a product with this name already exists")
	}

	p := &Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		Status:        status,
		CategoryID:    c.ID,
		VendorID:      v.ID,
		CategoryName:  c.Name,
		CategorySlug:  c.Slug,
		VendorName:    v.Name,
		VendorUserID:  v.UserID,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	return s.view(ctx, caller, p)
}

func (s *service) GetProduct(ctx context.Context, caller policy.Caller, slug string) (*ProductView, error) {
	p, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRead(caller, policy.KindProduct, string(p.Status), p.VendorUserID); err != nil {
		return nil, err
	}
	return s.view(ctx, caller, p)
}

func (s *service) UpdateProduct(ctx context.Context, caller policy.Caller, slug string, req UpdateProductRequest) (*ProductView, error) {
	p, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWrite(caller, p.VendorUserID); err != nil {
		return nil, err
	}
	if err := validateProduct(req.Name, req.Price, req.DiscountPrice, req.Stock); err != nil {
		return nil, err
	}
	status := ProductStatus(req.Status)
	if !status.Valid() {
		return nil, apperr.Validation("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, apperr.Validation("category_id", "invalid category id")
		}
		c, err := s.categories.GetCategoryByID(ctx, cid)
		if err != nil {
			return nil, err
		}
		p.CategoryID = c.ID
		p.CategoryName = c.Name
		p.CategorySlug = c.Slug
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.DiscountPrice = req.DiscountPrice
	p.Stock = req.Stock
	p.Status = status
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.view(ctx, caller, p)
}

func (s *service) DeleteProduct(ctx context.Context, caller policy.Caller, slug string) error {
	p, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := policy.CanWrite(caller, p.VendorUserID); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, p.ID)
}

func (s *service) view(ctx context.Context, caller policy.Caller, p *Product) (*ProductView, error) {
	stats, err := s.reviews.ProductReviewStats(ctx, p.ID, caller.IsAdmin())
	if err != nil {
		return nil, err
	}
	return NewProductView(p, stats), nil
}

func validateProduct(name string, price decimal.Decimal, discount *decimal.Decimal, stock int) error {
	if name == "" {
		return apperr.Validation("name", "name is required")
	}
	if price.LessThan(MinimumPrice) {
		return apperr.Validation("price", "price must be at least 10.00")
	}
	if discount != nil {
		if discount.LessThan(MinimumPrice) {
			return apperr.Validation("discount_price", "discount price must be at least 10.00")
		}
		if discount.GreaterThanOrEqual(price) {
			return apperr.Validation("discount_price", "discount price cannot be greater than or equal to the original price")
		}
	}
	if stock < 0 || stock > 1000 {
		return apperr.Validation("stock", "stock must be between 0 and 1000")
	}
	return nil
}
