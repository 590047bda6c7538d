package product

import (
	"context"
	"errors"
	"product-api/pkg/model"
	"product-api/pkg/policy"
	productRepo "product-api/service-api/internal/repository/product"
	"time"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

// Service defines the product service interface.
// Every method takes the authenticated actor explicitly.
type Service interface {
	List(ctx context.Context, actor *model.User) ([]model.Product, error)
	Create(ctx context.Context, actor *model.User, req *model.ProductRequest) (*model.Product, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

// productService provides product-related services.
type productService struct {
	productRepo productRepo.Repository
	policies    *policy.Registry
	now         func() time.Time
}

// NewProductService creates a new product service instance.
func NewProductService(productRepo productRepo.Repository, policies *policy.Registry) Service {
	return &productService{
		productRepo: productRepo,
		policies:    policies,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns every product, newest first
func (s *productService) List(ctx context.Context, actor *model.User) ([]model.Product, error) {
	if err := s.authorize(actor, policy.ActionViewAny, nil); err != nil {
		return nil, err
	}
	return s.productRepo.GetAll(ctx)
}

// Create validates the request and stores a product owned by actor
func (s *productService) Create(ctx context.Context, actor *model.User, req *model.ProductRequest) (*model.Product, error) {
	if err := s.authorize(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}

	now := s.now()
	product := &model.Product{
		ID:        uuid.New(),
		UserID:    actor.ID,
		OwnerName: actor.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.Fields().Apply(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a single product
func (s *productService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, policy.ActionView, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the supplied fields. Lookup, authorization and validation run in that order.
func (s *productService) Update(ctx context.Context, actor *model.User, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, policy.ActionUpdate, product); err != nil {
		return nil, err
	}
	if err := req.ValidateUpdate(); err != nil {
		return nil, err
	}

	req.Fields().Apply(product)
	product.UpdatedAt = s.now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Delete removes a product owned by actor
func (s *productService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	product, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, policy.ActionDelete, product); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *productService) find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) authorize(actor *model.User, action policy.Action, product *model.Product) error {
	var resource any
	if product != nil {
		resource = product
	}
	return s.policies.Authorize(actor, action, policy.ResourceProduct, resource).Err()
}
