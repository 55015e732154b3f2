package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
)

// CatalogService implements category and product management.
type CatalogService struct {
	categories CategoryStore
	products   ProductStore
}

func NewCatalogService(categories CategoryStore, products ProductStore) *CatalogService {
	return &CatalogService{categories: categories, products: products}
}

// CreateCategory creates a category. Check order is part of the contract:
// duplicate before length bounds (presence is the controller's job).
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if _, err := s.categories.FindByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if len(name) < models.CategoryNameMin {
		return nil, ErrCategoryTooShort
	}
	if len(name) > models.CategoryNameMax {
		return nil, ErrCategoryTooLong
	}

	category := &models.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

// CreateProductParams is the validated create-product input.
type CreateProductParams struct {
	Name        string
	Price       float64
	Category    primitive.ObjectID
	Description string
	Stock       int64
}

// CreateProduct creates a product after resolving its category.
func (s *CatalogService) CreateProduct(ctx context.Context, params CreateProductParams) (*models.Product, error) {
	category, err := s.categories.FindByID(ctx, params.Category)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &models.Product{
		Name:        params.Name,
		Price:       params.Price,
		Category:    category.ID,
		Description: params.Description,
		Stock:       params.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

// GetProduct fetches one product with its category name populated.
func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	detail := &models.ProductDetail{Product: *product}
	if category, err := s.categories.FindByID(ctx, product.Category); err == nil {
		detail.CategoryInfo = models.CategoryRef{ID: category.ID, Name: category.Name}
	}
	return detail, nil
}

// ModifyProduct applies a partial patch. When the patch moves the product
// to another category, that category must exist.
func (s *CatalogService) ModifyProduct(ctx context.Context, id primitive.ObjectID, patch repositories.ProductPatch) (*models.Product, error) {
	if patch.Category != nil {
		if _, err := s.categories.FindByID(ctx, *patch.Category); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	if err := s.products.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return s.findProduct(ctx, id)
}

// RestockProduct adds quantity units to the product's stock.
func (s *CatalogService) RestockProduct(ctx context.Context, id primitive.ObjectID, quantity int64) (*models.Product, error) {
	if err := s.products.IncrementStock(ctx, id, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.findProduct(ctx, id)
}

// DeleteProduct removes a product permanently.
func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *CatalogService) findProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
