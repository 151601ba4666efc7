package application

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
)

// ProductService handles catalog product use cases
type ProductService struct {
	productRepo domain.ProductRepository
	logger      *logging.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo domain.ProductRepository, logger *logging.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	product, err := domain.NewProduct(req.Name, req.SKU, req.Description, req.Price, req.Quantity, req.Category)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.WithError(err).Error("Failed to save product", "sku", req.SKU)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Product created", "sku", product.SKU, "name", product.Name)
	return ToProductDTO(product), nil
}

// ListProducts retrieves all products
func (s *ProductService) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = *ToProductDTO(p)
	}
	return dtos, nil
}

// GetProduct retrieves a product by internal id
func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, domain.ErrProductNotFound) {
			return nil, errors.ErrNotFoundWithID("product", id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return ToProductDTO(product), nil
}

// UpdateProduct applies a partial update to a product by internal id
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid product id")
	}

	if req.Price != nil && *req.Price < 0 {
		return nil, errors.ErrValidation(domain.ErrInvalidAmount.Error())
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, errors.ErrValidation("quantity must not be negative")
	}

	update := domain.ProductUpdate{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
	}

	if update.IsEmpty() {
		product, err := s.productRepo.FindByID(ctx, oid)
		if err != nil {
			if stderrors.Is(err, domain.ErrProductNotFound) {
				return nil, errors.ErrNotFoundWithID("product", id)
			}
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		return ToProductDTO(product), nil
	}

	product, err := s.productRepo.UpdateFields(ctx, oid, update)
	if err != nil {
		if stderrors.Is(err, domain.ErrProductNotFound) {
			return nil, errors.ErrNotFoundWithID("product", id)
		}
		s.logger.WithError(err).Error("Failed to update product", "id", id)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Product updated", "id", id)
	return ToProductDTO(product), nil
}

// DeleteProduct removes a product by internal id and returns the deleted
// document in the confirmation payload
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*DeletedProductResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid product id")
	}

	product, err := s.productRepo.DeleteByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, domain.ErrProductNotFound) {
			return nil, errors.ErrNotFoundWithID("product", id)
		}
		s.logger.WithError(err).Error("Failed to delete product", "id", id)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Product deleted", "id", id, "sku", product.SKU)
	return &DeletedProductResponse{
		Message: "Product deleted successfully",
		Deleted: *ToProductDTO(product),
	}, nil
}
