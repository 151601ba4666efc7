package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	sharedErrors "github.com/commerce-platform/backoffice-service/pkg/errors"
)

type fakeProductRepo struct {
	saveFn         func(context.Context, *domain.Product) error
	findAllFn      func(context.Context) ([]*domain.Product, error)
	findByIDFn     func(context.Context, primitive.ObjectID) (*domain.Product, error)
	updateFieldsFn func(context.Context, primitive.ObjectID, domain.ProductUpdate) (*domain.Product, error)
	deleteByIDFn   func(context.Context, primitive.ObjectID) (*domain.Product, error)
}

func (f *fakeProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]*domain.Product, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
	if f.updateFieldsFn != nil {
		return f.updateFieldsFn(ctx, id, update)
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if f.deleteByIDFn != nil {
		return f.deleteByIDFn(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func TestCreateProductSuccess(t *testing.T) {
	var saved *domain.Product
	productRepo := &fakeProductRepo{
		saveFn: func(_ context.Context, p *domain.Product) error {
			saved = p
			return nil
		},
	}

	service := NewProductService(productRepo, testLogger())

	dto, err := service.CreateProduct(context.Background(), CreateProductRequest{
		Name:        "Steel Bracket",
		SKU:         "BRK-STEEL-01",
		Description: "Galvanized bracket",
		Price:       12.50,
		Quantity:    400,
		Category:    "hardware",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, saved.ID.Hex(), dto.ID)
	assert.Equal(t, "BRK-STEEL-01", dto.SKU)
	assert.Equal(t, 400, dto.Quantity)
}

func TestCreateProductNegativePrice(t *testing.T) {
	service := NewProductService(&fakeProductRepo{}, testLogger())

	_, err := service.CreateProduct(context.Background(), CreateProductRequest{
		Name:  "Bad",
		SKU:   "BAD-01",
		Price: -1,
	})

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeValidationError, appErr.Code)
}

func TestGetProductNotFound(t *testing.T) {
	service := NewProductService(&fakeProductRepo{}, testLogger())

	_, err := service.GetProduct(context.Background(), primitive.NewObjectID().Hex())

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeNotFound, appErr.Code)
}

func TestGetProductInvalidID(t *testing.T) {
	service := NewProductService(&fakeProductRepo{}, testLogger())

	_, err := service.GetProduct(context.Background(), "zzz")

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeValidationError, appErr.Code)
}

func TestUpdateProductAppliesFields(t *testing.T) {
	target := primitive.NewObjectID()

	var applied domain.ProductUpdate
	productRepo := &fakeProductRepo{
		updateFieldsFn: func(_ context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
			assert.Equal(t, target, id)
			applied = update
			return &domain.Product{ID: id, Name: *update.Name, Quantity: *update.Quantity}, nil
		},
	}

	service := NewProductService(productRepo, testLogger())

	name := "Steel Bracket v2"
	qty := 350
	dto, err := service.UpdateProduct(context.Background(), target.Hex(), UpdateProductRequest{
		Name:     &name,
		Quantity: &qty,
	})
	require.NoError(t, err)

	require.NotNil(t, applied.Name)
	assert.Equal(t, "Steel Bracket v2", dto.Name)
	assert.Equal(t, 350, dto.Quantity)
	assert.Nil(t, applied.Price)
}

func TestUpdateProductNegativeQuantity(t *testing.T) {
	service := NewProductService(&fakeProductRepo{}, testLogger())

	qty := -1
	_, err := service.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), UpdateProductRequest{
		Quantity: &qty,
	})

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeValidationError, appErr.Code)
}

func TestDeleteProductReturnsDeletedRecord(t *testing.T) {
	target := primitive.NewObjectID()
	deleted := &domain.Product{ID: target, SKU: "BRK-STEEL-01"}

	productRepo := &fakeProductRepo{
		deleteByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
			return deleted, nil
		},
	}

	service := NewProductService(productRepo, testLogger())

	resp, err := service.DeleteProduct(context.Background(), target.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Product deleted successfully", resp.Message)
	assert.Equal(t, "BRK-STEEL-01", resp.Deleted.SKU)
}

func TestDeleteProductNotFound(t *testing.T) {
	service := NewProductService(&fakeProductRepo{}, testLogger())

	_, err := service.DeleteProduct(context.Background(), primitive.NewObjectID().Hex())

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeNotFound, appErr.Code)
}
