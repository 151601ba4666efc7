package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	sharedErrors "github.com/commerce-platform/backoffice-service/pkg/errors"
)

type fakeInvoiceRepo struct {
	saveFn           func(context.Context, *domain.Invoice) error
	findAllFn        func(context.Context) ([]*domain.InvoiceWithOrder, error)
	findByOrderRefFn func(context.Context, string) ([]*domain.InvoiceWithOrder, error)
	findByIDFn       func(context.Context, primitive.ObjectID) (*domain.Invoice, error)
	updateFieldsFn   func(context.Context, primitive.ObjectID, domain.InvoiceUpdate) (*domain.Invoice, error)
	deleteByIDFn     func(context.Context, primitive.ObjectID) (*domain.Invoice, error)
}

func (f *fakeInvoiceRepo) Save(ctx context.Context, invoice *domain.Invoice) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, invoice)
	}
	return nil
}

func (f *fakeInvoiceRepo) FindAll(ctx context.Context) ([]*domain.InvoiceWithOrder, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) FindByOrderRef(ctx context.Context, orderRef string) ([]*domain.InvoiceWithOrder, error) {
	if f.findByOrderRefFn != nil {
		return f.findByOrderRefFn(ctx, orderRef)
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, domain.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.InvoiceUpdate) (*domain.Invoice, error) {
	if f.updateFieldsFn != nil {
		return f.updateFieldsFn(ctx, id, update)
	}
	return nil, domain.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	if f.deleteByIDFn != nil {
		return f.deleteByIDFn(ctx, id)
	}
	return nil, domain.ErrInvoiceNotFound
}

func TestCreateInvoiceSuccess(t *testing.T) {
	order := sampleOrder("ORD-2024-0001")

	var saved *domain.Invoice
	invoiceRepo := &fakeInvoiceRepo{
		saveFn: func(_ context.Context, inv *domain.Invoice) error {
			saved = inv
			return nil
		},
	}

	service := NewInvoiceService(invoiceRepo, knownOrders(order), testLogger())

	dto, err := service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderRef:      "ORD-2024-0001",
		InvoiceNumber: "INV-2024-042",
		Amount:        1499.50,
		Status:        "issued",
		IssuedDate:    "2024-04-01",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, order.ID, saved.OrderID)
	assert.Equal(t, order.ID.Hex(), dto.OrderID)
	assert.Equal(t, "INV-2024-042", dto.InvoiceNumber)
	assert.Equal(t, "issued", dto.Status)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), dto.IssuedDate)
}

func TestCreateInvoiceUnknownOrder(t *testing.T) {
	service := NewInvoiceService(&fakeInvoiceRepo{}, &fakeOrderRepo{}, testLogger())

	_, err := service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderRef:      "ORD-9999-MISSING",
		InvoiceNumber: "INV-2024-042",
		Amount:        10,
	})

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeBadRequest, appErr.Code)
	assert.Equal(t, "Order with ID ORD-9999-MISSING not found", appErr.Message)
}

func TestCreateInvoiceInvalidStatus(t *testing.T) {
	order := sampleOrder("ORD-2024-0001")
	service := NewInvoiceService(&fakeInvoiceRepo{}, knownOrders(order), testLogger())

	_, err := service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		OrderRef:      "ORD-2024-0001",
		InvoiceNumber: "INV-2024-042",
		Amount:        10,
		Status:        "pending",
	})

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeValidationError, appErr.Code)
}

func TestGetInvoicesByOrderRefEmptyIsNotFound(t *testing.T) {
	service := NewInvoiceService(&fakeInvoiceRepo{}, &fakeOrderRepo{}, testLogger())

	_, err := service.GetInvoicesByOrderRef(context.Background(), "ORD-2024-0001")

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeNotFound, appErr.Code)
	assert.Equal(t, "Invoices not found", appErr.Message)
}

func TestListInvoicesExpandsOrder(t *testing.T) {
	order := sampleOrder("ORD-2024-0001")
	invoice, err := domain.NewInvoice(order, "INV-2024-042", 100, domain.InvoiceStatusIssued, time.Now().UTC())
	require.NoError(t, err)

	invoiceRepo := &fakeInvoiceRepo{
		findAllFn: func(_ context.Context) ([]*domain.InvoiceWithOrder, error) {
			return []*domain.InvoiceWithOrder{{Invoice: *invoice, Order: order}}, nil
		},
	}

	service := NewInvoiceService(invoiceRepo, &fakeOrderRepo{}, testLogger())

	dtos, err := service.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	require.NotNil(t, dtos[0].Order)
	assert.Equal(t, "ORD-2024-0001", dtos[0].Order.OrderRef)
}

func TestUpdateInvoiceNotFound(t *testing.T) {
	service := NewInvoiceService(&fakeInvoiceRepo{}, &fakeOrderRepo{}, testLogger())

	amount := 25.0
	_, err := service.UpdateInvoice(context.Background(), primitive.NewObjectID().Hex(), UpdateInvoiceRequest{
		Amount: &amount,
	})

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeNotFound, appErr.Code)
}

func TestUpdateInvoiceNegativeAmount(t *testing.T) {
	service := NewInvoiceService(&fakeInvoiceRepo{}, &fakeOrderRepo{}, testLogger())

	amount := -5.0
	_, err := service.UpdateInvoice(context.Background(), primitive.NewObjectID().Hex(), UpdateInvoiceRequest{
		Amount: &amount,
	})

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeValidationError, appErr.Code)
}

func TestDeleteInvoiceReturnsDeletedRecord(t *testing.T) {
	target := primitive.NewObjectID()
	deleted := &domain.Invoice{ID: target, InvoiceNumber: "INV-2024-042", Amount: 100}

	invoiceRepo := &fakeInvoiceRepo{
		deleteByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
			assert.Equal(t, target, id)
			return deleted, nil
		},
	}

	service := NewInvoiceService(invoiceRepo, &fakeOrderRepo{}, testLogger())

	resp, err := service.DeleteInvoice(context.Background(), target.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Invoice deleted successfully", resp.Message)
	assert.Equal(t, "INV-2024-042", resp.Deleted.InvoiceNumber)
}
