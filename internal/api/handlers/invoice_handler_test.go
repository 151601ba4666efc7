package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
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

func newInvoiceHandler(invoiceRepo domain.InvoiceRepository, orderRepo domain.OrderRepository) *InvoiceHandler {
	service := application.NewInvoiceService(invoiceRepo, orderRepo, testLogger())
	return NewInvoiceHandler(service, testLogger(), nil)
}

func invoiceRouter(handler *InvoiceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	router := gin.New()
	router.POST("/api/v1/invoices", handler.CreateInvoice)
	router.GET("/api/v1/invoices", handler.ListInvoices)
	router.GET("/api/v1/invoices/:orderId", handler.GetInvoicesByOrderRef)
	router.PUT("/api/v1/invoices/:id", handler.UpdateInvoice)
	router.DELETE("/api/v1/invoices/:id", handler.DeleteInvoice)
	return router
}

func TestInvoiceHandlerCreate(t *testing.T) {
	orderRepo, orders := ordersWithRef("ORD-2024-0001")

	var saved *domain.Invoice
	invoiceRepo := &fakeInvoiceRepo{
		saveFn: func(_ context.Context, inv *domain.Invoice) error {
			saved = inv
			return nil
		},
	}

	router := invoiceRouter(newInvoiceHandler(invoiceRepo, orderRepo))

	rec := makeRequest(router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"orderId":       "ORD-2024-0001",
		"invoiceNumber": "INV-2024-042",
		"amount":        1499.50,
		"status":        "issued",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, saved)
	assert.Equal(t, orders["ORD-2024-0001"].ID, saved.OrderID)

	// unresolvable order reference is a bad request, not a 404
	rec = makeRequest(router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"orderId":       "ORD-MISSING",
		"invoiceNumber": "INV-2024-043",
		"amount":        10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order with ID ORD-MISSING not found")
}

func TestInvoiceHandlerCreateMissingFields(t *testing.T) {
	router := invoiceRouter(newInvoiceHandler(&fakeInvoiceRepo{}, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"amount": 10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvoiceHandlerList(t *testing.T) {
	order := &domain.Order{ID: primitive.NewObjectID(), OrderRef: "ORD-2024-0001"}
	invoiceRepo := &fakeInvoiceRepo{
		findAllFn: func(_ context.Context) ([]*domain.InvoiceWithOrder, error) {
			return []*domain.InvoiceWithOrder{
				{
					Invoice: domain.Invoice{ID: primitive.NewObjectID(), OrderID: order.ID, InvoiceNumber: "INV-2024-042"},
					Order:   order,
				},
			}, nil
		},
	}

	router := invoiceRouter(newInvoiceHandler(invoiceRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodGet, "/api/v1/invoices", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "INV-2024-042")
	assert.Contains(t, rec.Body.String(), "ORD-2024-0001")
}

func TestInvoiceHandlerGetByOrderRefEmptyIs404(t *testing.T) {
	router := invoiceRouter(newInvoiceHandler(&fakeInvoiceRepo{}, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodGet, "/api/v1/invoices/ORD-2024-0001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceHandlerUpdate(t *testing.T) {
	target := primitive.NewObjectID()
	invoiceRepo := &fakeInvoiceRepo{
		updateFieldsFn: func(_ context.Context, id primitive.ObjectID, update domain.InvoiceUpdate) (*domain.Invoice, error) {
			if id != target {
				return nil, domain.ErrInvoiceNotFound
			}
			return &domain.Invoice{ID: id, Status: *update.Status, IssuedDate: time.Now().UTC()}, nil
		},
	}

	router := invoiceRouter(newInvoiceHandler(invoiceRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodPut, "/api/v1/invoices/"+target.Hex(), map[string]interface{}{
		"status": "paid",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "paid")

	rec = makeRequest(router, http.MethodPut, "/api/v1/invoices/"+primitive.NewObjectID().Hex(), map[string]interface{}{
		"status": "paid",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceHandlerDelete(t *testing.T) {
	target := primitive.NewObjectID()
	invoiceRepo := &fakeInvoiceRepo{
		deleteByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
			if id != target {
				return nil, domain.ErrInvoiceNotFound
			}
			return &domain.Invoice{ID: id, InvoiceNumber: "INV-2024-042"}, nil
		},
	}

	router := invoiceRouter(newInvoiceHandler(invoiceRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodDelete, "/api/v1/invoices/"+target.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp application.DeletedInvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invoice deleted successfully", resp.Message)
	assert.Equal(t, "INV-2024-042", resp.Deleted.InvoiceNumber)

	rec = makeRequest(router, http.MethodDelete, "/api/v1/invoices/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
