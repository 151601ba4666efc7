package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
)

type fakeOrderRepo struct {
	findAllFn        func(context.Context, domain.Pagination) ([]*domain.Order, error)
	findByOrderRefFn func(context.Context, string) (*domain.Order, error)
	findByIDFn       func(context.Context, primitive.ObjectID) (*domain.Order, error)
	countFn          func(context.Context) (int64, error)
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Order, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, pagination)
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByOrderRef(ctx context.Context, orderRef string) (*domain.Order, error) {
	if f.findByOrderRefFn != nil {
		return f.findByOrderRefFn(ctx, orderRef)
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakeOrderRepo) Count(ctx context.Context) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return 0, nil
}

type fakeLogisticRepo struct {
	saveFn           func(context.Context, *domain.Logistic) error
	findAllFn        func(context.Context) ([]*domain.LogisticWithOrder, error)
	findByOrderRefFn func(context.Context, string) ([]*domain.LogisticWithOrder, error)
	findByIDFn       func(context.Context, primitive.ObjectID) (*domain.Logistic, error)
	updateFieldsFn   func(context.Context, primitive.ObjectID, domain.LogisticUpdate) (*domain.Logistic, error)
	deleteByIDFn     func(context.Context, primitive.ObjectID) (*domain.Logistic, error)
}

func (f *fakeLogisticRepo) Save(ctx context.Context, logistic *domain.Logistic) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, logistic)
	}
	return nil
}

func (f *fakeLogisticRepo) FindAll(ctx context.Context) ([]*domain.LogisticWithOrder, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLogisticRepo) FindByOrderRef(ctx context.Context, orderRef string) ([]*domain.LogisticWithOrder, error) {
	if f.findByOrderRefFn != nil {
		return f.findByOrderRefFn(ctx, orderRef)
	}
	return nil, nil
}

func (f *fakeLogisticRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Logistic, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, domain.ErrLogisticNotFound
}

func (f *fakeLogisticRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.LogisticUpdate) (*domain.Logistic, error) {
	if f.updateFieldsFn != nil {
		return f.updateFieldsFn(ctx, id, update)
	}
	return nil, domain.ErrLogisticNotFound
}

func (f *fakeLogisticRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Logistic, error) {
	if f.deleteByIDFn != nil {
		return f.deleteByIDFn(ctx, id)
	}
	return nil, domain.ErrLogisticNotFound
}

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("handlers-test")
	cfg.Output = io.Discard
	return logging.New(cfg)
}

func makeRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func makeRawRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func ordersWithRef(refs ...string) (*fakeOrderRepo, map[string]*domain.Order) {
	byRef := make(map[string]*domain.Order, len(refs))
	for _, ref := range refs {
		byRef[ref] = &domain.Order{
			ID:           primitive.NewObjectID(),
			OrderRef:     ref,
			CustomerName: "Acme Traders",
			Status:       domain.OrderStatusConfirmed,
		}
	}
	repo := &fakeOrderRepo{
		findByOrderRefFn: func(_ context.Context, ref string) (*domain.Order, error) {
			if o, ok := byRef[ref]; ok {
				return o, nil
			}
			return nil, domain.ErrOrderNotFound
		},
	}
	return repo, byRef
}

func newLogisticsHandler(logisticRepo domain.LogisticRepository, orderRepo domain.OrderRepository) *LogisticsHandler {
	service := application.NewLogisticsService(logisticRepo, orderRepo, testLogger())
	return NewLogisticsHandler(service, testLogger(), nil)
}

func logisticsRouter(handler *LogisticsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	router := gin.New()
	router.POST("/api/v1/logistics", handler.IngestBatch)
	router.GET("/api/v1/logistics", handler.ListEntries)
	router.GET("/api/v1/logistics/:orderId", handler.GetEntriesByOrderRef)
	router.PUT("/api/v1/logistics/:id", handler.UpdateEntry)
	router.DELETE("/api/v1/logistics/:id", handler.DeleteEntry)
	return router
}

func TestLogisticsHandlerIngestBatch(t *testing.T) {
	orderRepo, _ := ordersWithRef("ORD-2024-0001")

	var saved []*domain.Logistic
	logisticRepo := &fakeLogisticRepo{
		saveFn: func(_ context.Context, l *domain.Logistic) error {
			saved = append(saved, l)
			return nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, orderRepo))

	rec := makeRequest(router, http.MethodPost, "/api/v1/logistics", []map[string]interface{}{
		{
			"orderId":                "ORD-2024-0001",
			"docketNumber":           "BD-9087234",
			"materialDispatchedDate": "2024-03-15",
			"paymentType":            "prepaid",
		},
		{
			"orderId":                "ORD-2024-0001",
			"docketNumber":           "BD-9087235",
			"materialDispatchedDate": "2024-03-16",
		},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, saved, 2)

	var resp struct {
		Data []application.LogisticDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "BD-9087234", resp.Data[0].DocketNumber)
	assert.Equal(t, "BD-9087235", resp.Data[1].DocketNumber)
}

func TestLogisticsHandlerIngestBatchNonArrayBody(t *testing.T) {
	var saved int
	logisticRepo := &fakeLogisticRepo{
		saveFn: func(_ context.Context, _ *domain.Logistic) error {
			saved++
			return nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, &fakeOrderRepo{}))

	// an object body is rejected before anything is written
	rec := makeRawRequest(router, http.MethodPost, "/api/v1/logistics",
		`{"orderId":"ORD-2024-0001","docketNumber":"BD-1","materialDispatchedDate":"2024-03-15"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, saved)

	rec = makeRawRequest(router, http.MethodPost, "/api/v1/logistics", `"just a string"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, saved)
}

func TestLogisticsHandlerIngestBatchUnknownOrder(t *testing.T) {
	orderRepo, _ := ordersWithRef("ORD-2024-0001")

	var saved []*domain.Logistic
	logisticRepo := &fakeLogisticRepo{
		saveFn: func(_ context.Context, l *domain.Logistic) error {
			saved = append(saved, l)
			return nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, orderRepo))

	rec := makeRequest(router, http.MethodPost, "/api/v1/logistics", []map[string]interface{}{
		{"orderId": "ORD-2024-0001", "docketNumber": "BD-1", "materialDispatchedDate": "2024-03-15"},
		{"orderId": "ORD-MISSING", "docketNumber": "BD-2", "materialDispatchedDate": "2024-03-15"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order with ID ORD-MISSING not found")
	// the first record was persisted before the failure
	assert.Len(t, saved, 1)
}

func TestLogisticsHandlerIngestBatchStoreFailure(t *testing.T) {
	orderRepo, _ := ordersWithRef("ORD-2024-0001")
	logisticRepo := &fakeLogisticRepo{
		saveFn: func(_ context.Context, _ *domain.Logistic) error {
			return assert.AnError
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, orderRepo))

	rec := makeRequest(router, http.MethodPost, "/api/v1/logistics", []map[string]interface{}{
		{"orderId": "ORD-2024-0001", "docketNumber": "BD-1", "materialDispatchedDate": "2024-03-15"},
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogisticsHandlerListEntries(t *testing.T) {
	logisticRepo := &fakeLogisticRepo{
		findAllFn: func(_ context.Context) ([]*domain.LogisticWithOrder, error) {
			return []*domain.LogisticWithOrder{
				{Logistic: domain.Logistic{ID: primitive.NewObjectID(), DocketNumber: "BD-1"}},
			}, nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodGet, "/api/v1/logistics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BD-1")
}

func TestLogisticsHandlerGetByOrderRefEmptyIs404(t *testing.T) {
	logisticRepo := &fakeLogisticRepo{
		findByOrderRefFn: func(_ context.Context, _ string) ([]*domain.LogisticWithOrder, error) {
			return nil, nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodGet, "/api/v1/logistics/ORD-2024-0001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logistics entries not found")
}

func TestLogisticsHandlerGetByOrderRef(t *testing.T) {
	order := &domain.Order{ID: primitive.NewObjectID(), OrderRef: "ORD-2024-0001"}
	logisticRepo := &fakeLogisticRepo{
		findByOrderRefFn: func(_ context.Context, ref string) ([]*domain.LogisticWithOrder, error) {
			assert.Equal(t, order.ID.Hex(), ref)
			return []*domain.LogisticWithOrder{
				{Logistic: domain.Logistic{ID: primitive.NewObjectID(), OrderID: order.ID, DocketNumber: "BD-1"}, Order: order},
			}, nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodGet, "/api/v1/logistics/"+order.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORD-2024-0001")
}

func TestLogisticsHandlerUpdateEntry(t *testing.T) {
	target := primitive.NewObjectID()
	logisticRepo := &fakeLogisticRepo{
		updateFieldsFn: func(_ context.Context, id primitive.ObjectID, update domain.LogisticUpdate) (*domain.Logistic, error) {
			if id != target {
				return nil, domain.ErrLogisticNotFound
			}
			return &domain.Logistic{ID: id, DocketNumber: *update.DocketNumber}, nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodPut, "/api/v1/logistics/"+target.Hex(), map[string]interface{}{
		"docketNumber": "BD-UPDATED",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BD-UPDATED")

	rec = makeRequest(router, http.MethodPut, "/api/v1/logistics/"+primitive.NewObjectID().Hex(), map[string]interface{}{
		"docketNumber": "BD-UPDATED",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogisticsHandlerDeleteEntry(t *testing.T) {
	target := primitive.NewObjectID()
	logisticRepo := &fakeLogisticRepo{
		deleteByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Logistic, error) {
			if id != target {
				return nil, domain.ErrLogisticNotFound
			}
			return &domain.Logistic{ID: id, DocketNumber: "BD-9087234"}, nil
		},
	}

	router := logisticsRouter(newLogisticsHandler(logisticRepo, &fakeOrderRepo{}))

	rec := makeRequest(router, http.MethodDelete, "/api/v1/logistics/"+target.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp application.DeletedLogisticResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Logistics entry deleted successfully", resp.Message)
	assert.Equal(t, "BD-9087234", resp.Deleted.DocketNumber)

	rec = makeRequest(router, http.MethodDelete, "/api/v1/logistics/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
