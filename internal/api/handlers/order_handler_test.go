package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/internal/domain"
)

func newOrderHandler(orderRepo domain.OrderRepository) *OrderHandler {
	service := application.NewOrderService(orderRepo, testLogger())
	return NewOrderHandler(service, testLogger())
}

func orderRouter(handler *OrderHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/orders", handler.ListOrders)
	router.GET("/api/v1/orders/:orderId", handler.GetOrder)
	return router
}

func TestOrderHandlerList(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findAllFn: func(_ context.Context, pagination domain.Pagination) ([]*domain.Order, error) {
			assert.Equal(t, int64(2), pagination.Page)
			return []*domain.Order{
				{ID: primitive.NewObjectID(), OrderRef: "ORD-2024-0001"},
			}, nil
		},
		countFn: func(_ context.Context) (int64, error) {
			return 21, nil
		},
	}

	router := orderRouter(newOrderHandler(orderRepo))

	rec := makeRequest(router, http.MethodGet, "/api/v1/orders?page=2&pageSize=10", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp application.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(21), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "ORD-2024-0001", resp.Data[0].OrderRef)
}

func TestOrderHandlerListError(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findAllFn: func(_ context.Context, _ domain.Pagination) ([]*domain.Order, error) {
			return nil, assert.AnError
		},
	}

	router := orderRouter(newOrderHandler(orderRepo))

	rec := makeRequest(router, http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOrderHandlerGet(t *testing.T) {
	orderRepo, _ := ordersWithRef("ORD-2024-0001")
	router := orderRouter(newOrderHandler(orderRepo))

	rec := makeRequest(router, http.MethodGet, "/api/v1/orders/ORD-2024-0001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Traders")

	rec = makeRequest(router, http.MethodGet, "/api/v1/orders/ORD-MISSING", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
