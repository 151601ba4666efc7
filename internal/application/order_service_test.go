package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	sharedErrors "github.com/commerce-platform/backoffice-service/pkg/errors"
)

func TestListOrdersPaginates(t *testing.T) {
	orders := []*domain.Order{
		sampleOrder("ORD-2024-0001"),
		sampleOrder("ORD-2024-0002"),
	}

	orderRepo := &fakeOrderRepo{
		findAllFn: func(_ context.Context, pagination domain.Pagination) ([]*domain.Order, error) {
			assert.Equal(t, int64(2), pagination.Page)
			assert.Equal(t, int64(2), pagination.PageSize)
			return orders, nil
		},
		countFn: func(_ context.Context) (int64, error) {
			return 10, nil
		},
	}

	service := NewOrderService(orderRepo, testLogger())

	resp, err := service.ListOrders(context.Background(), ListOrdersQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Page)
	assert.Equal(t, int64(10), resp.Total)
	assert.Equal(t, "ORD-2024-0001", resp.Data[0].OrderRef)
}

func TestListOrdersDefaultsPagination(t *testing.T) {
	orderRepo := &fakeOrderRepo{
		findAllFn: func(_ context.Context, pagination domain.Pagination) ([]*domain.Order, error) {
			assert.Equal(t, domain.DefaultPagination(), pagination)
			return nil, nil
		},
	}

	service := NewOrderService(orderRepo, testLogger())

	resp, err := service.ListOrders(context.Background(), ListOrdersQuery{})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestGetOrderByRefSuccess(t *testing.T) {
	order := sampleOrder("ORD-2024-0001")
	service := NewOrderService(knownOrders(order), testLogger())

	dto, err := service.GetOrderByRef(context.Background(), "ORD-2024-0001")
	require.NoError(t, err)
	assert.Equal(t, order.ID.Hex(), dto.ID)
	assert.Equal(t, "Acme Traders", dto.CustomerName)
}

func TestGetOrderByRefNotFound(t *testing.T) {
	service := NewOrderService(&fakeOrderRepo{}, testLogger())

	_, err := service.GetOrderByRef(context.Background(), "ORD-9999-MISSING")

	var appErr *sharedErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, sharedErrors.CodeNotFound, appErr.Code)
}
