package application

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
)

// OrderService exposes read access to orders. Orders are owned by an
// upstream service; nothing here mutates them.
type OrderService struct {
	orderRepo domain.OrderRepository
	logger    *logging.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo domain.OrderRepository, logger *logging.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// ListOrders retrieves orders with pagination
func (s *OrderService) ListOrders(ctx context.Context, query ListOrdersQuery) (*OrderListResponse, error) {
	pagination := domain.Pagination{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if pagination.Page < 1 || pagination.PageSize < 1 {
		pagination = domain.DefaultPagination()
	}

	orders, err := s.orderRepo.FindAll(ctx, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = *ToOrderDTO(o)
	}

	return &OrderListResponse{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Total:    total,
	}, nil
}

// GetOrderByRef resolves an order business key
func (s *OrderService) GetOrderByRef(ctx context.Context, orderRef string) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByOrderRef(ctx, orderRef)
	if err != nil {
		if stderrors.Is(err, domain.ErrOrderNotFound) {
			return nil, errors.ErrNotFoundWithID("order", orderRef)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return ToOrderDTO(order), nil
}
