package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/pkg/api"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
)

// OrderHandler exposes the read-only order endpoints
type OrderHandler struct {
	service *application.OrderService
	logger  *logging.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *application.OrderService, logger *logging.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	pageReq := api.ParsePagination(c)

	result, err := h.service.ListOrders(c.Request.Context(), application.ListOrdersQuery{
		Page:     pageReq.Page,
		PageSize: pageReq.PageSize,
	})
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrder handles GET /api/v1/orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	orderRef := c.Param("orderId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"order.ref": orderRef,
	})

	result, err := h.service.GetOrderByRef(c.Request.Context(), orderRef)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
