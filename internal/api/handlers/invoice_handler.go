package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	service *application.InvoiceService
	logger  *logging.Logger
	metrics *middleware.BusinessMetrics
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *application.InvoiceService, logger *logging.Logger, metrics *middleware.BusinessMetrics) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateInvoice handles POST /api/v1/invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req application.CreateInvoiceRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"order.ref":      req.OrderRef,
		"invoice.number": req.InvoiceNumber,
	})

	result, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordInvoiceCreated(result.Status)
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// ListInvoices handles GET /api/v1/invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetInvoicesByOrderRef handles GET /api/v1/invoices/:orderId
func (h *InvoiceHandler) GetInvoicesByOrderRef(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	orderRef := c.Param("orderId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"order.ref": orderRef,
	})

	result, err := h.service.GetInvoicesByOrderRef(c.Request.Context(), orderRef)
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

// UpdateInvoice handles PUT /api/v1/invoices/:id
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req application.UpdateInvoiceRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	id := c.Param("id")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"invoice.id": id,
	})

	result, err := h.service.UpdateInvoice(c.Request.Context(), id, req)
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

// DeleteInvoice handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	id := c.Param("id")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"invoice.id": id,
	})

	result, err := h.service.DeleteInvoice(c.Request.Context(), id)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
