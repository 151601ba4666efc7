package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
)

// LogisticsHandler handles HTTP requests for shipment records
type LogisticsHandler struct {
	service *application.LogisticsService
	logger  *logging.Logger
	metrics *middleware.BusinessMetrics
}

// NewLogisticsHandler creates a new LogisticsHandler
func NewLogisticsHandler(service *application.LogisticsService, logger *logging.Logger, metrics *middleware.BusinessMetrics) *LogisticsHandler {
	return &LogisticsHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// IngestBatch handles POST /api/v1/logistics. The body must be a JSON array;
// anything else is rejected before a single record is written.
func (h *LogisticsHandler) IngestBatch(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var items []application.LogisticItemRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		h.recordBatch("rejected", 0)
		responder.RespondWithAppError(errors.ErrValidation("request body must be a JSON array of logistics entries"))
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"logistics.batch_size": len(items),
	})

	result, err := h.service.IngestBatch(c.Request.Context(), items)
	if err != nil {
		h.recordBatch("failed", len(items))
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	h.recordBatch("ingested", len(items))
	for _, entry := range result {
		if h.metrics != nil {
			h.metrics.RecordLogisticsEntryCreated(entry.PaymentType)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// ListEntries handles GET /api/v1/logistics
func (h *LogisticsHandler) ListEntries(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.ListEntries(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetEntriesByOrderRef handles GET /api/v1/logistics/:orderId
func (h *LogisticsHandler) GetEntriesByOrderRef(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	orderRef := c.Param("orderId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"order.ref": orderRef,
	})

	result, err := h.service.GetEntriesByOrderRef(c.Request.Context(), orderRef)
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

// UpdateEntry handles PUT /api/v1/logistics/:id
func (h *LogisticsHandler) UpdateEntry(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req application.UpdateLogisticRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	id := c.Param("id")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"logistics.id": id,
	})

	result, err := h.service.UpdateEntry(c.Request.Context(), id, req)
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

// DeleteEntry handles DELETE /api/v1/logistics/:id
func (h *LogisticsHandler) DeleteEntry(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	id := c.Param("id")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"logistics.id": id,
	})

	result, err := h.service.DeleteEntry(c.Request.Context(), id)
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

func (h *LogisticsHandler) recordBatch(status string, size int) {
	if h.metrics != nil {
		h.metrics.RecordLogisticsBatch(status, size)
	}
}
