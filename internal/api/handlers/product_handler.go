package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/backoffice-service/internal/application"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/middleware"
)

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	service *application.ProductService
	logger  *logging.Logger
	metrics *middleware.BusinessMetrics
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *application.ProductService, logger *logging.Logger, metrics *middleware.BusinessMetrics) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req application.CreateProductRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"product.sku": req.SKU,
	})

	result, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.RecordProductCreated(result.Category)
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetProduct handles GET /api/v1/products/:productId
func (h *ProductHandler) GetProduct(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	productID := c.Param("productId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"product.id": productID,
	})

	result, err := h.service.GetProduct(c.Request.Context(), productID)
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

// UpdateProduct handles PUT /api/v1/products/:productId
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req application.UpdateProductRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	productID := c.Param("productId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"product.id": productID,
	})

	result, err := h.service.UpdateProduct(c.Request.Context(), productID, req)
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

// DeleteProduct handles DELETE /api/v1/products/:productId
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	productID := c.Param("productId")

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"product.id": productID,
	})

	result, err := h.service.DeleteProduct(c.Request.Context(), productID)
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
