package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/backoffice-service/pkg/logging"
)

// CloudEvents commerce extension context keys
const (
	ContextKeyCommerceCorrelationID = "commerceCorrelationId"
	ContextKeyCommerceOrderRef      = "commerceOrderRef"
	ContextKeyCommerceDocketNumber  = "commerceDocketNumber"
)

// CloudEvents commerce extension HTTP header names
const (
	HeaderCommerceCorrelationID = "X-Commerce-Correlation-ID"
	HeaderCommerceOrderRef      = "X-Commerce-Order-Ref"
	HeaderCommerceDocketNumber  = "X-Commerce-Docket-Number"
)

// CloudEvents middleware extracts commerce CloudEvents extensions from HTTP
// headers and adds them to the request context for downstream logging and
// propagation. The extensions carry the same values the event envelope uses
// on the Kafka side, so a request can be correlated with the events it emits.
func CloudEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(HeaderCommerceCorrelationID)
		orderRef := c.GetHeader(HeaderCommerceOrderRef)
		docketNumber := c.GetHeader(HeaderCommerceDocketNumber)

		if correlationID != "" {
			c.Set(ContextKeyCommerceCorrelationID, correlationID)
		}
		if orderRef != "" {
			c.Set(ContextKeyCommerceOrderRef, orderRef)
		}
		if docketNumber != "" {
			c.Set(ContextKeyCommerceDocketNumber, docketNumber)
		}

		// Make the correlation ID visible to the logging package
		if correlationID != "" {
			ctx := logging.ContextWithCorrelationID(c.Request.Context(), correlationID)
			c.Request = c.Request.WithContext(ctx)
		}

		// Echo the extensions back so callers can correlate responses
		if correlationID != "" {
			c.Header(HeaderCommerceCorrelationID, correlationID)
		}
		if orderRef != "" {
			c.Header(HeaderCommerceOrderRef, orderRef)
		}
		if docketNumber != "" {
			c.Header(HeaderCommerceDocketNumber, docketNumber)
		}

		c.Next()
	}
}

// GetCommerceCorrelationID extracts the commerce correlation ID from Gin context
func GetCommerceCorrelationID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyCommerceCorrelationID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetCommerceOrderRef extracts the commerce order reference from Gin context
func GetCommerceOrderRef(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyCommerceOrderRef); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetCommerceDocketNumber extracts the commerce docket number from Gin context
func GetCommerceDocketNumber(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyCommerceDocketNumber); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// CloudEventExtensions holds all commerce CloudEvent extension values
type CloudEventExtensions struct {
	CorrelationID string
	OrderRef      string
	DocketNumber  string
}

// GetCloudEventExtensions extracts all CloudEvent extensions from Gin context
func GetCloudEventExtensions(c *gin.Context) CloudEventExtensions {
	return CloudEventExtensions{
		CorrelationID: GetCommerceCorrelationID(c),
		OrderRef:      GetCommerceOrderRef(c),
		DocketNumber:  GetCommerceDocketNumber(c),
	}
}

// PropagationCloudEventHeaders returns commerce CloudEvents headers for propagation to downstream services
func PropagationCloudEventHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string)

	if id := GetCommerceCorrelationID(c); id != "" {
		headers[HeaderCommerceCorrelationID] = id
	}
	if id := GetCommerceOrderRef(c); id != "" {
		headers[HeaderCommerceOrderRef] = id
	}
	if id := GetCommerceDocketNumber(c); id != "" {
		headers[HeaderCommerceDocketNumber] = id
	}

	return headers
}
