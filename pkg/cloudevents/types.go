package cloudevents

import (
	"time"
)

// EventType constants for commerce back-office domain events
const (
	// Logistics events
	LogisticsEntryCreated = "commerce.logistics.entry-created"
	LogisticsEntryUpdated = "commerce.logistics.entry-updated"
	LogisticsEntryDeleted = "commerce.logistics.entry-deleted"
	LogisticsBatchIngested = "commerce.logistics.batch-ingested"

	// Invoice events
	InvoiceCreated = "commerce.invoice.created"
	InvoiceUpdated = "commerce.invoice.updated"
	InvoiceDeleted = "commerce.invoice.deleted"

	// Product events
	ProductCreated = "commerce.product.created"
	ProductUpdated = "commerce.product.updated"
	ProductDeleted = "commerce.product.deleted"
)

// Source constants for event sources
const (
	SourceBackoffice = "/commerce/backoffice-service"
	SourceLogistics  = "/commerce/backoffice-service/logistics"
	SourceInvoicing  = "/commerce/backoffice-service/invoicing"
	SourceCatalog    = "/commerce/backoffice-service/catalog"
)

// CommerceCloudEvent represents a CloudEvents v1.0 compliant event for the
// commerce back-office
type CommerceCloudEvent struct {
	SpecVersion     string                 `json:"specversion"`
	Type            string                 `json:"type"`
	Source          string                 `json:"source"`
	Subject         string                 `json:"subject,omitempty"`
	ID              string                 `json:"id"`
	Time            time.Time              `json:"time"`
	DataContentType string                 `json:"datacontenttype"`
	Data            interface{}            `json:"data"`
	Extensions      map[string]interface{} `json:"-"`

	// Commerce-specific extensions
	CorrelationID string `json:"commercecorrelationid,omitempty"`
	OrderRef      string `json:"commerceorderref,omitempty"`
	DocketNumber  string `json:"commercedocketnumber,omitempty"`

	// W3C trace context, propagated through brokers
	TraceParent string `json:"traceparent,omitempty"`
	TraceState  string `json:"tracestate,omitempty"`
}

// LogisticsEntryCreatedData represents the data payload for LogisticsEntryCreated
type LogisticsEntryCreatedData struct {
	LogisticID     string    `json:"logisticId"`
	OrderRef       string    `json:"orderRef"`
	DocketNumber   string    `json:"docketNumber"`
	PaymentType    string    `json:"paymentType,omitempty"`
	Amount         float64   `json:"amount"`
	DispatchedDate time.Time `json:"materialDispatchedDate"`
}

// LogisticsEntryDeletedData represents the data payload for LogisticsEntryDeleted
type LogisticsEntryDeletedData struct {
	LogisticID   string `json:"logisticId"`
	DocketNumber string `json:"docketNumber"`
}

// LogisticsBatchIngestedData represents the data payload for LogisticsBatchIngested
type LogisticsBatchIngestedData struct {
	RequestedItems int      `json:"requestedItems"`
	CreatedItems   int      `json:"createdItems"`
	DocketNumbers  []string `json:"docketNumbers"`
}

// InvoiceCreatedData represents the data payload for InvoiceCreated
type InvoiceCreatedData struct {
	InvoiceID     string  `json:"invoiceId"`
	OrderRef      string  `json:"orderRef"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

// InvoiceDeletedData represents the data payload for InvoiceDeleted
type InvoiceDeletedData struct {
	InvoiceID     string `json:"invoiceId"`
	InvoiceNumber string `json:"invoiceNumber"`
}

// ProductCreatedData represents the data payload for ProductCreated
type ProductCreatedData struct {
	ProductID string  `json:"productId"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ProductDeletedData represents the data payload for ProductDeleted
type ProductDeletedData struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
}
