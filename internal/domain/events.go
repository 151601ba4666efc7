package domain

import "time"

// DomainEvent is the base interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// LogisticEntryCreatedEvent is emitted when a shipment record is created
type LogisticEntryCreatedEvent struct {
	LogisticID   string    `json:"logisticId"`
	OrderRef     string    `json:"orderRef"`
	DocketNumber string    `json:"docketNumber"`
	PaymentType  string    `json:"paymentType,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	DispatchedAt time.Time `json:"dispatchedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (e *LogisticEntryCreatedEvent) EventType() string     { return "commerce.logistics.entry-created" }
func (e *LogisticEntryCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// LogisticEntryUpdatedEvent is emitted when a shipment record is updated
type LogisticEntryUpdatedEvent struct {
	LogisticID string    `json:"logisticId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e *LogisticEntryUpdatedEvent) EventType() string     { return "commerce.logistics.entry-updated" }
func (e *LogisticEntryUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// LogisticEntryDeletedEvent is emitted when a shipment record is deleted
type LogisticEntryDeletedEvent struct {
	LogisticID   string    `json:"logisticId"`
	DocketNumber string    `json:"docketNumber"`
	DeletedAt    time.Time `json:"deletedAt"`
}

func (e *LogisticEntryDeletedEvent) EventType() string     { return "commerce.logistics.entry-deleted" }
func (e *LogisticEntryDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }

// LogisticsBatchIngestedEvent is emitted when a batch of shipment records
// completes ingestion without error
type LogisticsBatchIngestedEvent struct {
	RequestedItems int       `json:"requestedItems"`
	CreatedItems   int       `json:"createdItems"`
	DocketNumbers  []string  `json:"docketNumbers"`
	IngestedAt     time.Time `json:"ingestedAt"`
}

func (e *LogisticsBatchIngestedEvent) EventType() string     { return "commerce.logistics.batch-ingested" }
func (e *LogisticsBatchIngestedEvent) OccurredAt() time.Time { return e.IngestedAt }

// InvoiceCreatedEvent is emitted when an invoice is created
type InvoiceCreatedEvent struct {
	InvoiceID     string    `json:"invoiceId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	OrderRef      string    `json:"orderRef"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (e *InvoiceCreatedEvent) EventType() string     { return "commerce.invoice.created" }
func (e *InvoiceCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// InvoiceUpdatedEvent is emitted when an invoice is updated
type InvoiceUpdatedEvent struct {
	InvoiceID string    `json:"invoiceId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *InvoiceUpdatedEvent) EventType() string     { return "commerce.invoice.updated" }
func (e *InvoiceUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// InvoiceDeletedEvent is emitted when an invoice is deleted
type InvoiceDeletedEvent struct {
	InvoiceID     string    `json:"invoiceId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	DeletedAt     time.Time `json:"deletedAt"`
}

func (e *InvoiceDeletedEvent) EventType() string     { return "commerce.invoice.deleted" }
func (e *InvoiceDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	ProductID string    `json:"productId"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *ProductCreatedEvent) EventType() string     { return "commerce.product.created" }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is emitted when a product is updated
type ProductUpdatedEvent struct {
	ProductID string    `json:"productId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *ProductUpdatedEvent) EventType() string     { return "commerce.product.updated" }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// ProductDeletedEvent is emitted when a product is deleted
type ProductDeletedEvent struct {
	ProductID string    `json:"productId"`
	SKU       string    `json:"sku"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (e *ProductDeletedEvent) EventType() string     { return "commerce.product.deleted" }
func (e *ProductDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
