package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for commerce domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new CommerceCloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *CommerceCloudEvent {
	event := &CommerceCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		Extensions:      make(map[string]interface{}),
	}

	return event
}

// CreateEventWithCorrelation creates an event with correlation tracking
func (f *EventFactory) CreateEventWithCorrelation(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
	correlationID string,
) *CommerceCloudEvent {
	event := f.CreateEvent(ctx, eventType, subject, data)
	event.CorrelationID = correlationID
	return event
}

// CreateLogisticsEntryCreatedEvent creates a LogisticsEntryCreated event
func (f *EventFactory) CreateLogisticsEntryCreatedEvent(
	ctx context.Context,
	logisticID string,
	orderRef string,
	docketNumber string,
	paymentType string,
	amount float64,
	dispatchedDate time.Time,
) *CommerceCloudEvent {
	data := LogisticsEntryCreatedData{
		LogisticID:     logisticID,
		OrderRef:       orderRef,
		DocketNumber:   docketNumber,
		PaymentType:    paymentType,
		Amount:         amount,
		DispatchedDate: dispatchedDate,
	}
	event := f.CreateEvent(ctx, LogisticsEntryCreated, "logistic/"+logisticID, data)
	event.OrderRef = orderRef
	event.DocketNumber = docketNumber
	return event
}

// CreateLogisticsEntryDeletedEvent creates a LogisticsEntryDeleted event
func (f *EventFactory) CreateLogisticsEntryDeletedEvent(
	ctx context.Context,
	logisticID string,
	docketNumber string,
) *CommerceCloudEvent {
	data := LogisticsEntryDeletedData{
		LogisticID:   logisticID,
		DocketNumber: docketNumber,
	}
	event := f.CreateEvent(ctx, LogisticsEntryDeleted, "logistic/"+logisticID, data)
	event.DocketNumber = docketNumber
	return event
}

// CreateLogisticsBatchIngestedEvent creates a LogisticsBatchIngested event
func (f *EventFactory) CreateLogisticsBatchIngestedEvent(
	ctx context.Context,
	requestedItems int,
	createdItems int,
	docketNumbers []string,
) *CommerceCloudEvent {
	data := LogisticsBatchIngestedData{
		RequestedItems: requestedItems,
		CreatedItems:   createdItems,
		DocketNumbers:  docketNumbers,
	}
	return f.CreateEvent(ctx, LogisticsBatchIngested, "logistics/batch", data)
}

// CreateInvoiceCreatedEvent creates an InvoiceCreated event
func (f *EventFactory) CreateInvoiceCreatedEvent(
	ctx context.Context,
	invoiceID string,
	orderRef string,
	invoiceNumber string,
	amount float64,
	status string,
) *CommerceCloudEvent {
	data := InvoiceCreatedData{
		InvoiceID:     invoiceID,
		OrderRef:      orderRef,
		InvoiceNumber: invoiceNumber,
		Amount:        amount,
		Status:        status,
	}
	event := f.CreateEvent(ctx, InvoiceCreated, "invoice/"+invoiceID, data)
	event.OrderRef = orderRef
	return event
}

// CreateProductCreatedEvent creates a ProductCreated event
func (f *EventFactory) CreateProductCreatedEvent(
	ctx context.Context,
	productID string,
	sku string,
	name string,
	price float64,
	quantity int,
) *CommerceCloudEvent {
	data := ProductCreatedData{
		ProductID: productID,
		SKU:       sku,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
	}
	return f.CreateEvent(ctx, ProductCreated, "product/"+productID, data)
}
