package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the back-office domain
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrLogisticNotFound   = errors.New("logistics entry not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrMissingOrderRef    = errors.New("orderId is required")
	ErrMissingDocket      = errors.New("docketNumber is required")
	ErrMissingDispatch    = errors.New("materialDispatchedDate is required")
	ErrInvalidDispatch    = errors.New("materialDispatchedDate is not a valid date")
	ErrInvalidPaymentType = errors.New("invalid payment type")
	ErrInvalidAmount      = errors.New("amount must not be negative")
)

// PaymentType represents how a shipment is paid for
type PaymentType string

const (
	PaymentTypePrepaid PaymentType = "prepaid"
	PaymentTypeCOD     PaymentType = "cod"
	PaymentTypeCredit  PaymentType = "credit"
)

// IsValid checks if the payment type is valid
func (p PaymentType) IsValid() bool {
	switch PaymentType(strings.ToLower(string(p))) {
	case PaymentTypePrepaid, PaymentTypeCOD, PaymentTypeCredit:
		return true
	}
	return false
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

// Order is the order document this service reads but never mutates.
// OrderRef is the external business key; ID is the internal identifier
// that logistics and invoice records reference.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderRef     string             `bson:"orderId" json:"orderId"`
	CustomerName string             `bson:"customerName" json:"customerName"`
	Amount       float64            `bson:"amount" json:"amount"`
	Status       OrderStatus        `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Logistic represents a shipment record for an order. OrderID always holds
// the order's internal id; callers submit the business key and the ingestion
// workflow resolves it before a record is created.
type Logistic struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID                primitive.ObjectID `bson:"orderId" json:"orderId"`
	CourierPartnerDetails  string             `bson:"courierPartnerDetails,omitempty" json:"courierPartnerDetails,omitempty"`
	PaymentType            PaymentType        `bson:"paymentType,omitempty" json:"paymentType,omitempty"`
	ItemsDispatched        []string           `bson:"itemsDispatched,omitempty" json:"itemsDispatched,omitempty"`
	DocketNumber           string             `bson:"docketNumber" json:"docketNumber"`
	MaterialDispatchedDate time.Time          `bson:"materialDispatchedDate" json:"materialDispatchedDate"`
	Amount                 float64            `bson:"amount,omitempty" json:"amount,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`

	domainEvents []DomainEvent
}

// NewLogistic creates a shipment record against a resolved order.
func NewLogistic(
	order *Order,
	courierPartnerDetails string,
	paymentType PaymentType,
	itemsDispatched []string,
	docketNumber string,
	materialDispatchedDate time.Time,
	amount float64,
) (*Logistic, error) {
	if docketNumber == "" {
		return nil, ErrMissingDocket
	}
	if materialDispatchedDate.IsZero() {
		return nil, ErrMissingDispatch
	}
	if paymentType != "" && !paymentType.IsValid() {
		return nil, ErrInvalidPaymentType
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	logistic := &Logistic{
		ID:                     primitive.NewObjectID(),
		OrderID:                order.ID,
		CourierPartnerDetails:  courierPartnerDetails,
		PaymentType:            paymentType,
		ItemsDispatched:        itemsDispatched,
		DocketNumber:           docketNumber,
		MaterialDispatchedDate: materialDispatchedDate,
		Amount:                 amount,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	logistic.addDomainEvent(&LogisticEntryCreatedEvent{
		LogisticID:   logistic.ID.Hex(),
		OrderRef:     order.OrderRef,
		DocketNumber: docketNumber,
		PaymentType:  string(paymentType),
		Amount:       amount,
		DispatchedAt: materialDispatchedDate,
		CreatedAt:    now,
	})

	return logistic, nil
}

func (l *Logistic) addDomainEvent(event DomainEvent) {
	l.domainEvents = append(l.domainEvents, event)
}

// AddDomainEvent appends a pending domain event raised outside the
// constructor, such as a batch event recorded with the final entry.
func (l *Logistic) AddDomainEvent(event DomainEvent) {
	l.addDomainEvent(event)
}

// DomainEvents returns all pending domain events
func (l *Logistic) DomainEvents() []DomainEvent {
	return l.domainEvents
}

// ClearDomainEvents clears all pending domain events
func (l *Logistic) ClearDomainEvents() {
	l.domainEvents = nil
}

// LogisticWithOrder is a shipment record with its order expanded, the shape
// the read endpoints return.
type LogisticWithOrder struct {
	Logistic `bson:",inline"`
	Order    *Order `bson:"order,omitempty" json:"order,omitempty"`
}

// Invoice represents an invoice raised against an order.
type Invoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       primitive.ObjectID `bson:"orderId" json:"orderId"`
	InvoiceNumber string             `bson:"invoiceNumber" json:"invoiceNumber"`
	Amount        float64            `bson:"amount" json:"amount"`
	Status        InvoiceStatus      `bson:"status" json:"status"`
	IssuedDate    time.Time          `bson:"issuedDate" json:"issuedDate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	domainEvents []DomainEvent
}

// NewInvoice creates an invoice against a resolved order.
func NewInvoice(order *Order, invoiceNumber string, amount float64, status InvoiceStatus, issuedDate time.Time) (*Invoice, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if status == "" {
		status = InvoiceStatusIssued
	}
	if issuedDate.IsZero() {
		issuedDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	invoice := &Invoice{
		ID:            primitive.NewObjectID(),
		OrderID:       order.ID,
		InvoiceNumber: invoiceNumber,
		Amount:        amount,
		Status:        status,
		IssuedDate:    issuedDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	invoice.addDomainEvent(&InvoiceCreatedEvent{
		InvoiceID:     invoice.ID.Hex(),
		InvoiceNumber: invoiceNumber,
		OrderRef:      order.OrderRef,
		Amount:        amount,
		Status:        string(status),
		CreatedAt:     now,
	})

	return invoice, nil
}

func (i *Invoice) addDomainEvent(event DomainEvent) {
	i.domainEvents = append(i.domainEvents, event)
}

// DomainEvents returns all pending domain events
func (i *Invoice) DomainEvents() []DomainEvent {
	return i.domainEvents
}

// ClearDomainEvents clears all pending domain events
func (i *Invoice) ClearDomainEvents() {
	i.domainEvents = nil
}

// InvoiceWithOrder is an invoice with its order expanded.
type InvoiceWithOrder struct {
	Invoice `bson:",inline"`
	Order   *Order `bson:"order,omitempty" json:"order,omitempty"`
}

// Product represents a catalog product.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	SKU         string             `bson:"sku" json:"sku"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	domainEvents []DomainEvent
}

// NewProduct creates a catalog product.
func NewProduct(name, sku, description string, price float64, quantity int, category string) (*Product, error) {
	if price < 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	product := &Product{
		ID:          primitive.NewObjectID(),
		Name:        name,
		SKU:         sku,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	product.addDomainEvent(&ProductCreatedEvent{
		ProductID: product.ID.Hex(),
		SKU:       sku,
		Name:      name,
		Category:  category,
		CreatedAt: now,
	})

	return product, nil
}

func (p *Product) addDomainEvent(event DomainEvent) {
	p.domainEvents = append(p.domainEvents, event)
}

// DomainEvents returns all pending domain events
func (p *Product) DomainEvents() []DomainEvent {
	return p.domainEvents
}

// ClearDomainEvents clears all pending domain events
func (p *Product) ClearDomainEvents() {
	p.domainEvents = nil
}
