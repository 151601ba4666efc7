package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRepository defines read access to the orders collection. Orders are
// owned by an upstream service; this service only resolves and lists them.
type OrderRepository interface {
	// FindAll retrieves orders with pagination
	FindAll(ctx context.Context, pagination Pagination) ([]*Order, error)

	// FindByOrderRef resolves a business key to the order document.
	// Returns ErrOrderNotFound when no order carries the key.
	FindByOrderRef(ctx context.Context, orderRef string) (*Order, error)

	// FindByID retrieves an order by its internal id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error)

	// Count returns the total number of orders
	Count(ctx context.Context) (int64, error)
}

// LogisticRepository defines the interface for shipment record persistence
type LogisticRepository interface {
	// Save persists a shipment record
	Save(ctx context.Context, logistic *Logistic) error

	// FindAll retrieves all shipment records with their orders expanded
	FindAll(ctx context.Context) ([]*LogisticWithOrder, error)

	// FindByOrderRef retrieves shipment records for an order reference.
	// The reference may be an internal id in hex form or a raw value;
	// a non-hex reference falls through to a raw field match.
	FindByOrderRef(ctx context.Context, orderRef string) ([]*LogisticWithOrder, error)

	// FindByID retrieves a shipment record by internal id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Logistic, error)

	// UpdateFields applies a partial update and returns the updated record.
	// Returns ErrLogisticNotFound when the id does not exist.
	UpdateFields(ctx context.Context, id primitive.ObjectID, update LogisticUpdate) (*Logistic, error)

	// DeleteByID removes a shipment record and returns the deleted document.
	// Returns ErrLogisticNotFound when the id does not exist.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*Logistic, error)
}

// LogisticUpdate holds the optional fields of a partial shipment update.
// Nil fields are left untouched.
type LogisticUpdate struct {
	OrderID                *primitive.ObjectID
	CourierPartnerDetails  *string
	PaymentType            *PaymentType
	ItemsDispatched        []string
	DocketNumber           *string
	MaterialDispatchedDate *time.Time
	Amount                 *float64
}

// IsEmpty reports whether the update would touch no fields
func (u LogisticUpdate) IsEmpty() bool {
	return u.OrderID == nil &&
		u.CourierPartnerDetails == nil &&
		u.PaymentType == nil &&
		u.ItemsDispatched == nil &&
		u.DocketNumber == nil &&
		u.MaterialDispatchedDate == nil &&
		u.Amount == nil
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Save persists an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// FindAll retrieves all invoices with their orders expanded
	FindAll(ctx context.Context) ([]*InvoiceWithOrder, error)

	// FindByOrderRef retrieves invoices for an order reference, hex or raw
	FindByOrderRef(ctx context.Context, orderRef string) ([]*InvoiceWithOrder, error)

	// FindByID retrieves an invoice by internal id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Invoice, error)

	// UpdateFields applies a partial update and returns the updated invoice.
	// Returns ErrInvoiceNotFound when the id does not exist.
	UpdateFields(ctx context.Context, id primitive.ObjectID, update InvoiceUpdate) (*Invoice, error)

	// DeleteByID removes an invoice and returns the deleted document.
	// Returns ErrInvoiceNotFound when the id does not exist.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*Invoice, error)
}

// InvoiceUpdate holds the optional fields of a partial invoice update
type InvoiceUpdate struct {
	OrderID       *primitive.ObjectID
	InvoiceNumber *string
	Amount        *float64
	Status        *InvoiceStatus
	IssuedDate    *time.Time
}

// IsEmpty reports whether the update would touch no fields
func (u InvoiceUpdate) IsEmpty() bool {
	return u.OrderID == nil &&
		u.InvoiceNumber == nil &&
		u.Amount == nil &&
		u.Status == nil &&
		u.IssuedDate == nil
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Save persists a product
	Save(ctx context.Context, product *Product) error

	// FindAll retrieves all products
	FindAll(ctx context.Context) ([]*Product, error)

	// FindByID retrieves a product by internal id.
	// Returns ErrProductNotFound when the id does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)

	// UpdateFields applies a partial update and returns the updated product.
	// Returns ErrProductNotFound when the id does not exist.
	UpdateFields(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*Product, error)

	// DeleteByID removes a product and returns the deleted document.
	// Returns ErrProductNotFound when the id does not exist.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
}

// ProductUpdate holds the optional fields of a partial product update
type ProductUpdate struct {
	Name        *string
	SKU         *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
}

// IsEmpty reports whether the update would touch no fields
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil &&
		u.SKU == nil &&
		u.Description == nil &&
		u.Price == nil &&
		u.Quantity == nil &&
		u.Category == nil
}

// Pagination represents pagination options
type Pagination struct {
	Page     int64
	PageSize int64
}

// DefaultPagination returns default pagination options
func DefaultPagination() Pagination {
	return Pagination{
		Page:     1,
		PageSize: 20,
	}
}

// Skip returns the number of documents to skip
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of documents to return
func (p Pagination) Limit() int64 {
	return p.PageSize
}
