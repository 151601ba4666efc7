package application

import (
	"time"

	"github.com/commerce-platform/backoffice-service/internal/domain"
)

// Requests

// LogisticItemRequest is a single entry of a logistics batch. OrderRef carries
// the order business key; the ingestion workflow resolves it to the internal
// id before anything is written.
type LogisticItemRequest struct {
	OrderRef               string   `json:"orderId"`
	CourierPartnerDetails  string   `json:"courierPartnerDetails"`
	PaymentType            string   `json:"paymentType"`
	ItemsDispatched        []string `json:"itemsDispatched"`
	DocketNumber           string   `json:"docketNumber"`
	MaterialDispatchedDate string   `json:"materialDispatchedDate"`
	Amount                 float64  `json:"amount"`
}

// UpdateLogisticRequest carries a partial update for a shipment record.
// Absent fields are left untouched.
type UpdateLogisticRequest struct {
	OrderRef               *string  `json:"orderId,omitempty"`
	CourierPartnerDetails  *string  `json:"courierPartnerDetails,omitempty"`
	PaymentType            *string  `json:"paymentType,omitempty" binding:"omitempty,payment_type"`
	ItemsDispatched        []string `json:"itemsDispatched,omitempty"`
	DocketNumber           *string  `json:"docketNumber,omitempty" binding:"omitempty,docket_number"`
	MaterialDispatchedDate *string  `json:"materialDispatchedDate,omitempty"`
	Amount                 *float64 `json:"amount,omitempty"`
}

// CreateInvoiceRequest creates an invoice against an order business key
type CreateInvoiceRequest struct {
	OrderRef      string  `json:"orderId" binding:"required"`
	InvoiceNumber string  `json:"invoiceNumber" binding:"required,invoice_number"`
	Amount        float64 `json:"amount" binding:"gte=0"`
	Status        string  `json:"status"`
	IssuedDate    string  `json:"issuedDate"`
}

// UpdateInvoiceRequest carries a partial invoice update
type UpdateInvoiceRequest struct {
	OrderRef      *string  `json:"orderId,omitempty"`
	InvoiceNumber *string  `json:"invoiceNumber,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Status        *string  `json:"status,omitempty"`
	IssuedDate    *string  `json:"issuedDate,omitempty"`
}

// CreateProductRequest creates a catalog product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku" binding:"required,sku"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Category    string  `json:"category"`
}

// UpdateProductRequest carries a partial product update
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// ListOrdersQuery represents query to list orders
type ListOrdersQuery struct {
	Page     int64
	PageSize int64
}

// DTOs

// OrderDTO represents an order response
type OrderDTO struct {
	ID           string    `json:"id"`
	OrderRef     string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OrderListResponse represents paginated orders
type OrderListResponse struct {
	Data     []OrderDTO `json:"data"`
	Page     int64      `json:"page"`
	PageSize int64      `json:"pageSize"`
	Total    int64      `json:"total"`
}

// LogisticDTO represents a shipment record response. Order is present on
// read paths where the record is returned with its order expanded.
type LogisticDTO struct {
	ID                     string    `json:"id"`
	OrderID                string    `json:"orderId"`
	CourierPartnerDetails  string    `json:"courierPartnerDetails,omitempty"`
	PaymentType            string    `json:"paymentType,omitempty"`
	ItemsDispatched        []string  `json:"itemsDispatched,omitempty"`
	DocketNumber           string    `json:"docketNumber"`
	MaterialDispatchedDate time.Time `json:"materialDispatchedDate"`
	Amount                 float64   `json:"amount,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
	Order                  *OrderDTO `json:"order,omitempty"`
}

// InvoiceDTO represents an invoice response
type InvoiceDTO struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	IssuedDate    time.Time `json:"issuedDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Order         *OrderDTO `json:"order,omitempty"`
}

// ProductDTO represents a product response
type ProductDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeletedLogisticResponse confirms a shipment record deletion
type DeletedLogisticResponse struct {
	Message string      `json:"message"`
	Deleted LogisticDTO `json:"deleted"`
}

// DeletedInvoiceResponse confirms an invoice deletion
type DeletedInvoiceResponse struct {
	Message string     `json:"message"`
	Deleted InvoiceDTO `json:"deleted"`
}

// DeletedProductResponse confirms a product deletion
type DeletedProductResponse struct {
	Message string     `json:"message"`
	Deleted ProductDTO `json:"deleted"`
}

// Conversion functions

// ToOrderDTO converts a domain order to a DTO
func ToOrderDTO(o *domain.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:           o.ID.Hex(),
		OrderRef:     o.OrderRef,
		CustomerName: o.CustomerName,
		Amount:       o.Amount,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToLogisticDTO converts a domain shipment record to a DTO
func ToLogisticDTO(l *domain.Logistic) *LogisticDTO {
	return &LogisticDTO{
		ID:                     l.ID.Hex(),
		OrderID:                l.OrderID.Hex(),
		CourierPartnerDetails:  l.CourierPartnerDetails,
		PaymentType:            string(l.PaymentType),
		ItemsDispatched:        l.ItemsDispatched,
		DocketNumber:           l.DocketNumber,
		MaterialDispatchedDate: l.MaterialDispatchedDate,
		Amount:                 l.Amount,
		CreatedAt:              l.CreatedAt,
		UpdatedAt:              l.UpdatedAt,
	}
}

// ToLogisticWithOrderDTO converts an expanded shipment record to a DTO
func ToLogisticWithOrderDTO(lw *domain.LogisticWithOrder) *LogisticDTO {
	dto := ToLogisticDTO(&lw.Logistic)
	dto.Order = ToOrderDTO(lw.Order)
	return dto
}

// ToInvoiceDTO converts a domain invoice to a DTO
func ToInvoiceDTO(inv *domain.Invoice) *InvoiceDTO {
	return &InvoiceDTO{
		ID:            inv.ID.Hex(),
		OrderID:       inv.OrderID.Hex(),
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		Status:        string(inv.Status),
		IssuedDate:    inv.IssuedDate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceWithOrderDTO converts an expanded invoice to a DTO
func ToInvoiceWithOrderDTO(iw *domain.InvoiceWithOrder) *InvoiceDTO {
	dto := ToInvoiceDTO(&iw.Invoice)
	dto.Order = ToOrderDTO(iw.Order)
	return dto
}

// ToProductDTO converts a domain product to a DTO
func ToProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
