package application

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/errors"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
)

// InvoiceService handles invoice use cases
type InvoiceService struct {
	invoiceRepo domain.InvoiceRepository
	orderRepo   domain.OrderRepository
	logger      *logging.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo domain.InvoiceRepository,
	orderRepo domain.OrderRepository,
	logger *logging.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// CreateInvoice raises an invoice against an order business key
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceDTO, error) {
	order, err := s.orderRepo.FindByOrderRef(ctx, req.OrderRef)
	if err != nil {
		if stderrors.Is(err, domain.ErrOrderNotFound) {
			return nil, errors.ErrBadRequest(fmt.Sprintf("Order with ID %s not found", req.OrderRef))
		}
		return nil, errors.ErrDatabase(err)
	}

	var issuedDate time.Time
	if req.IssuedDate != "" {
		issuedDate, err = parseDispatchDate(req.IssuedDate)
		if err != nil {
			return nil, errors.ErrValidation("issuedDate is not a valid date")
		}
	}

	if req.Status != "" {
		switch domain.InvoiceStatus(req.Status) {
		case domain.InvoiceStatusDraft, domain.InvoiceStatusIssued, domain.InvoiceStatusPaid, domain.InvoiceStatusVoided:
		default:
			return nil, errors.ErrValidation(fmt.Sprintf("invalid invoice status: %s", req.Status))
		}
	}

	invoice, err := domain.NewInvoice(order, req.InvoiceNumber, req.Amount, domain.InvoiceStatus(req.Status), issuedDate)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.WithError(err).Error("Failed to save invoice", "invoiceNumber", req.InvoiceNumber)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Invoice created",
		"invoiceNumber", invoice.InvoiceNumber,
		"orderRef", req.OrderRef,
		"amount", invoice.Amount,
	)
	return ToInvoiceDTO(invoice), nil
}

// ListInvoices retrieves all invoices with orders expanded
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]InvoiceDTO, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		dtos[i] = *ToInvoiceWithOrderDTO(inv)
	}
	return dtos, nil
}

// GetInvoicesByOrderRef retrieves invoices for an order reference.
// An empty result is a not found condition.
func (s *InvoiceService) GetInvoicesByOrderRef(ctx context.Context, orderRef string) ([]InvoiceDTO, error) {
	invoices, err := s.invoiceRepo.FindByOrderRef(ctx, orderRef)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}
	if len(invoices) == 0 {
		return nil, errors.ErrNotFound("Invoices")
	}

	dtos := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		dtos[i] = *ToInvoiceWithOrderDTO(inv)
	}
	return dtos, nil
}

// UpdateInvoice applies a partial update to an invoice by internal id
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, req UpdateInvoiceRequest) (*InvoiceDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid invoice id")
	}

	update := domain.InvoiceUpdate{
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
	}

	if req.OrderRef != nil {
		order, err := s.orderRepo.FindByOrderRef(ctx, *req.OrderRef)
		if err != nil {
			if stderrors.Is(err, domain.ErrOrderNotFound) {
				return nil, errors.ErrBadRequest(fmt.Sprintf("Order with ID %s not found", *req.OrderRef))
			}
			return nil, errors.ErrDatabase(err)
		}
		update.OrderID = &order.ID
	}

	if req.Status != nil {
		status := domain.InvoiceStatus(*req.Status)
		switch status {
		case domain.InvoiceStatusDraft, domain.InvoiceStatusIssued, domain.InvoiceStatusPaid, domain.InvoiceStatusVoided:
		default:
			return nil, errors.ErrValidation(fmt.Sprintf("invalid invoice status: %s", *req.Status))
		}
		update.Status = &status
	}

	if req.IssuedDate != nil {
		issuedDate, err := parseDispatchDate(*req.IssuedDate)
		if err != nil {
			return nil, errors.ErrValidation("issuedDate is not a valid date")
		}
		update.IssuedDate = &issuedDate
	}

	if req.Amount != nil && *req.Amount < 0 {
		return nil, errors.ErrValidation(domain.ErrInvalidAmount.Error())
	}

	if update.IsEmpty() {
		invoice, err := s.invoiceRepo.FindByID(ctx, oid)
		if err != nil {
			if stderrors.Is(err, domain.ErrInvoiceNotFound) {
				return nil, errors.ErrNotFoundWithID("invoice", id)
			}
			return nil, fmt.Errorf("failed to get invoice: %w", err)
		}
		return ToInvoiceDTO(invoice), nil
	}

	invoice, err := s.invoiceRepo.UpdateFields(ctx, oid, update)
	if err != nil {
		if stderrors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, errors.ErrNotFoundWithID("invoice", id)
		}
		s.logger.WithError(err).Error("Failed to update invoice", "id", id)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Invoice updated", "id", id)
	return ToInvoiceDTO(invoice), nil
}

// DeleteInvoice removes an invoice by internal id and returns the deleted
// document in the confirmation payload
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (*DeletedInvoiceResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid invoice id")
	}

	invoice, err := s.invoiceRepo.DeleteByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, errors.ErrNotFoundWithID("invoice", id)
		}
		s.logger.WithError(err).Error("Failed to delete invoice", "id", id)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Invoice deleted", "id", id, "invoiceNumber", invoice.InvoiceNumber)
	return &DeletedInvoiceResponse{
		Message: "Invoice deleted successfully",
		Deleted: *ToInvoiceDTO(invoice),
	}, nil
}
