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

// dispatchDateFormats are accepted for materialDispatchedDate, tried in order
var dispatchDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDispatchDate(value string) (time.Time, error) {
	for _, layout := range dispatchDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDispatch
}

// LogisticsService handles shipment record use cases
type LogisticsService struct {
	logisticRepo domain.LogisticRepository
	orderRepo    domain.OrderRepository
	logger       *logging.Logger
}

// NewLogisticsService creates a new LogisticsService
func NewLogisticsService(
	logisticRepo domain.LogisticRepository,
	orderRepo domain.OrderRepository,
	logger *logging.Logger,
) *LogisticsService {
	return &LogisticsService{
		logisticRepo: logisticRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// IngestBatch processes shipment records sequentially in input order. Each
// item is validated, its order reference resolved and the record persisted
// before the next item is looked at. A failing item stops the batch with an
// error while records persisted for earlier items remain in place.
func (s *LogisticsService) IngestBatch(ctx context.Context, items []LogisticItemRequest) ([]LogisticDTO, error) {
	created := make([]LogisticDTO, 0, len(items))
	docketNumbers := make([]string, 0, len(items))

	for i, item := range items {
		if item.OrderRef == "" {
			return nil, errors.ErrValidation(fmt.Sprintf("item %d: %s", i, domain.ErrMissingOrderRef))
		}
		if item.DocketNumber == "" {
			return nil, errors.ErrValidation(fmt.Sprintf("item %d: %s", i, domain.ErrMissingDocket))
		}
		if item.MaterialDispatchedDate == "" {
			return nil, errors.ErrValidation(fmt.Sprintf("item %d: %s", i, domain.ErrMissingDispatch))
		}

		order, err := s.orderRepo.FindByOrderRef(ctx, item.OrderRef)
		if err != nil {
			if stderrors.Is(err, domain.ErrOrderNotFound) {
				return nil, errors.ErrBadRequest(fmt.Sprintf("Order with ID %s not found", item.OrderRef))
			}
			s.logger.WithError(err).Error("Failed to resolve order", "orderRef", item.OrderRef)
			return nil, errors.ErrDatabase(err)
		}

		dispatchDate, err := parseDispatchDate(item.MaterialDispatchedDate)
		if err != nil {
			return nil, errors.ErrValidation(fmt.Sprintf("item %d: %s", i, err))
		}

		logistic, err := domain.NewLogistic(
			order,
			item.CourierPartnerDetails,
			domain.PaymentType(item.PaymentType),
			item.ItemsDispatched,
			item.DocketNumber,
			dispatchDate,
			item.Amount,
		)
		if err != nil {
			return nil, errors.ErrValidation(fmt.Sprintf("item %d: %s", i, err))
		}

		docketNumbers = append(docketNumbers, logistic.DocketNumber)
		if i == len(items)-1 {
			logistic.AddDomainEvent(&domain.LogisticsBatchIngestedEvent{
				RequestedItems: len(items),
				CreatedItems:   len(items),
				DocketNumbers:  docketNumbers,
				IngestedAt:     time.Now().UTC(),
			})
		}

		if err := s.logisticRepo.Save(ctx, logistic); err != nil {
			s.logger.WithError(err).Error("Failed to save logistics entry",
				"docketNumber", logistic.DocketNumber,
				"orderRef", item.OrderRef,
			)
			return nil, errors.ErrDatabase(err)
		}

		created = append(created, *ToLogisticDTO(logistic))
	}

	s.logger.Info("Logistics batch ingested", "count", len(created))
	return created, nil
}

// ListEntries retrieves all shipment records with orders expanded
func (s *LogisticsService) ListEntries(ctx context.Context) ([]LogisticDTO, error) {
	entries, err := s.logisticRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list logistics entries: %w", err)
	}

	dtos := make([]LogisticDTO, len(entries))
	for i, e := range entries {
		dtos[i] = *ToLogisticWithOrderDTO(e)
	}
	return dtos, nil
}

// GetEntriesByOrderRef retrieves shipment records for an order reference.
// An empty result is a not found condition, never an empty list.
func (s *LogisticsService) GetEntriesByOrderRef(ctx context.Context, orderRef string) ([]LogisticDTO, error) {
	entries, err := s.logisticRepo.FindByOrderRef(ctx, orderRef)
	if err != nil {
		return nil, fmt.Errorf("failed to get logistics entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.ErrNotFound("Logistics entries")
	}

	dtos := make([]LogisticDTO, len(entries))
	for i, e := range entries {
		dtos[i] = *ToLogisticWithOrderDTO(e)
	}
	return dtos, nil
}

// UpdateEntry applies a partial update to a shipment record by internal id
func (s *LogisticsService) UpdateEntry(ctx context.Context, id string, req UpdateLogisticRequest) (*LogisticDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid logistics entry id")
	}

	update := domain.LogisticUpdate{
		CourierPartnerDetails: req.CourierPartnerDetails,
		ItemsDispatched:       req.ItemsDispatched,
		DocketNumber:          req.DocketNumber,
		Amount:                req.Amount,
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

	if req.PaymentType != nil {
		pt := domain.PaymentType(*req.PaymentType)
		if !pt.IsValid() {
			return nil, errors.ErrValidation(domain.ErrInvalidPaymentType.Error())
		}
		update.PaymentType = &pt
	}

	if req.MaterialDispatchedDate != nil {
		dispatchDate, err := parseDispatchDate(*req.MaterialDispatchedDate)
		if err != nil {
			return nil, errors.ErrValidation(err.Error())
		}
		update.MaterialDispatchedDate = &dispatchDate
	}

	if update.IsEmpty() {
		logistic, err := s.logisticRepo.FindByID(ctx, oid)
		if err != nil {
			if stderrors.Is(err, domain.ErrLogisticNotFound) {
				return nil, errors.ErrNotFoundWithID("logistics entry", id)
			}
			return nil, fmt.Errorf("failed to get logistics entry: %w", err)
		}
		return ToLogisticDTO(logistic), nil
	}

	logistic, err := s.logisticRepo.UpdateFields(ctx, oid, update)
	if err != nil {
		if stderrors.Is(err, domain.ErrLogisticNotFound) {
			return nil, errors.ErrNotFoundWithID("logistics entry", id)
		}
		s.logger.WithError(err).Error("Failed to update logistics entry", "id", id)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Logistics entry updated", "id", id)
	return ToLogisticDTO(logistic), nil
}

// DeleteEntry removes a shipment record by internal id and returns the
// deleted record in the confirmation payload
func (s *LogisticsService) DeleteEntry(ctx context.Context, id string) (*DeletedLogisticResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid logistics entry id")
	}

	logistic, err := s.logisticRepo.DeleteByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, domain.ErrLogisticNotFound) {
			return nil, errors.ErrNotFoundWithID("logistics entry", id)
		}
		s.logger.WithError(err).Error("Failed to delete logistics entry", "id", id)
		return nil, errors.ErrDatabase(err)
	}

	s.logger.Info("Logistics entry deleted", "id", id, "docketNumber", logistic.DocketNumber)
	return &DeletedLogisticResponse{
		Message: "Logistics entry deleted successfully",
		Deleted: *ToLogisticDTO(logistic),
	}, nil
}
