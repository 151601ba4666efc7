package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/cloudevents"
	"github.com/commerce-platform/backoffice-service/pkg/kafka"
	"github.com/commerce-platform/backoffice-service/pkg/outbox"
	outboxMongo "github.com/commerce-platform/backoffice-service/pkg/outbox/mongodb"
)

// OrderRepository implements domain.OrderRepository. Orders are written by an
// upstream service; this repository only reads and resolves them.
type OrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	collection := db.Collection("orders")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &OrderRepository{collection: collection}
}

// FindAll retrieves orders with pagination
func (r *OrderRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByOrderRef resolves a business key to the order document
func (r *OrderRepository) FindByOrderRef(ctx context.Context, orderRef string) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderRef}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByID retrieves an order by its internal id
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Count returns the total number of orders
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// orderLookupStages joins the referenced order document into each record
// under the "order" field, mirroring a populate on the read path.
func orderLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "orders",
			"localField":   "orderId",
			"foreignField": "_id",
			"as":           "order",
		}},
		{"$unwind": bson.M{
			"path":                       "$order",
			"preserveNullAndEmptyArrays": true,
		}},
	}
}

// orderRefFilter builds the order reference filter. A hex reference is
// matched as the internal id; anything else falls through to a raw match.
func orderRefFilter(orderRef string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(orderRef); err == nil {
		return bson.M{"orderId": oid}
	}
	return bson.M{"orderId": orderRef}
}

// LogisticRepository implements domain.LogisticRepository
type LogisticRepository struct {
	collection   *mongo.Collection
	db           *mongo.Database
	outboxRepo   *outboxMongo.OutboxRepository
	eventFactory *cloudevents.EventFactory
}

// NewLogisticRepository creates a new LogisticRepository
func NewLogisticRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *LogisticRepository {
	collection := db.Collection("logistics")
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "orderId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "docketNumber", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "materialDispatchedDate", Value: -1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
	_ = outboxRepo.EnsureIndexes(ctx)

	return &LogisticRepository{
		collection:   collection,
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
}

// Save persists a shipment record together with its pending domain events
func (r *LogisticRepository) Save(ctx context.Context, logistic *domain.Logistic) error {
	logistic.UpdatedAt = time.Now().UTC()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"_id": logistic.ID}
		update := bson.M{"$set": logistic}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return nil, fmt.Errorf("failed to save logistics entry: %w", err)
		}

		if err := r.saveDomainEvents(sessCtx, logistic.ID.Hex(), logistic.DomainEvents()); err != nil {
			return nil, err
		}

		logistic.ClearDomainEvents()
		return nil, nil
	})

	return err
}

func (r *LogisticRepository) saveDomainEvents(ctx context.Context, aggregateID string, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		cloudEvent := r.eventFactory.CreateEvent(ctx, event.EventType(), "logistics/"+aggregateID, event)

		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			aggregateID,
			"Logistic",
			kafka.Topics.LogisticsEvents,
			cloudEvent,
		)
		if err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		outboxEvents = append(outboxEvents, outboxEvent)
	}

	if err := r.outboxRepo.SaveAll(ctx, outboxEvents); err != nil {
		return fmt.Errorf("failed to save outbox events: %w", err)
	}
	return nil
}

// FindAll retrieves all shipment records with their orders expanded
func (r *LogisticRepository) FindAll(ctx context.Context) ([]*domain.LogisticWithOrder, error) {
	pipeline := append([]bson.M{}, orderLookupStages()...)
	pipeline = append(pipeline, bson.M{"$sort": bson.M{"createdAt": -1}})
	return r.aggregateExpanded(ctx, pipeline)
}

// FindByOrderRef retrieves shipment records for an order reference
func (r *LogisticRepository) FindByOrderRef(ctx context.Context, orderRef string) ([]*domain.LogisticWithOrder, error) {
	pipeline := []bson.M{{"$match": orderRefFilter(orderRef)}}
	pipeline = append(pipeline, orderLookupStages()...)
	pipeline = append(pipeline, bson.M{"$sort": bson.M{"createdAt": -1}})
	return r.aggregateExpanded(ctx, pipeline)
}

func (r *LogisticRepository) aggregateExpanded(ctx context.Context, pipeline []bson.M) ([]*domain.LogisticWithOrder, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*domain.LogisticWithOrder
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID retrieves a shipment record by internal id
func (r *LogisticRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Logistic, error) {
	var logistic domain.Logistic
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&logistic)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLogisticNotFound
		}
		return nil, err
	}
	return &logistic, nil
}

// UpdateFields applies a partial update and returns the updated record
func (r *LogisticRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.LogisticUpdate) (*domain.Logistic, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.OrderID != nil {
		set["orderId"] = *update.OrderID
	}
	if update.CourierPartnerDetails != nil {
		set["courierPartnerDetails"] = *update.CourierPartnerDetails
	}
	if update.PaymentType != nil {
		set["paymentType"] = *update.PaymentType
	}
	if update.ItemsDispatched != nil {
		set["itemsDispatched"] = update.ItemsDispatched
	}
	if update.DocketNumber != nil {
		set["docketNumber"] = *update.DocketNumber
	}
	if update.MaterialDispatchedDate != nil {
		set["materialDispatchedDate"] = *update.MaterialDispatchedDate
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Logistic
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLogisticNotFound
		}
		return nil, err
	}

	event := &domain.LogisticEntryUpdatedEvent{
		LogisticID: id.Hex(),
		UpdatedAt:  updated.UpdatedAt,
	}
	if err := r.saveDomainEvents(ctx, id.Hex(), []domain.DomainEvent{event}); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteByID removes a shipment record and returns the deleted document
func (r *LogisticRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Logistic, error) {
	var deleted domain.Logistic
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLogisticNotFound
		}
		return nil, err
	}

	event := &domain.LogisticEntryDeletedEvent{
		LogisticID:   id.Hex(),
		DocketNumber: deleted.DocketNumber,
		DeletedAt:    time.Now().UTC(),
	}
	if err := r.saveDomainEvents(ctx, id.Hex(), []domain.DomainEvent{event}); err != nil {
		return nil, err
	}

	return &deleted, nil
}

// GetOutboxRepository returns the outbox repository
func (r *LogisticRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}

// InvoiceRepository implements domain.InvoiceRepository
type InvoiceRepository struct {
	collection   *mongo.Collection
	db           *mongo.Database
	outboxRepo   *outboxMongo.OutboxRepository
	eventFactory *cloudevents.EventFactory
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *InvoiceRepository {
	collection := db.Collection("invoices")
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "orderId", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "invoiceNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "issuedDate", Value: -1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
	_ = outboxRepo.EnsureIndexes(ctx)

	return &InvoiceRepository{
		collection:   collection,
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
}

// Save persists an invoice together with its pending domain events
func (r *InvoiceRepository) Save(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"_id": invoice.ID}
		update := bson.M{"$set": invoice}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return nil, fmt.Errorf("failed to save invoice: %w", err)
		}

		if err := r.saveDomainEvents(sessCtx, invoice.ID.Hex(), invoice.DomainEvents()); err != nil {
			return nil, err
		}

		invoice.ClearDomainEvents()
		return nil, nil
	})

	return err
}

func (r *InvoiceRepository) saveDomainEvents(ctx context.Context, aggregateID string, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		cloudEvent := r.eventFactory.CreateEvent(ctx, event.EventType(), "invoice/"+aggregateID, event)

		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			aggregateID,
			"Invoice",
			kafka.Topics.InvoicesEvents,
			cloudEvent,
		)
		if err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		outboxEvents = append(outboxEvents, outboxEvent)
	}

	if err := r.outboxRepo.SaveAll(ctx, outboxEvents); err != nil {
		return fmt.Errorf("failed to save outbox events: %w", err)
	}
	return nil
}

// FindAll retrieves all invoices with their orders expanded
func (r *InvoiceRepository) FindAll(ctx context.Context) ([]*domain.InvoiceWithOrder, error) {
	pipeline := append([]bson.M{}, orderLookupStages()...)
	pipeline = append(pipeline, bson.M{"$sort": bson.M{"createdAt": -1}})
	return r.aggregateExpanded(ctx, pipeline)
}

// FindByOrderRef retrieves invoices for an order reference
func (r *InvoiceRepository) FindByOrderRef(ctx context.Context, orderRef string) ([]*domain.InvoiceWithOrder, error) {
	pipeline := []bson.M{{"$match": orderRefFilter(orderRef)}}
	pipeline = append(pipeline, orderLookupStages()...)
	pipeline = append(pipeline, bson.M{"$sort": bson.M{"createdAt": -1}})
	return r.aggregateExpanded(ctx, pipeline)
}

func (r *InvoiceRepository) aggregateExpanded(ctx context.Context, pipeline []bson.M) ([]*domain.InvoiceWithOrder, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invoices []*domain.InvoiceWithOrder
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByID retrieves an invoice by internal id
func (r *InvoiceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// UpdateFields applies a partial update and returns the updated invoice
func (r *InvoiceRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.InvoiceUpdate) (*domain.Invoice, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.OrderID != nil {
		set["orderId"] = *update.OrderID
	}
	if update.InvoiceNumber != nil {
		set["invoiceNumber"] = *update.InvoiceNumber
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.IssuedDate != nil {
		set["issuedDate"] = *update.IssuedDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Invoice
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	event := &domain.InvoiceUpdatedEvent{
		InvoiceID: id.Hex(),
		UpdatedAt: updated.UpdatedAt,
	}
	if err := r.saveDomainEvents(ctx, id.Hex(), []domain.DomainEvent{event}); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteByID removes an invoice and returns the deleted document
func (r *InvoiceRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Invoice, error) {
	var deleted domain.Invoice
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	event := &domain.InvoiceDeletedEvent{
		InvoiceID:     id.Hex(),
		InvoiceNumber: deleted.InvoiceNumber,
		DeletedAt:     time.Now().UTC(),
	}
	if err := r.saveDomainEvents(ctx, id.Hex(), []domain.DomainEvent{event}); err != nil {
		return nil, err
	}

	return &deleted, nil
}

// GetOutboxRepository returns the outbox repository
func (r *InvoiceRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}

// ProductRepository implements domain.ProductRepository
type ProductRepository struct {
	collection   *mongo.Collection
	db           *mongo.Database
	outboxRepo   *outboxMongo.OutboxRepository
	eventFactory *cloudevents.EventFactory
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *ProductRepository {
	collection := db.Collection("products")
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
	_ = outboxRepo.EnsureIndexes(ctx)

	return &ProductRepository{
		collection:   collection,
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
}

// Save persists a product together with its pending domain events
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"_id": product.ID}
		update := bson.M{"$set": product}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return nil, fmt.Errorf("failed to save product: %w", err)
		}

		if err := r.saveDomainEvents(sessCtx, product.ID.Hex(), product.DomainEvents()); err != nil {
			return nil, err
		}

		product.ClearDomainEvents()
		return nil, nil
	})

	return err
}

func (r *ProductRepository) saveDomainEvents(ctx context.Context, aggregateID string, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		cloudEvent := r.eventFactory.CreateEvent(ctx, event.EventType(), "product/"+aggregateID, event)

		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			aggregateID,
			"Product",
			kafka.Topics.ProductsEvents,
			cloudEvent,
		)
		if err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		outboxEvents = append(outboxEvents, outboxEvent)
	}

	if err := r.outboxRepo.SaveAll(ctx, outboxEvents); err != nil {
		return fmt.Errorf("failed to save outbox events: %w", err)
	}
	return nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID retrieves a product by internal id
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpdateFields applies a partial update and returns the updated product
func (r *ProductRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.SKU != nil {
		set["sku"] = *update.SKU
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	event := &domain.ProductUpdatedEvent{
		ProductID: id.Hex(),
		UpdatedAt: updated.UpdatedAt,
	}
	if err := r.saveDomainEvents(ctx, id.Hex(), []domain.DomainEvent{event}); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteByID removes a product and returns the deleted document
func (r *ProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var deleted domain.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	event := &domain.ProductDeletedEvent{
		ProductID: id.Hex(),
		SKU:       deleted.SKU,
		DeletedAt: time.Now().UTC(),
	}
	if err := r.saveDomainEvents(ctx, id.Hex(), []domain.DomainEvent{event}); err != nil {
		return nil, err
	}

	return &deleted, nil
}

// GetOutboxRepository returns the outbox repository
func (r *ProductRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}
