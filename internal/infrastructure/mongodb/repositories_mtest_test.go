package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/commerce-platform/backoffice-service/internal/domain"
	"github.com/commerce-platform/backoffice-service/pkg/cloudevents"
	outboxMongo "github.com/commerce-platform/backoffice-service/pkg/outbox/mongodb"
)

func TestRepositoryConstructors(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewOrderRepository(mt.DB)
		require.NotNil(t, repo)
	})

	mt.Run("logistic", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // logistics indexes
			mtest.CreateSuccessResponse(), // outbox indexes
		)
		repo := NewLogisticRepository(mt.DB, cloudevents.NewEventFactory(cloudevents.SourceBackoffice))
		require.NotNil(t, repo)
	})

	mt.Run("invoice", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)
		repo := NewInvoiceRepository(mt.DB, cloudevents.NewEventFactory(cloudevents.SourceBackoffice))
		require.NotNil(t, repo)
	})

	mt.Run("product", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)
		repo := NewProductRepository(mt.DB, cloudevents.NewEventFactory(cloudevents.SourceBackoffice))
		require.NotNil(t, repo)
	})
}

func TestOrderRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("resolve and list", func(mt *mtest.T) {
		coll := mt.DB.Collection("orders")
		repo := &OrderRepository{collection: coll}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()

		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "orderId", Value: "ORD-2024-0001"},
			{Key: "customerName", Value: "Acme Traders"},
		}))
		order, err := repo.FindByOrderRef(ctx, "ORD-2024-0001")
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, oid, order.ID)
		assert.Equal(t, "ORD-2024-0001", order.OrderRef)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		order, err = repo.FindByOrderRef(ctx, "ORD-MISSING")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.Nil(t, order)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "orderId", Value: "ORD-2024-0001"},
		}))
		order, err = repo.FindByID(ctx, oid)
		require.NoError(t, err)
		require.NotNil(t, order)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "orderId", Value: "ORD-2024-0002"},
		}))
		orders, err := repo.FindAll(ctx, domain.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, orders, 1)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "n", Value: int64(7)},
		}))
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}

func TestLogisticRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("read paths", func(mt *mtest.T) {
		coll := mt.DB.Collection("logistics")
		repo := &LogisticRepository{
			collection:   coll,
			db:           mt.DB,
			outboxRepo:   outboxMongo.NewOutboxRepository(mt.DB),
			eventFactory: cloudevents.NewEventFactory(cloudevents.SourceBackoffice),
		}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()

		id := primitive.NewObjectID()
		orderID := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "orderId", Value: orderID},
			{Key: "docketNumber", Value: "BD-9087234"},
		}))
		logistic, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, logistic)
		assert.Equal(t, "BD-9087234", logistic.DocketNumber)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err = repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrLogisticNotFound)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "orderId", Value: orderID},
			{Key: "docketNumber", Value: "BD-9087234"},
			{Key: "order", Value: bson.D{
				{Key: "_id", Value: orderID},
				{Key: "orderId", Value: "ORD-2024-0001"},
			}},
		}))
		expanded, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, expanded, 1)
		require.NotNil(t, expanded[0].Order)
		assert.Equal(t, "ORD-2024-0001", expanded[0].Order.OrderRef)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "orderId", Value: orderID},
			{Key: "docketNumber", Value: "BD-9087234"},
		}))
		byRef, err := repo.FindByOrderRef(ctx, orderID.Hex())
		require.NoError(t, err)
		require.Len(t, byRef, 1)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		byRef, err = repo.FindByOrderRef(ctx, "ORD-MISSING")
		require.NoError(t, err)
		assert.Empty(t, byRef)
	})

	mt.Run("update and delete", func(mt *mtest.T) {
		coll := mt.DB.Collection("logistics")
		repo := &LogisticRepository{
			collection:   coll,
			db:           mt.DB,
			outboxRepo:   outboxMongo.NewOutboxRepository(mt.DB),
			eventFactory: cloudevents.NewEventFactory(cloudevents.SourceBackoffice),
		}
		ctx := context.Background()

		id := primitive.NewObjectID()
		docket := "BD-NEW-001"

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "docketNumber", Value: docket},
			}}),
			mtest.CreateSuccessResponse(), // outbox insert
		)
		updated, err := repo.UpdateFields(ctx, id, domain.LogisticUpdate{DocketNumber: &docket})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, docket, updated.DocketNumber)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err = repo.UpdateFields(ctx, primitive.NewObjectID(), domain.LogisticUpdate{DocketNumber: &docket})
		assert.ErrorIs(t, err, domain.ErrLogisticNotFound)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "docketNumber", Value: docket},
			}}),
			mtest.CreateSuccessResponse(), // outbox insert
		)
		deleted, err := repo.DeleteByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, docket, deleted.DocketNumber)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err = repo.DeleteByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrLogisticNotFound)
	})
}

func TestLogisticRepository_SaveTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		coll := mt.DB.Collection("logistics")
		repo := &LogisticRepository{
			collection:   coll,
			db:           mt.DB,
			outboxRepo:   outboxMongo.NewOutboxRepository(mt.DB),
			eventFactory: cloudevents.NewEventFactory(cloudevents.SourceBackoffice),
		}

		order := &domain.Order{
			ID:       primitive.NewObjectID(),
			OrderRef: "ORD-2024-0001",
		}
		logistic, err := domain.NewLogistic(order, "BlueDart Express", domain.PaymentTypePrepaid, nil, "BD-9087234", time.Now().UTC(), 250)
		require.NoError(t, err)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(), // outbox insertMany
			mtest.CreateSuccessResponse(), // commitTransaction
		)

		err = repo.Save(context.Background(), logistic)
		require.NoError(t, err)
		assert.Empty(t, logistic.DomainEvents())
	})
}

func TestInvoiceRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find and update", func(mt *mtest.T) {
		coll := mt.DB.Collection("invoices")
		repo := &InvoiceRepository{
			collection:   coll,
			db:           mt.DB,
			outboxRepo:   outboxMongo.NewOutboxRepository(mt.DB),
			eventFactory: cloudevents.NewEventFactory(cloudevents.SourceBackoffice),
		}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()

		id := primitive.NewObjectID()
		orderID := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "orderId", Value: orderID},
			{Key: "invoiceNumber", Value: "INV-2024-042"},
		}))
		invoice, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, "INV-2024-042", invoice.InvoiceNumber)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err = repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "orderId", Value: orderID},
			{Key: "invoiceNumber", Value: "INV-2024-042"},
			{Key: "order", Value: bson.D{
				{Key: "_id", Value: orderID},
				{Key: "orderId", Value: "ORD-2024-0001"},
			}},
		}))
		expanded, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, expanded, 1)
		require.NotNil(t, expanded[0].Order)

		amount := 999.0
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "amount", Value: amount},
			}}),
			mtest.CreateSuccessResponse(),
		)
		updated, err := repo.UpdateFields(ctx, id, domain.InvoiceUpdate{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, amount, updated.Amount)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "invoiceNumber", Value: "INV-2024-042"},
			}}),
			mtest.CreateSuccessResponse(),
		)
		deleted, err := repo.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "INV-2024-042", deleted.InvoiceNumber)
	})
}

func TestProductRepository_MockOps(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("crud", func(mt *mtest.T) {
		coll := mt.DB.Collection("products")
		repo := &ProductRepository{
			collection:   coll,
			db:           mt.DB,
			outboxRepo:   outboxMongo.NewOutboxRepository(mt.DB),
			eventFactory: cloudevents.NewEventFactory(cloudevents.SourceBackoffice),
		}
		ctx := context.Background()
		ns := coll.Database().Name() + "." + coll.Name()

		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "sku", Value: "BRK-STEEL-01"},
			{Key: "name", Value: "Steel Bracket"},
		}))
		product, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "BRK-STEEL-01", product.SKU)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err = repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "sku", Value: "BRK-STEEL-01"},
		}))
		products, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)

		price := 13.75
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "price", Value: price},
			}}),
			mtest.CreateSuccessResponse(),
		)
		updated, err := repo.UpdateFields(ctx, id, domain.ProductUpdate{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, price, updated.Price)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "sku", Value: "BRK-STEEL-01"},
			}}),
			mtest.CreateSuccessResponse(),
		)
		deleted, err := repo.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "BRK-STEEL-01", deleted.SKU)
	})
}
