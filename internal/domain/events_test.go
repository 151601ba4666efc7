package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogisticsEvents(t *testing.T) {
	now := time.Now().UTC()

	created := &LogisticEntryCreatedEvent{
		LogisticID:   "65f1c0ffee00000000000001",
		OrderRef:     "ORD-2024-0001",
		DocketNumber: "BD-9087234",
		PaymentType:  "prepaid",
		Amount:       250,
		DispatchedAt: now.Add(-24 * time.Hour),
		CreatedAt:    now,
	}
	assert.Equal(t, "commerce.logistics.entry-created", created.EventType())
	assert.Equal(t, created.CreatedAt, created.OccurredAt())

	updated := &LogisticEntryUpdatedEvent{
		LogisticID: "65f1c0ffee00000000000001",
		UpdatedAt:  now,
	}
	assert.Equal(t, "commerce.logistics.entry-updated", updated.EventType())
	assert.Equal(t, updated.UpdatedAt, updated.OccurredAt())

	deleted := &LogisticEntryDeletedEvent{
		LogisticID:   "65f1c0ffee00000000000001",
		DocketNumber: "BD-9087234",
		DeletedAt:    now,
	}
	assert.Equal(t, "commerce.logistics.entry-deleted", deleted.EventType())
	assert.Equal(t, deleted.DeletedAt, deleted.OccurredAt())

	batch := &LogisticsBatchIngestedEvent{
		RequestedItems: 3,
		CreatedItems:   3,
		DocketNumbers:  []string{"BD-1", "BD-2", "BD-3"},
		IngestedAt:     now,
	}
	assert.Equal(t, "commerce.logistics.batch-ingested", batch.EventType())
	assert.Equal(t, batch.IngestedAt, batch.OccurredAt())
}

func TestInvoiceEvents(t *testing.T) {
	now := time.Now().UTC()

	created := &InvoiceCreatedEvent{
		InvoiceID:     "65f1c0ffee00000000000002",
		InvoiceNumber: "INV-2024-042",
		OrderRef:      "ORD-2024-0001",
		Amount:        1499.50,
		Status:        "issued",
		CreatedAt:     now,
	}
	assert.Equal(t, "commerce.invoice.created", created.EventType())
	assert.Equal(t, created.CreatedAt, created.OccurredAt())

	updated := &InvoiceUpdatedEvent{InvoiceID: "65f1c0ffee00000000000002", UpdatedAt: now}
	assert.Equal(t, "commerce.invoice.updated", updated.EventType())
	assert.Equal(t, updated.UpdatedAt, updated.OccurredAt())

	deleted := &InvoiceDeletedEvent{
		InvoiceID:     "65f1c0ffee00000000000002",
		InvoiceNumber: "INV-2024-042",
		DeletedAt:     now,
	}
	assert.Equal(t, "commerce.invoice.deleted", deleted.EventType())
	assert.Equal(t, deleted.DeletedAt, deleted.OccurredAt())
}

func TestProductEvents(t *testing.T) {
	now := time.Now().UTC()

	created := &ProductCreatedEvent{
		ProductID: "65f1c0ffee00000000000003",
		SKU:       "BRK-STEEL-01",
		Name:      "Steel Bracket",
		Category:  "hardware",
		CreatedAt: now,
	}
	assert.Equal(t, "commerce.product.created", created.EventType())
	assert.Equal(t, created.CreatedAt, created.OccurredAt())

	updated := &ProductUpdatedEvent{ProductID: "65f1c0ffee00000000000003", UpdatedAt: now}
	assert.Equal(t, "commerce.product.updated", updated.EventType())
	assert.Equal(t, updated.UpdatedAt, updated.OccurredAt())

	deleted := &ProductDeletedEvent{
		ProductID: "65f1c0ffee00000000000003",
		SKU:       "BRK-STEEL-01",
		DeletedAt: now,
	}
	assert.Equal(t, "commerce.product.deleted", deleted.EventType())
	assert.Equal(t, deleted.DeletedAt, deleted.OccurredAt())
}
