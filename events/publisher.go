package events

import (
	"context"
	"time"

	"go-bank-ledger/model"

	"github.com/google/uuid"
)

const TransactionCompleted = "ledger.transaction.completed"

// TransactionEvent announces a committed ledger transaction to downstream consumers.
type TransactionEvent struct {
	EventID     uuid.UUID          `json:"event_id"`
	EventType   string             `json:"event_type"`
	OccurredAt  time.Time          `json:"occurred_at"`
	Currency    string             `json:"currency"`
	Transaction *model.Transaction `json:"transaction"`
}

func NewTransactionEvent(txn *model.Transaction, currency string) TransactionEvent {
	return TransactionEvent{
		EventID:     uuid.New(),
		EventType:   TransactionCompleted,
		OccurredAt:  time.Now().UTC(),
		Currency:    currency,
		Transaction: txn,
	}
}

// Publisher hands committed transaction events to a broker. Publishing happens after the
// ledger commit, so a failure never undoes the transaction it describes.
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, TransactionEvent) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }
