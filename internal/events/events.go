// Package events publishes change notifications for ledger writes so that
// downstream consumers can refresh the monthly summaries they depend on.
package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Type names a change event. It doubles as the AMQP routing key.
type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
	BudgetCreated      Type = "budget.created"
	BudgetUpdated      Type = "budget.updated"
	BudgetDeleted      Type = "budget.deleted"
)

// Event describes one write to the ledger. Year and Month identify the
// summary period the write affects.
type Event struct {
	Type       Type            `json:"type"`
	ResourceID uint            `json:"resource_id"`
	CategoryID uint            `json:"category_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ToJSON encodes the event for the wire.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events. Implementations are best-effort: they log
// failures and never block the write that produced the event.
type Publisher interface {
	Publish(evt Event)
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) {}
