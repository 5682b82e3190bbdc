// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/shopspring/decimal"

// TransactionQueueName is the durable queue transaction events are sent to.
const TransactionQueueName = "transaction.events"

// Event types.
const (
	TransactionCreated = "transaction.created"
	TransactionUpdated = "transaction.updated"
	TransactionDeleted = "transaction.deleted"
)

// TransactionEvent is published after a transaction has been created,
// updated or deleted.  It carries enough of the record for consumers to
// log or report on it without calling transaction-service back.
type TransactionEvent struct {
	Type          string          `json:"type"`
	TransactionID string          `json:"transaction_id"`
	CustomerName  string          `json:"customer_name"`
	LaneID        string          `json:"lane_id"`
	LaneZone      string          `json:"lane_zone"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OccurredAt    string          `json:"occurred_at"` // RFC3339, UTC
}
