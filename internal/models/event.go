package models

import "time"

// Product change event types.
const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// ProductEvent is published after a product write has been committed.
type ProductEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	ProductID  int64     `json:"product_id"`
	Product    *Product  `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}
