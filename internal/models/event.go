package models

import "time"

// Product lifecycle event types.
const (
	EventProductCreated = "product.created"
	EventProductEdited  = "product.edited"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a change to a stored product.
type ProductEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ProductDBID uint      `json:"productDbId"`
	ProductID   int64     `json:"productId"`
	OccurredAt  time.Time `json:"occurredAt"`
}
