package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderManifest is the normalized record persisted per accepted order event.
// All source fields are nullable: upstream payloads vary and a missing or
// unparseable field never blocks the record.
type OrderManifest struct {
	ID         uuid.UUID `json:"id"`
	OrderID    *string   `json:"order_id"`
	Email      *string   `json:"email"`
	TotalPrice *float64  `json:"total_price"`
	Currency   *string   `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}
