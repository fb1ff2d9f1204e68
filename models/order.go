package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	OrderID   uuid.UUID `db:"order_id" json:"order_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Note      *string   `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type OrderItem struct {
	ItemID      uuid.UUID `db:"item_id" json:"item_id"`
	OrderID     uuid.UUID `db:"order_id" json:"order_id"`
	Seq         int       `db:"seq" json:"-"`
	Description string    `db:"description" json:"description"`
	Qty         int32     `db:"qty" json:"qty"`
	Price       int32     `db:"price" json:"price"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewOrderItem is a line item as submitted by the client. Price is in minor
// currency units.
type NewOrderItem struct {
	Description string `json:"description" binding:"required"`
	Qty         int32  `json:"qty" binding:"min=0"`
	Price       int32  `json:"price" binding:"min=0"`
}

type CreateOrderRequest struct {
	Note  *string        `json:"note"`
	Items []NewOrderItem `json:"items" binding:"required,min=1,dive"`
}

// OrderDetails is the read view of an order. Items is nil in list
// responses, which drops the key, and only populated for a single-order lookup.
type OrderDetails struct {
	OrderID    uuid.UUID           `json:"order_id"`
	UserID     uuid.UUID           `json:"user_id"`
	Note       *string             `json:"note"`
	OrderTotal int64               `json:"order_total"`
	OrderAt    time.Time           `json:"order_at"`
	Items      *[]OrderItemDetails `json:"items,omitempty"`
}

type OrderItemDetails struct {
	ItemID      uuid.UUID `json:"item_id"`
	Description string    `json:"description"`
	Qty         int32     `json:"qty"`
	Price       int32     `json:"price"`
}

type OrderEvent struct {
	Type     string    `json:"type"` // created, user_registered
	OrderID  uuid.UUID `json:"order_id"`
	UserID   uuid.UUID `json:"user_id"`
	Total    int64     `json:"total"`
	Items    int       `json:"items"`
	Occurred time.Time `json:"occurred"`
}

const (
	EventOrderCreated   = "created"
	EventUserRegistered = "user_registered"
)
