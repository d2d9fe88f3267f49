package models

import "time"

// OrderStatus tracks an order after checkout
type OrderStatus string

// OrderStatus constants. Only OrderStatusPending is assigned by the bot;
// the rest are set by store staff.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Order represents a confirmed cart
type Order struct {
	ID       string     `json:"id"`
	SenderID string     `json:"sender_id"`
	Lines    []CartLine `json:"lines"` // snapshot of the cart at confirmation

	// Pricing
	Total int64 `json:"total"`

	// Status tracking
	Status OrderStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// ItemCount returns the combined quantity across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}
