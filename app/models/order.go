package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of order states. Pending is the only initial
// state; completed and cancelled are terminal.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is one of the defined statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in state s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderPending && (next == OrderCompleted || next == OrderCancelled)
}

// OrderItem is an immutable snapshot of a product at order time. Later
// product mutations must never alter it.
type OrderItem struct {
	ProductID          primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductName        string             `bson:"product_name" json:"product_name"`
	ProductDescription string             `bson:"product_description" json:"product_description"`
	Price              float64            `bson:"price" json:"price"` // unit price at order time
	Quantity           int                `bson:"quantity" json:"quantity"`
	Subtotal           float64            `bson:"subtotal" json:"subtotal"`
}

// Order groups item snapshots between one buyer and one seller.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuyerID    primitive.ObjectID `bson:"buyer_id" json:"buyer_id"`
	SellerID   primitive.ObjectID `bson:"seller_id" json:"seller_id"`
	Items      []OrderItem        `bson:"items" json:"items"`
	TotalPrice float64            `bson:"total_price" json:"total_price"`
	Status     OrderStatus        `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
