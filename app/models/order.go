package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderPending    = "Pending"
	OrderSuccessful = "Successful"
	OrderFailed     = "Failed"
)

// OrderItem is one line item: a product reference and a quantity of at
// least one.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int64              `bson:"quantity" json:"quantity"`
}

// Order is created only by the order-placement flow and is immutable
// afterwards. TotalAmount is the sum of price*quantity captured at
// placement time.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Products    []OrderItem        `bson:"products" json:"products"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
