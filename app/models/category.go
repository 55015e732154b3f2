package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category name length bounds, inclusive.
const (
	CategoryNameMin = 3
	CategoryNameMax = 50
)

// Category groups products. Name is unique.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
