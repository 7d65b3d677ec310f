package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product belongs to a Company via a stored ObjectID reference. The reference
// is best-effort: deleting the company leaves the product in place, and reads
// expand Company to null when the reference dangles.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Category      string             `bson:"category" json:"category"`
	ProductAmount float64            `bson:"productAmount" json:"productAmount"`
	AmountUnit    string             `bson:"amountUnit" json:"amountUnit"`
	CompanyID     primitive.ObjectID `bson:"company" json:"-"`

	// Company carries the expanded reference on reads; it is never persisted.
	Company *Company `bson:"-" json:"company"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
