package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a registered business in the directory. legalNumber is unique
// across the collection (enforced by an index in the store layer).
type Company struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                 string             `bson:"name" json:"name"`
	LegalNumber          string             `bson:"legalNumber" json:"legalNumber"`
	IncorporationCountry string             `bson:"incorporationCountry" json:"incorporationCountry"`
	Website              string             `bson:"website,omitempty" json:"website,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
