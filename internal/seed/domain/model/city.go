package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// City is a document of the cities collection.
type City struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	Country   CountryRef         `json:"country" bson:"country"`
}

// CountryRef is a DBRef-style pointer to a document of the countries collection.
// The city does not own the referenced country.
type CountryRef struct {
	Ref string             `json:"$ref" bson:"$ref"`
	ID  primitive.ObjectID `json:"$id" bson:"$id"`
}

// NewCountryRef builds a reference to id inside collection.
func NewCountryRef(collection string, id primitive.ObjectID) CountryRef {
	return CountryRef{Ref: collection, ID: id}
}

// NewCity builds a city without an identifier; the store assigns one on insert.
func NewCity(name string, country CountryRef, createdAt time.Time) *City {
	return &City{
		Name:      name,
		CreatedAt: createdAt,
		Country:   country,
	}
}
