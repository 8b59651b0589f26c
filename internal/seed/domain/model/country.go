package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Country is the subset of a countries document the seeder reads.
type Country struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

// DefaultCountryNames are tried in order when no country id is configured.
var DefaultCountryNames = []string{"Perú", "Peru"}
