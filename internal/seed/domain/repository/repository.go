package repository

import (
	"context"

	"cityseed/internal/seed/domain/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertResult is what the store acknowledged for a bulk insert.
type InsertResult struct {
	InsertedIDs []primitive.ObjectID
}

// Count returns the number of acknowledged documents.
func (r *InsertResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.InsertedIDs)
}

// CityRepository persists city documents.
type CityRepository interface {
	// InsertMany submits all cities in a single store request. On success the
	// generated identifiers are written back to the given cities.
	InsertMany(ctx context.Context, cities []*model.City) (*InsertResult, error)
	// CountByCountry counts cities whose back reference points at countryID.
	CountByCountry(ctx context.Context, countryID primitive.ObjectID) (int64, error)
}

// CountryRepository reads the countries collection.
type CountryRepository interface {
	// CollectionName is the collection cities reference through $ref.
	CollectionName() string
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	// FindIDByName returns the id of the first name that matches, in order.
	FindIDByName(ctx context.Context, names ...string) (primitive.ObjectID, error)
}
