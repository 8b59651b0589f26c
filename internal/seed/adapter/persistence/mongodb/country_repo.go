package mongodb

import (
	"context"
	"errors"

	"cityseed/internal/seed/domain/model"
	"cityseed/internal/seed/domain/repository"
	apperrors "cityseed/internal/shared/errors"
	"cityseed/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countryRepoComponent = "mongo-country-repository"

// CountryRepository implements repository.CountryRepository on a MongoDB collection
type CountryRepository struct {
	collection Collection
	log        logger.Logger
}

var _ repository.CountryRepository = (*CountryRepository)(nil)

// NewCountryRepository creates a country repository on top of col
func NewCountryRepository(col Collection, log logger.Logger) *CountryRepository {
	if log == nil {
		log = logger.NewLogger()
	}
	return &CountryRepository{
		collection: col,
		log:        log.WithComponent(countryRepoComponent),
	}
}

// CollectionName returns the name used as $ref in city documents
func (r *CountryRepository) CollectionName() string {
	return r.collection.Name()
}

// Exists reports whether a country with the given id is stored
func (r *CountryRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{fieldID: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperrors.NewInfrastructureError("country lookup failed").
			WithCause(err).
			WithComponent(countryRepoComponent)
	}
	return n > 0, nil
}

// FindIDByName tries each name in order and returns the first match
func (r *CountryRepository) FindIDByName(ctx context.Context, names ...string) (primitive.ObjectID, error) {
	projection := options.FindOne().SetProjection(bson.M{fieldID: 1, fieldName: 1})

	for _, name := range names {
		var country model.Country
		err := r.collection.FindOne(ctx, bson.M{fieldName: name}, projection).Decode(&country)
		if err == nil {
			r.log.WithContext(ctx).WithFields(map[string]interface{}{
				"name":       name,
				"country_id": country.ID.Hex(),
			}).Debug("Country resolved by name")
			return country.ID, nil
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		return primitive.NilObjectID, apperrors.NewInfrastructureError("country lookup failed").
			WithCause(err).
			WithComponent(countryRepoComponent).
			WithDetail("name", name)
	}

	return primitive.NilObjectID, apperrors.NewNotFoundError("country").
		WithCause(apperrors.ErrCountryNotFound).
		WithComponent(countryRepoComponent).
		WithDetail("names", names)
}
