package mongodb

import (
	"context"

	"cityseed/internal/seed/domain/model"
	"cityseed/internal/seed/domain/repository"
	apperrors "cityseed/internal/shared/errors"
	"cityseed/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const cityRepoComponent = "mongo-city-repository"

// CityRepository implements repository.CityRepository on a MongoDB collection
type CityRepository struct {
	collection Collection
	log        logger.Logger
}

var _ repository.CityRepository = (*CityRepository)(nil)

// NewCityRepository creates a city repository on top of col
func NewCityRepository(col Collection, log logger.Logger) *CityRepository {
	if log == nil {
		log = logger.NewLogger()
	}
	return &CityRepository{
		collection: col,
		log:        log.WithComponent(cityRepoComponent),
	}
}

// InsertMany inserts all cities with one insert command. No index is created, so
// running it twice stores every city twice.
func (r *CityRepository) InsertMany(ctx context.Context, cities []*model.City) (*repository.InsertResult, error) {
	if len(cities) == 0 {
		return nil, apperrors.NewValidationError("no cities to insert").
			WithCause(apperrors.ErrEmptyCityList).
			WithComponent(cityRepoComponent)
	}

	documents := make([]interface{}, len(cities))
	for i, city := range cities {
		documents[i] = city
	}

	res, err := r.collection.InsertMany(ctx, documents)
	result := toInsertResult(res)
	if err != nil {
		log := r.log.WithContext(ctx).WithFields(map[string]interface{}{
			"collection":   r.collection.Name(),
			"requested":    len(cities),
			"acknowledged": result.Count(),
		})
		log.Errorf("Failed to insert cities: %v", err)

		if mongo.IsDuplicateKeyError(err) {
			return result, apperrors.NewConflictError("duplicate city document").
				WithCause(err).
				WithComponent(cityRepoComponent)
		}
		return result, apperrors.NewInfrastructureError("bulk insert into "+r.collection.Name()+" failed").
			WithCause(err).
			WithComponent(cityRepoComponent).
			WithDetail("acknowledged", result.Count())
	}

	for i, id := range result.InsertedIDs {
		if i < len(cities) {
			cities[i].ID = id
		}
	}

	r.log.WithContext(ctx).WithFields(map[string]interface{}{
		"collection": r.collection.Name(),
		"inserted":   result.Count(),
	}).Debug("Cities inserted")

	return result, nil
}

// CountByCountry counts the cities whose back reference points at countryID
func (r *CityRepository) CountByCountry(ctx context.Context, countryID primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{fieldCountryID: countryID})
	if err != nil {
		return 0, apperrors.NewInfrastructureError("count cities by country failed").
			WithCause(err).
			WithComponent(cityRepoComponent)
	}
	return n, nil
}

func toInsertResult(res *mongo.InsertManyResult) *repository.InsertResult {
	out := &repository.InsertResult{}
	if res == nil {
		return out
	}
	out.InsertedIDs = make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			out.InsertedIDs = append(out.InsertedIDs, oid)
		}
	}
	return out
}
