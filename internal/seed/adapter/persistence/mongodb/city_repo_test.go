package mongodb

import (
	"context"
	"io"
	"testing"
	"time"

	"cityseed/internal/seed/domain/model"
	apperrors "cityseed/internal/shared/errors"
	"cityseed/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func quietLogger() logger.Logger {
	return logger.NewLoggerWithWriter("error", "text", io.Discard)
}

func peruCities(countryID primitive.ObjectID, now time.Time) []*model.City {
	ref := model.NewCountryRef("countries", countryID)
	names := model.PeruCities()
	cities := make([]*model.City, len(names))
	for i, name := range names {
		cities[i] = model.NewCity(name, ref, now)
	}
	return cities
}

func TestCityRepository_InsertMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	countryID, err := primitive.ObjectIDFromHex("507f1f77bcf86cd799439021")
	require.NoError(t, err)

	mt.Run("success", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())
		cities := peruCities(countryID, time.Now())

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		res, err := repo.InsertMany(context.Background(), cities)
		require.NoError(t, err)
		assert.Equal(t, 10, res.Count())

		seen := map[primitive.ObjectID]bool{}
		for i, city := range cities {
			assert.False(t, city.ID.IsZero(), "city %d should carry its generated id", i)
			assert.Equal(t, res.InsertedIDs[i], city.ID)
			seen[city.ID] = true
		}
		assert.Len(t, seen, 10)
	})

	mt.Run("sends one insert command with every document", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := repo.InsertMany(context.Background(), peruCities(countryID, now))
		require.NoError(t, err)

		started := mt.GetAllStartedEvents()
		require.Len(t, started, 1)
		assert.Equal(t, "insert", started[0].CommandName)

		docs, err := started[0].Command.Lookup("documents").Array().Values()
		require.NoError(t, err)
		require.Len(t, docs, 10)

		first := docs[0].Document()
		assert.Equal(t, "Lima", first.Lookup("name").StringValue())
		assert.True(t, now.Equal(first.Lookup("createdAt").Time()))
		assert.Equal(t, "countries", first.Lookup("country", "$ref").StringValue())
		assert.Equal(t, countryID, first.Lookup("country", "$id").ObjectID())
		assert.Equal(t, "Ica", docs[9].Document().Lookup("name").StringValue())
	})

	mt.Run("duplicate key maps to conflict", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.InsertMany(context.Background(), peruCities(countryID, time.Now()))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})

	mt.Run("command error maps to infrastructure", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "insert error",
		}))

		cities := peruCities(countryID, time.Now())
		_, err := repo.InsertMany(context.Background(), cities)
		require.Error(t, err)
		assert.True(t, apperrors.IsInfrastructure(err))
		for _, city := range cities {
			assert.True(t, city.ID.IsZero())
		}
	})

	mt.Run("empty list is rejected without a round trip", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())

		_, err := repo.InsertMany(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.ErrorIs(t, err, apperrors.ErrEmptyCityList)
		assert.Empty(t, mt.GetAllStartedEvents())
	})
}

func TestCityRepository_CountByCountry(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	countryID := primitive.NewObjectID()

	mt.Run("success", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int32(1)},
			{Key: "n", Value: int32(20)},
		}))

		n, err := repo.CountByCountry(context.Background(), countryID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), n)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "aggregate", started.CommandName)
		match := started.Command.Lookup("pipeline").Array().Index(0).Value().Document().Lookup("$match").Document()
		assert.Equal(t, countryID, match.Lookup(fieldCountryID).ObjectID())
	})

	mt.Run("error", func(mt *mtest.T) {
		repo := NewCityRepository(mt.Coll, quietLogger())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "aggregate error"}))

		_, err := repo.CountByCountry(context.Background(), countryID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInfrastructure(err))
	})
}
