package mongodb

import (
	"context"
	"testing"

	apperrors "cityseed/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCountryRepository_CollectionName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("uses the collection name as ref", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		assert.Equal(t, "countries", repo.CollectionName())
	})
}

func TestCountryRepository_Exists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	countryID, err := primitive.ObjectIDFromHex("507f1f77bcf86cd799439021")
	require.NoError(t, err)

	mt.Run("found", func(mt *mtest.T) {
		col := mt.DB.Collection("countries")
		repo := NewCountryRepository(col, quietLogger())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".countries", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int32(1)},
			{Key: "n", Value: int32(1)},
		}))

		ok, err := repo.Exists(context.Background(), countryID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".countries", mtest.FirstBatch))

		ok, err := repo.Exists(context.Background(), countryID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	mt.Run("error", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "aggregate error"}))

		_, err := repo.Exists(context.Background(), countryID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInfrastructure(err))
	})
}

func TestCountryRepository_FindIDByName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	countryID := primitive.NewObjectID()

	mt.Run("first name matches", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		ns := mt.DB.Name() + ".countries"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: countryID},
			{Key: "name", Value: "Perú"},
		}))

		id, err := repo.FindIDByName(context.Background(), "Perú", "Peru")
		require.NoError(t, err)
		assert.Equal(t, countryID, id)
		assert.Len(t, mt.GetAllStartedEvents(), 1)
	})

	mt.Run("falls back to the next name", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		ns := mt.DB.Name() + ".countries"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: countryID},
				{Key: "name", Value: "Peru"},
			}),
		)

		id, err := repo.FindIDByName(context.Background(), "Perú", "Peru")
		require.NoError(t, err)
		assert.Equal(t, countryID, id)

		started := mt.GetAllStartedEvents()
		require.Len(t, started, 2)
		assert.Equal(t, "Perú", started[0].Command.Lookup("filter", "name").StringValue())
		assert.Equal(t, "Peru", started[1].Command.Lookup("filter", "name").StringValue())
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		ns := mt.DB.Name() + ".countries"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		id, err := repo.FindIDByName(context.Background(), "Peru")
		require.Error(t, err)
		assert.True(t, id.IsZero())
		assert.True(t, apperrors.IsNotFound(err))
		assert.ErrorIs(t, err, apperrors.ErrCountryNotFound)
	})

	mt.Run("lookup error", func(mt *mtest.T) {
		repo := NewCountryRepository(mt.DB.Collection("countries"), quietLogger())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "find error"}))

		_, err := repo.FindIDByName(context.Background(), "Peru")
		require.Error(t, err)
		assert.True(t, apperrors.IsInfrastructure(err))
	})
}
