package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the slice of *mongo.Collection the repositories use.
// *mongo.Collection satisfies it directly.
type Collection interface {
	Name() string
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

var _ Collection = (*mongo.Collection)(nil)

// Field names of the cities collection
const (
	fieldID        = "_id"
	fieldName      = "name"
	fieldCountryID = "country.$id"
)
