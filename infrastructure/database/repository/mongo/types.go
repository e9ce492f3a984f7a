package mongo

import (
	"time"

	"certschool.io/infrastructure/database"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository is the typed gateway over one collection. Every call is
// bounded by Timeout when it is set.
type MongoRepository[T database.BaseModel] struct {
	Model   *mongo.Collection
	Timeout time.Duration
}

type FindOptions struct {
	Projection *interface{}
	Sort       *interface{}
	Skip       *int64
	Limit      *int64
}
