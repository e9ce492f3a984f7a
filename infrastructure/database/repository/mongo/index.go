package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"certschool.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoRepository[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, repo.Timeout)
}

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	if _, err := repo.Model.InsertOne(ctx, parsed); err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return repo.FindOneByFilter(ctx, map[string]interface{}{"_id": id})
}

// FindOneByFilter returns nil, nil when nothing matches.
func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]interface{}, opts ...FindOptions) (*T, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	findOpts := options.FindOne()
	if len(opts) != 0 {
		if opts[0].Projection != nil {
			findOpts.SetProjection(*opts[0].Projection)
		}
		if opts[0].Sort != nil {
			findOpts.SetSort(*opts[0].Sort)
		}
		if opts[0].Skip != nil {
			findOpts.SetSkip(*opts[0].Skip)
		}
	}
	var result T
	err := repo.Model.FindOne(ctx, filter, findOpts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]interface{}, opts ...FindOptions) (*[]T, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	findOpts := options.Find()
	if len(opts) != 0 {
		if opts[0].Projection != nil {
			findOpts.SetProjection(*opts[0].Projection)
		}
		if opts[0].Sort != nil {
			findOpts.SetSort(*opts[0].Sort)
		}
		if opts[0].Skip != nil {
			findOpts.SetSkip(*opts[0].Skip)
		}
		if opts[0].Limit != nil {
			findOpts.SetLimit(*opts[0].Limit)
		}
	}
	cursor, err := repo.Model.Find(ctx, filter, findOpts)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(ctx context.Context, filter map[string]interface{}) (int64, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	count, err := repo.Model.CountDocuments(ctx, filter)
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(ctx context.Context, id string, payload map[string]any) (int64, error) {
	return repo.UpdatePartialByFilter(ctx, map[string]interface{}{"_id": id}, payload)
}

// UpdatePartialByFilter sets payload on the first matching document and
// returns the number of documents matched.
func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, payload map[string]any) (int64, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range payload {
		set[k] = v
	}
	result, err := repo.Model.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return 0, err
	}
	return result.MatchedCount, nil
}

// UpsertOneByFilter applies set to the document matching filter, creating it
// from insert when it does not exist. Fields of insert that are not in set
// are only written on insert, so _id and createdAt survive repeated upserts.
func (repo *MongoRepository[T]) UpsertOneByFilter(ctx context.Context, filter map[string]interface{}, set map[string]any, insert T) (*T, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	raw, err := bson.Marshal(insert.ParseModel())
	if err != nil {
		return nil, err
	}
	onInsert := bson.M{}
	if err = bson.Unmarshal(raw, &onInsert); err != nil {
		return nil, err
	}
	setDoc := bson.M{"updatedAt": time.Now()}
	for k, v := range set {
		setDoc[k] = v
	}
	for k := range setDoc {
		delete(onInsert, k)
	}
	for k := range filter {
		delete(onInsert, k)
	}

	var result T
	err = repo.Model.FindOneAndUpdate(ctx, filter, bson.M{
		"$set":         setDoc,
		"$setOnInsert": onInsert,
	}, options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(&result)
	if err != nil {
		logger.Error("mongo error occured while running UpsertOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}

// IsDuplicateKeyOn reports whether err is a unique violation of the named index.
func IsDuplicateKeyOn(err error, indexName string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), indexName)
}
