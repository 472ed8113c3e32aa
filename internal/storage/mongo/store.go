// Package mongo implements storage.CollectionStore on MongoDB.
package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pcbxpress/internal/storage"
	"pcbxpress/pkg/model"
)

type collectionStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an already-connected client and database.
func New(client *mongo.Client, db *mongo.Database) storage.CollectionStore {
	return &collectionStore{client: client, db: db}
}

// Connect dials MongoDB and returns a store over the named database.
func Connect(ctx context.Context, uri string, database string) (storage.CollectionStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return New(client, client.Database(database)), nil
}

func (s *collectionStore) Insert(ctx context.Context, collection string, q *model.Quote) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	_, err := s.db.Collection(collection).InsertOne(ctx, q)
	if mongo.IsDuplicateKeyError(err) {
		// Only a quote_id collision is recoverable by the creation loop;
		// any other unique-index violation propagates as a storage failure.
		if strings.Contains(err.Error(), "quote_id") {
			return model.ErrDuplicateQuoteID
		}
	}
	return model.WrapStorage("insert", collection, err)
}

func (s *collectionStore) Find(ctx context.Context, collection string, query storage.Query) ([]*model.Quote, error) {
	findOpts := options.Find()
	if query.Limit > 0 {
		findOpts.SetLimit(query.Limit)
	}
	if len(query.Sort) > 0 {
		findOpts.SetSort(makeSortBSON(query.Sort))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, makeFilterBSON(query), findOpts)
	if err != nil {
		return nil, model.WrapStorage("find", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []*model.Quote
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, model.WrapStorage("find", collection, err)
	}
	return docs, nil
}

func (s *collectionStore) Count(ctx context.Context, collection string, query storage.Query) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, makeFilterBSON(query))
	if err != nil {
		return 0, model.WrapStorage("count", collection, err)
	}
	return n, nil
}

func (s *collectionStore) FindByID(ctx context.Context, collection string, id string) (*model.Quote, error) {
	var doc model.Quote
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, model.WrapStorage("findById", collection, err)
	}
	return &doc, nil
}

func (s *collectionStore) UpdateByID(ctx context.Context, collection string, id string, patch map[string]interface{}, returnNew bool) (*model.Quote, error) {
	set := bson.M{}
	for k, v := range patch {
		set[mapField(k)] = v
	}

	updateOpts := options.FindOneAndUpdate()
	if returnNew {
		updateOpts.SetReturnDocument(options.After)
	} else {
		updateOpts.SetReturnDocument(options.Before)
	}

	var doc model.Quote
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, updateOpts).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, model.WrapStorage("updateById", collection, err)
	}
	return &doc, nil
}

func (s *collectionStore) DeleteByID(ctx context.Context, collection string, id string) (*model.Quote, error) {
	var doc model.Quote
	err := s.db.Collection(collection).FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, model.WrapStorage("deleteById", collection, err)
	}
	return &doc, nil
}

func (s *collectionStore) DeleteMany(ctx context.Context, collection string, query storage.Query) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, makeFilterBSON(query))
	if err != nil {
		return 0, model.WrapStorage("deleteMany", collection, err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique quote_id index that backs the identifier
// collision contract, plus the created_at index the day-scoped sequence
// counting and default sort lean on.
func (s *collectionStore) EnsureIndexes(ctx context.Context, collections []string) error {
	for _, name := range collections {
		coll := s.db.Collection(name)

		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "quote_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "quote_id", Value: bson.D{{Key: "$exists", Value: true}}}}),
		})
		if err != nil {
			return model.WrapStorage("ensureIndexes", name, err)
		}

		_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		})
		if err != nil {
			return model.WrapStorage("ensureIndexes", name, err)
		}
	}
	return nil
}

func (s *collectionStore) Close(ctx context.Context) error {
	if s.client != nil {
		return s.client.Disconnect(ctx)
	}
	return nil
}
