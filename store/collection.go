package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hsddev/cake-store/httperr"
)

// Collection is a typed view over one mongo collection, providing the
// CRUD surface the generic handlers are instantiated with.
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

// Native exposes the underlying driver collection for operations the
// typed surface does not cover.
func (c *Collection[T]) Native() *mongo.Collection {
	return c.coll
}

func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperr.NotFound("no document found")
	}
	if err != nil {
		return nil, httperr.Internal("store: %v", err)
	}
	return &doc, nil
}

func (c *Collection[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, httperr.Internal("store: %v", err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// UpdateByID applies patch as a $set and returns the updated document.
func (c *Collection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*T, error) {
	patch["updatedAt"] = time.Now()
	return c.Mutate(ctx, id, bson.M{"$set": patch})
}

// Mutate runs a raw update document (e.g. $addToSet, $pull, $inc)
// against the document with the given id and returns the new version.
func (c *Collection[T]) Mutate(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperr.NotFound("no document for this id %s", id.Hex())
	}
	if err != nil {
		return nil, httperr.Internal("store: %v", err)
	}
	return &doc, nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return httperr.NotFound("no document for this id %s", id.Hex())
	}
	if err != nil {
		return httperr.Internal("store: %v", err)
	}
	return nil
}

func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, httperr.Internal("store: %v", err)
	}
	return n, nil
}

// List executes a built list query: the page count is taken from the
// collection under the scoping filter only, before the query-string
// filters and search are layered on, so the metadata can overstate
// pages for filtered queries.
func (c *Collection[T]) List(ctx context.Context, q *ListQuery) ([]T, Pagination, error) {
	total, err := c.Count(ctx, q.Scope())
	if err != nil {
		return nil, Pagination{}, err
	}
	pg := q.Paginate(total)

	opts := options.Find().
		SetSort(q.Sort()).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit()))
	if proj := q.Projection(); proj != nil {
		opts.SetProjection(proj)
	}

	cur, err := c.coll.Find(ctx, q.Filter(), opts)
	if err != nil {
		return nil, Pagination{}, httperr.Internal("store: %v", err)
	}
	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, Pagination{}, httperr.Internal("store: %v", err)
	}
	return docs, pg, nil
}
