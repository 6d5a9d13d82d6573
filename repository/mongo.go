package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/catering-boq/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores T as documents of one collection, keyed by a unique field.
type MongoRepository[T any] struct {
	coll     *mongo.Collection
	keyField string
	now      func() time.Time
}

func NewMongoRepository[T any](coll *mongo.Collection, keyField string) *MongoRepository[T] {
	return &MongoRepository[T]{coll: coll, keyField: keyField, now: time.Now}
}

// EnsureIndex creates the unique index on the key field.
func (r *MongoRepository[T]) EnsureIndex(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: r.keyField, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create index %s.%s: %w", r.coll.Name(), r.keyField, err)
	}
	return nil
}

func (r *MongoRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return records, nil
}

func (r *MongoRepository[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	var record T
	if err := r.coll.FindOne(ctx, bson.M{r.keyField: key}).Decode(&record); err != nil {
		return nil, translateMongoError(err)
	}
	return &record, nil
}

func (r *MongoRepository[T]) Create(ctx context.Context, record *T) error {
	if m, ok := any(record).(createdMarker); ok {
		m.MarkCreated(r.now())
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return translateMongoError(err)
	}
	return nil
}

// Update applies record with $set so created_at (omitted when zero) survives, then
// decodes the stored document back into record.
func (r *MongoRepository[T]) Update(ctx context.Context, key string, record *T) error {
	if m, ok := any(record).(updatedMarker); ok {
		m.MarkUpdated(r.now())
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{r.keyField: key}, bson.M{"$set": record}, opts).Decode(record)
	return translateMongoError(err)
}

func (r *MongoRepository[T]) Delete(ctx context.Context, key string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{r.keyField: key})
	if err != nil {
		return translateMongoError(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// NewMongoStore wires one repository per collection of db and makes sure every key is
// unique. The client behind db must be configured with NewRegistry.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	ingredients := NewMongoRepository[models.Ingredient](db.Collection("ingredients"), keyName)
	menus := NewMongoRepository[models.Menu](db.Collection("menus"), keyName)
	cateringTypes := NewMongoRepository[models.CateringType](db.Collection("cateringtypes"), keyName)
	customers := NewMongoRepository[models.Customer](db.Collection("customers"), keyMobile)
	events := NewMongoRepository[models.Event](db.Collection("events"), keyEventID)
	users := NewMongoRepository[models.User](db.Collection("users"), keyEmail)
	notifications := NewMongoRepository[models.Notification](db.Collection("notifications"), keyNotificationID)

	for _, idx := range []interface{ EnsureIndex(context.Context) error }{
		ingredients, menus, cateringTypes, customers, events, users, notifications,
	} {
		if err := idx.EnsureIndex(ctx); err != nil {
			return nil, err
		}
	}

	return &Store{
		Ingredients:   ingredients,
		Menus:         menus,
		CateringTypes: cateringTypes,
		Customers:     customers,
		Events:        events,
		Users:         users,
		Notifications: notifications,
		close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}, nil
}
