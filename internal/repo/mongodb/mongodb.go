// Package mongodb implements the stores on MongoDB. Documents keep the field
// names the collections have always used (email, password, lastName, ...).
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Marco21c/backend-noticias/internal/observability"
)

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	newsCollection       = "news"
)

// caseInsensitive makes equality and unique indexes ignore letter case.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

type observer struct {
	prom *observability.Prom
}

func (o observer) observe(op string, fn func() error) error {
	if o.prom != nil {
		return o.prom.ObserveDB(op, fn)
	}
	return fn()
}

// EnsureIndexes creates the unique indexes every store relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetCollation(caseInsensitive).SetName("email_unique_ci"),
			},
			{
				Keys: bson.D{{Key: "role", Value: 1}},
			},
		},
		categoriesCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetCollation(caseInsensitive).SetName("name_unique_ci"),
			},
		},
		newsCollection: {
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("slug_unique"),
			},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "author", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func now() time.Time {
	// mongo stores milliseconds
	return time.Now().UTC().Truncate(time.Millisecond)
}

// afterUpdate returns the post-update document from FindOneAndUpdate.
func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
