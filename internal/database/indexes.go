package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCatalogIndexes creates the slug uniqueness and listing-order indexes
// for both catalog collections. Slug uniqueness is also checked at write
// time in the catalog store; the index backstops races between two writers.
func EnsureCatalogIndexes(db *mongo.Database) error {
	for _, name := range []string{"products", "services"} {
		if err := ensureCollectionIndexes(db, name); err != nil {
			return err
		}
	}
	return nil
}

func ensureCollectionIndexes(db *mongo.Database, collection string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(collection).Indexes()

	slugIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().
			SetName("slug_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"slug": bson.M{"$type": "string"},
			}),
	}

	updatedIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("updatedAt_desc"),
	}

	log.Printf("EnsureCatalogIndexes: creating indexes on %s", collection)
	if _, err := indexes.CreateMany(ctx, []mongo.IndexModel{slugIndex, updatedIndex}); err != nil {
		log.Printf("EnsureCatalogIndexes: %s index error: %v", collection, err)
		return err
	}

	return nil
}
