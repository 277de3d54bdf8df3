package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoBackend adapts one Mongo collection to the Backend contract.
// Timestamps are assigned with $currentDate so both createdAt and updatedAt
// come from the server clock, never the caller's.
type mongoBackend struct {
	col *mongo.Collection
}

// NewMongoBackend wraps a collection as a catalog backend.
func NewMongoBackend(col *mongo.Collection) Backend {
	return &mongoBackend{col: col}
}

var updatedFirst = bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}}

func (b *mongoBackend) List(ctx context.Context) ([]Record, error) {
	cursor, err := b.col.Find(ctx, bson.M{}, options.Find().SetSort(updatedFirst))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.col.Name(), err)
	}
	defer cursor.Close(ctx)

	return decodeRecords(ctx, cursor)
}

func (b *mongoBackend) Query(ctx context.Context, q Query) ([]Record, error) {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Active != nil {
		if *q.Active {
			// Documents written before the isActive field existed count as
			// active.
			filter["isActive"] = bson.M{"$ne": false}
		} else {
			filter["isActive"] = false
		}
	}
	if q.Slug != "" {
		filter["slug"] = q.Slug
	}
	if q.After != nil {
		afterID, err := primitive.ObjectIDFromHex(q.After.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadCursor, q.After.ID)
		}
		filter["$or"] = []bson.M{
			{"updatedAt": bson.M{"$lt": q.After.UpdatedAt}},
			{"updatedAt": q.After.UpdatedAt, "_id": bson.M{"$lt": afterID}},
		}
	}

	opts := options.Find().SetSort(updatedFirst)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := b.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", b.col.Name(), err)
	}
	defer cursor.Close(ctx)

	return decodeRecords(ctx, cursor)
}

func (b *mongoBackend) Get(ctx context.Context, id string) (Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var raw bson.M
	err = b.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", b.col.Name(), err)
	}

	return toRecord(raw), nil
}

func (b *mongoBackend) Insert(ctx context.Context, fields bson.M) (string, error) {
	oid := primitive.NewObjectID()

	_, err := b.col.UpdateByID(
		ctx,
		oid,
		bson.M{
			"$set":         fields,
			"$currentDate": bson.M{"createdAt": true, "updatedAt": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", b.col.Name(), err)
	}

	return oid.Hex(), nil
}

func (b *mongoBackend) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	// $set rejects an empty document; a slug-only update can arrive with
	// nothing left to set.
	update := bson.M{"$currentDate": bson.M{"updatedAt": true}}
	if len(fields) > 0 {
		update["$set"] = fields
	}

	result, err := b.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", b.col.Name(), err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

func (b *mongoBackend) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	result, err := b.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", b.col.Name(), err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// Watch streams collection change events and invokes onChange per event.
// It blocks until the context is cancelled or the stream fails.
func (b *mongoBackend) Watch(ctx context.Context, onChange func()) error {
	stream, err := b.col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("watch %s: %w", b.col.Name(), err)
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		onChange()
	}

	return stream.Err()
}

func decodeRecords(ctx context.Context, cursor *mongo.Cursor) ([]Record, error) {
	records := make([]Record, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, toRecord(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return records, nil
}

func toRecord(raw bson.M) Record {
	record := Record{Fields: raw}

	switch id := raw["_id"].(type) {
	case primitive.ObjectID:
		record.ID = id.Hex()
	case string:
		record.ID = id
	}
	delete(raw, "_id")

	return record
}
