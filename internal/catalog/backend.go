package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Record is one raw document from the backing store: its assigned id plus
// the untyped field bag. The mapper turns records into entities.
type Record struct {
	ID     string
	Fields bson.M
}

// Query describes a filtered, ordered read against the backing store.
// Results are always ordered most-recently-updated first; After resumes the
// keyset ordering behind the given cursor.
type Query struct {
	Category string
	Active   *bool
	Slug     string
	Limit    int64
	After    *Cursor
}

// Backend is the backing document store as consumed by the catalog store.
// Implementations assign ids and stamp createdAt/updatedAt with their own
// clock on Insert, and re-stamp updatedAt on Update. Get, Update and Delete
// report a missing id as ErrNotFound.
type Backend interface {
	List(ctx context.Context) ([]Record, error)
	Query(ctx context.Context, q Query) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Insert(ctx context.Context, fields bson.M) (string, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// Watcher is implemented by backends that can push change notifications.
// The callback fires after any collection change; it carries no payload, the
// subscriber is expected to re-read.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}
