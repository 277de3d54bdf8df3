package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBackend is an in-process Backend used in tests and for running the
// site without a database. It mirrors the Mongo backend's semantics:
// server-side timestamps (truncated to milliseconds, matching BSON date
// precision), newest-updated-first ordering with id tiebreak, and
// missing-isActive-counts-as-active filtering.
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string]bson.M
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string]bson.M)}
}

func (b *MemoryBackend) List(ctx context.Context) ([]Record, error) {
	return b.Query(ctx, Query{})
}

func (b *MemoryBackend) Query(_ context.Context, q Query) ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records := make([]Record, 0, len(b.docs))
	for id, doc := range b.docs {
		if q.Category != "" && doc["category"] != q.Category {
			continue
		}
		if q.Active != nil && docActive(doc) != *q.Active {
			continue
		}
		if q.Slug != "" && doc["slug"] != q.Slug {
			continue
		}
		records = append(records, Record{ID: id, Fields: cloneDoc(doc)})
	}

	sort.Slice(records, func(i, j int) bool {
		ti, tj := docUpdated(records[i].Fields), docUpdated(records[j].Fields)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return records[i].ID > records[j].ID
	})

	if q.After != nil {
		cut := len(records)
		for i, rec := range records {
			t := docUpdated(rec.Fields)
			if t.Before(q.After.UpdatedAt) || (t.Equal(q.After.UpdatedAt) && rec.ID < q.After.ID) {
				cut = i
				break
			}
		}
		records = records[cut:]
	}

	if q.Limit > 0 && int64(len(records)) > q.Limit {
		records = records[:q.Limit]
	}

	return records, nil
}

func (b *MemoryBackend) Get(_ context.Context, id string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, ok := b.docs[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return Record{ID: id, Fields: cloneDoc(doc)}, nil
}

func (b *MemoryBackend) Insert(_ context.Context, fields bson.M) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := primitive.NewObjectID().Hex()
	doc := cloneDoc(fields)
	now := time.Now().Truncate(time.Millisecond)
	doc["createdAt"] = now
	doc["updatedAt"] = now
	b.docs[id] = doc

	return id, nil
}

func (b *MemoryBackend) Update(_ context.Context, id string, fields bson.M) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, ok := b.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for key, value := range fields {
		doc[key] = value
	}
	doc["updatedAt"] = time.Now().Truncate(time.Millisecond)

	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(b.docs, id)

	return nil
}

func docActive(doc bson.M) bool {
	active, ok := doc["isActive"].(bool)
	if !ok {
		return true
	}
	return active
}

func docUpdated(doc bson.M) time.Time {
	t, _ := doc["updatedAt"].(time.Time)
	return t
}

func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	return out
}
