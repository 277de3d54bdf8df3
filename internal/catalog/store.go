// Package catalog implements the catalog access layer: per-entity stores
// holding an in-memory mirror of the backing document store, with filtered
// lookups, keyset pagination, and cache resynchronization after every
// mutation.
package catalog

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/singleflight"
)

// Entity is the read-side contract both catalog models satisfy.
type Entity interface {
	EntityID() string
	EntitySlug() string
	EntityCategory() string
	Active() bool
	SearchText() string
	ModifiedAt() time.Time
}

// Filters narrows a GetAll listing. Category and Active are pushed down to
// the backing store; Search is matched against the fetched page afterwards.
type Filters struct {
	Category string
	Active   *bool
	Search   string
}

// Page is one slice of a paginated listing. NextCursor resumes the listing
// after the last included item when HasMore is set.
type Page[T any] struct {
	Items      []T    `json:"items"`
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// Store owns the in-memory view of one entity collection. The cache is a
// derived projection of the backing store, never the source of truth: every
// mutation re-reads the collection before returning, so the mutating caller
// always sees its own write. Reads across concurrent writers may observe
// either ordering (last-write-wins at the store, no optimistic locking).
type Store[T Entity] struct {
	name    string
	backend Backend
	mapper  Mapper[T]

	mu    sync.RWMutex
	items []T
	warm  bool

	resyncGroup singleflight.Group
}

// NewStore builds a store over the given backend. The name only tags log
// lines ("products", "services").
func NewStore[T Entity](name string, backend Backend, mapper Mapper[T]) *Store[T] {
	return &Store[T]{name: name, backend: backend, mapper: mapper}
}

// WarmUp loads the full collection into the cache. Public reads served from
// the cache lazily warm it themselves; calling this at startup just moves
// the cost off the first request.
func (s *Store[T]) WarmUp(ctx context.Context) error {
	return s.resync(ctx)
}

// Invalidate drops the cached view. The next cached read re-fetches.
func (s *Store[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.warm = false
}

// GetAll reads a page straight from the backing store, newest-updated
// first. It over-fetches by one record to learn whether another page exists
// without a second round trip. The free-text filter applies to the returned
// page after pagination, mirroring how the dashboard consumes it.
func (s *Store[T]) GetAll(ctx context.Context, pageSize int64, cursorToken string, f Filters) (Page[T], error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	after, err := ParseCursor(cursorToken)
	if err != nil {
		return Page[T]{}, err
	}

	records, err := s.backend.Query(ctx, Query{
		Category: f.Category,
		Active:   f.Active,
		Limit:    pageSize + 1,
		After:    after,
	})
	if err != nil {
		return Page[T]{}, err
	}

	hasMore := int64(len(records)) > pageSize
	if hasMore {
		records = records[:pageSize]
	}

	items := make([]T, 0, len(records))
	for _, record := range records {
		items = append(items, s.mapper(record.ID, record.Fields))
	}

	page := Page[T]{Items: items, HasMore: hasMore}
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = Cursor{UpdatedAt: last.ModifiedAt(), ID: last.EntityID()}.Encode()
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		page.Items = filterText(page.Items, search)
	}

	return page, nil
}

// GetActive returns every cached entity whose active flag is set.
func (s *Store[T]) GetActive(ctx context.Context) ([]T, error) {
	if err := s.ensureWarm(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.Active() {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetByID checks the cache first and falls through to a point read against
// the backing store, so a record created moments ago is found even if the
// cache lags.
func (s *Store[T]) GetByID(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	for _, item := range s.items {
		if item.EntityID() == id {
			s.mu.RUnlock()
			return item, nil
		}
	}
	s.mu.RUnlock()

	record, err := s.backend.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.mapper(record.ID, record.Fields), nil
}

// GetBySlug resolves a public catalog URL. Only active entities are
// eligible; an inactive entity with a matching slug reports not found.
func (s *Store[T]) GetBySlug(ctx context.Context, slug string) (T, error) {
	var zero T

	s.mu.RLock()
	for _, item := range s.items {
		if item.Active() && item.EntitySlug() == slug {
			s.mu.RUnlock()
			return item, nil
		}
	}
	s.mu.RUnlock()

	active := true
	records, err := s.backend.Query(ctx, Query{Slug: slug, Active: &active, Limit: 1})
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, ErrNotFound
	}
	return s.mapper(records[0].ID, records[0].Fields), nil
}

// GetByCategory returns the cached active entities in one category.
func (s *Store[T]) GetByCategory(ctx context.Context, category string) ([]T, error) {
	if err := s.ensureWarm(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]T, 0)
	for _, item := range s.items {
		if item.Active() && item.EntityCategory() == category {
			items = append(items, item)
		}
	}
	return items, nil
}

// Search matches the text case-insensitively against the cached active
// entities' searchable fields.
func (s *Store[T]) Search(ctx context.Context, text string) ([]T, error) {
	if err := s.ensureWarm(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.Active() {
			active = append(active, item)
		}
	}
	return filterText(active, text), nil
}

// Add writes a new record. The slug derives from the title when absent, a
// slug already owned by another record is rejected, and a non-boolean
// isActive defaults to true. Both timestamps come from the store's clock;
// the created record is read back so the caller gets the stamped values.
func (s *Store[T]) Add(ctx context.Context, fields bson.M) (T, error) {
	var zero T
	fields = cloneDoc(fields)

	slug := asString(fields["slug"])
	if slug == "" {
		slug = MakeSlug(asString(fields["title"]))
	}
	if slug == "" {
		// An empty slug would still count as a string for the partial
		// unique index; leave the field off entirely.
		delete(fields, "slug")
	} else {
		fields["slug"] = slug
		if err := s.checkSlugFree(ctx, slug, ""); err != nil {
			return zero, err
		}
	}

	if _, ok := fields["isActive"].(bool); !ok {
		fields["isActive"] = true
	}

	id, err := s.backend.Insert(ctx, fields)
	if err != nil {
		return zero, err
	}

	record, err := s.backend.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := s.resync(ctx); err != nil {
		return zero, err
	}
	return s.overlay(record), nil
}

// Update writes a partial field set plus a refreshed updatedAt, then reads
// the record back. A record that vanished between write and read-back
// reports not found.
func (s *Store[T]) Update(ctx context.Context, id string, fields bson.M) (T, error) {
	var zero T
	fields = cloneDoc(fields)
	delete(fields, "createdAt")
	delete(fields, "updatedAt")

	if _, present := fields["slug"]; present {
		slug := asString(fields["slug"])
		if slug == "" {
			delete(fields, "slug")
		} else if err := s.checkSlugFree(ctx, slug, id); err != nil {
			return zero, err
		}
	}

	if err := s.backend.Update(ctx, id, fields); err != nil {
		return zero, err
	}

	record, err := s.backend.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := s.resync(ctx); err != nil {
		return zero, err
	}
	return s.overlay(record), nil
}

// ToggleActiveStatus flips the entity's visibility flag.
func (s *Store[T]) ToggleActiveStatus(ctx context.Context, id string) (T, error) {
	var zero T

	record, err := s.backend.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	current := asBool(record.Fields["isActive"], true)

	return s.Update(ctx, id, bson.M{"isActive": !current})
}

// Delete removes the record. A missing id reports not found rather than
// success-by-absence, so the dashboard learns its row is already gone.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.resync(ctx); err != nil {
		return err
	}
	s.dropCached(id)
	return nil
}

// Subscribe follows the backing store's change notifications, refreshing
// the cache on every event. It blocks until the context ends; backends
// without push support return immediately.
func (s *Store[T]) Subscribe(ctx context.Context) error {
	watcher, ok := s.backend.(Watcher)
	if !ok {
		return nil
	}

	return watcher.Watch(ctx, func() {
		if err := s.resync(ctx); err != nil {
			log.Printf("[catalog:%s] change-stream resync failed: %v", s.name, err)
		}
	})
}

func (s *Store[T]) ensureWarm(ctx context.Context) error {
	s.mu.RLock()
	warm := s.warm
	s.mu.RUnlock()

	if warm {
		return nil
	}
	return s.resync(ctx)
}

// resync replaces the cached view with a fresh full read. Concurrent calls
// collapse into a single collection scan.
func (s *Store[T]) resync(ctx context.Context) error {
	_, err, _ := s.resyncGroup.Do("resync", func() (interface{}, error) {
		records, err := s.backend.List(ctx)
		if err != nil {
			return nil, err
		}

		items := make([]T, 0, len(records))
		for _, record := range records {
			items = append(items, s.mapper(record.ID, record.Fields))
		}

		s.mu.Lock()
		s.items = items
		s.warm = true
		s.mu.Unlock()

		return nil, nil
	})
	return err
}

// overlay installs the read-back record over the cached view. A resync can
// join a collection scan that snapshotted the store before this record's
// write committed; overlaying after the resync keeps read-your-writes for
// the mutating caller.
func (s *Store[T]) overlay(record Record) T {
	item := s.mapper(record.ID, record.Fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].EntityID() == item.EntityID() {
			s.items[i] = item
			return item
		}
	}
	s.items = append(s.items, item)
	return item
}

// dropCached is overlay's counterpart for Delete: a stale resync snapshot
// may still carry the deleted record.
func (s *Store[T]) dropCached(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store[T]) checkSlugFree(ctx context.Context, slug, selfID string) error {
	records, err := s.backend.Query(ctx, Query{Slug: slug, Limit: 2})
	if err != nil {
		return err
	}
	for _, record := range records {
		if record.ID != selfID {
			return ErrSlugTaken
		}
	}
	return nil
}

func filterText[T Entity](items []T, text string) []T {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return items
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.SearchText()), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}
