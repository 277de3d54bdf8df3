package catalog

import "errors"

var (
	// ErrNotFound reports that no record exists for the given id or slug.
	ErrNotFound = errors.New("catalog: not found")
	// ErrSlugTaken reports a write that would reuse another record's slug.
	ErrSlugTaken = errors.New("catalog: slug already in use")
	// ErrBadCursor reports an unusable pagination cursor.
	ErrBadCursor = errors.New("catalog: invalid cursor")
)
