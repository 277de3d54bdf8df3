package catalog

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor marks the last record of a page in the updatedAt-descending
// ordering. The id breaks ties between records sharing a millisecond.
type Cursor struct {
	UpdatedAt time.Time
	ID        string
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d:%s", c.UpdatedAt.UnixMilli(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes a token produced by Encode. An empty token yields a
// nil cursor (first page).
func ParseCursor(token string) (*Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadCursor, token)
	}

	millisStr, id, ok := strings.Cut(string(raw), ":")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %s", ErrBadCursor, token)
	}

	millis, err := strconv.ParseInt(millisStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadCursor, token)
	}

	return &Cursor{UpdatedAt: time.UnixMilli(millis), ID: id}, nil
}
