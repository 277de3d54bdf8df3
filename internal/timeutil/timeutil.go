// Package timeutil normalizes the timestamp shapes found in persisted
// catalog documents into a single time.Time.
package timeutil

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Epoch values at or above this are taken as milliseconds rather than
// seconds. 1e12 seconds is the year 33658, so the ranges cannot collide for
// any plausible catalog timestamp.
const epochMillisFloor = 1e12

// Normalize converts any persisted timestamp representation into a valid
// time.Time. Accepted shapes: BSON datetime (millis), BSON timestamp
// (seconds + ordinal), a native time.Time, an ISO-like string, a numeric
// epoch in seconds or milliseconds. Absent, empty, or unparseable input
// yields the current time; callers never receive a zero value and never see
// an error. The fallback is lossy on bad data, which the catalog accepts in
// exchange for never failing a listing.
func Normalize(value interface{}) time.Time {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Now()
		}
		return v
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Now()
		}
		return *v
	case primitive.DateTime:
		return v.Time()
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Now()
		}
		parsed, err := dateparse.ParseAny(trimmed)
		if err != nil {
			return time.Now()
		}
		return parsed
	case int:
		return fromEpoch(float64(v))
	case int32:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))
	case float64:
		return fromEpoch(v)
	default:
		return time.Now()
	}
}

func fromEpoch(n float64) time.Time {
	if n <= 0 {
		return time.Now()
	}
	if n >= epochMillisFloor {
		return time.UnixMilli(int64(n))
	}
	return time.Unix(int64(n), 0)
}
