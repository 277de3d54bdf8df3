package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeKnownShapesSameInstant(t *testing.T) {
	want := time.Date(2023, 6, 14, 9, 30, 0, 0, time.UTC)

	cases := map[string]interface{}{
		"time.Time":      want,
		"bson datetime":  primitive.NewDateTimeFromTime(want),
		"bson timestamp": primitive.Timestamp{T: uint32(want.Unix())},
		"iso string":     "2023-06-14T09:30:00Z",
		"epoch seconds":  want.Unix(),
		"epoch millis":   want.UnixMilli(),
		"epoch float":    float64(want.Unix()),
	}

	for name, input := range cases {
		got := Normalize(input)
		assert.Equalf(t, want.Unix(), got.Unix(), "%s should normalize to the same instant", name)
	}
}

func TestNormalizeFallsBackToNow(t *testing.T) {
	inputs := []interface{}{
		nil,
		"",
		"   ",
		"not a date at all",
		time.Time{},
		(*time.Time)(nil),
		0,
		-5,
		struct{ X int }{1},
	}

	for _, input := range inputs {
		got := Normalize(input)
		assert.WithinDurationf(t, time.Now(), got, 2*time.Second, "input %#v should fall back to now", input)
	}
}

func TestNormalizeLenientStringFormats(t *testing.T) {
	got := Normalize("2023-06-14 09:30:00")
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 14, got.Day())
}
