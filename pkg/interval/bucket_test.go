package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBoundaryDelay(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		expected time.Duration
	}{
		{
			name:     "mid minute",
			now:      time.Date(2024, 3, 1, 12, 0, 37, 0, time.UTC),
			expected: 23 * time.Second,
		},
		{
			name:     "exact boundary waits a full minute",
			now:      time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC),
			expected: time.Minute,
		},
		{
			name:     "one ms before boundary",
			now:      time.Date(2024, 3, 1, 12, 0, 59, 999_000_000, time.UTC),
			expected: time.Millisecond,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BoundaryDelay(tc.now))
		})
	}
}

func TestNextBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 37, 123_456_789, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC), NextBoundary(now))
}

func TestBucketRange(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 37, 0, time.UTC)
	start, end := BucketRange(ts)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC), end)
}
