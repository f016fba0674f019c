// Package interval provides wall-clock minute bucket arithmetic for the
// average-price aggregation job.
package interval

import "time"

// Minute is the aggregation period for average-price buckets.
const Minute = time.Minute

// BucketStart truncates ts to the wall-clock minute boundary containing it.
func BucketStart(ts time.Time) time.Time {
	return ts.Truncate(time.Minute)
}

// BucketRange returns the [start, end) minute bucket containing ts.
func BucketRange(ts time.Time) (start, end time.Time) {
	start = BucketStart(ts)
	end = start.Add(time.Minute)
	return start, end
}

// BoundaryDelay returns how long to wait from now until the next wall-clock
// minute boundary: 60000 - (nowMs mod 60000) milliseconds. At an exact
// boundary the delay is a full minute, targeting the following boundary.
func BoundaryDelay(now time.Time) time.Duration {
	ms := now.UnixMilli() % 60_000
	return time.Duration(60_000-ms) * time.Millisecond
}

// NextBoundary returns the first minute boundary strictly after now.
func NextBoundary(now time.Time) time.Time {
	return now.Add(BoundaryDelay(now)).Truncate(time.Minute)
}
