package globaltime

import "time"

// UTC returns the current time in UTC truncated to microseconds, matching the
// precision of Postgres timestamptz columns.
func UTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
