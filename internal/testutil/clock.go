package testutil

import (
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/timeutil"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseDate parses a YYYY-MM-DD calendar date or panics; intended for tests.
func MustParseDate(v string) time.Time {
	t, err := timeutil.ParseDate(v)
	if err != nil {
		panic(err)
	}
	return t
}
