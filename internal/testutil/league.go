package testutil

import (
	"testing"

	"github.com/preston-bernstein/nba-league-service/internal/fixture"
	"github.com/preston-bernstein/nba-league-service/internal/league"
)

// NewSampleLeague loads the embedded sample league, failing the test on error.
func NewSampleLeague(t testing.TB) *league.League {
	t.Helper()
	l, err := fixture.NewLeague(nil, nil)
	if err != nil {
		t.Fatalf("failed to load sample league: %v", err)
	}
	return l
}

// NewEmptyLeague returns a league with no teams and no recorder.
func NewEmptyLeague() *league.League {
	return league.New(nil, nil)
}
