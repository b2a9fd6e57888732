package games

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-league-service/internal/timeutil"
)

// DefaultCloseThreshold is the margin at or under which a game counts as close.
const DefaultCloseThreshold = 5

// Match is a finalized fixture. Building one through New applies the result to both
// teams' tallies exactly once; there is no way to edit it afterwards.
type Match struct {
	home      *teams.Team
	away      *teams.Team
	homeScore int
	awayScore int
	date      time.Time
}

// New validates the fixture, then finalizes it. Validation runs before any tally
// changes, so a rejected match leaves both teams untouched.
func New(home, away *teams.Team, homeScore, awayScore int, date time.Time) (*Match, error) {
	if home == nil || !domain.HasName(home) {
		return nil, &domain.CapabilityError{Argument: "home", Message: "home team must expose a name"}
	}
	if away == nil || !domain.HasName(away) {
		return nil, &domain.CapabilityError{Argument: "away", Message: "away team must expose a name"}
	}
	if home == away || home.Name() == away.Name() {
		return nil, domain.Invalid("a team cannot play against itself")
	}
	if homeScore < 0 || awayScore < 0 {
		return nil, domain.Invalid("scores cannot be negative")
	}
	if date.IsZero() {
		return nil, domain.Invalid("match date is required (%s)", timeutil.DateFormatHint)
	}

	m := &Match{
		home:      home,
		away:      away,
		homeScore: homeScore,
		awayScore: awayScore,
		date:      timeutil.CalendarDate(date),
	}
	m.finalize()
	return m, nil
}

// ParseDate parses a YYYY-MM-DD match date.
func ParseDate(value string) (time.Time, error) {
	parsed, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.Invalid("invalid date format %q, use %s", value, timeutil.DateFormatHint)
	}
	if parsed.IsZero() {
		return time.Time{}, domain.Invalid("date %q is out of range", value)
	}
	return parsed, nil
}

func (m *Match) finalize() {
	switch {
	case m.homeScore > m.awayScore:
		m.home.RecordWin()
		m.away.RecordLoss()
	case m.awayScore > m.homeScore:
		m.away.RecordWin()
		m.home.RecordLoss()
	}
}

func (m *Match) Home() *teams.Team { return m.home }
func (m *Match) Away() *teams.Team { return m.away }
func (m *Match) HomeScore() int    { return m.homeScore }
func (m *Match) AwayScore() int    { return m.awayScore }
func (m *Match) Date() time.Time   { return m.date }

// IsTie reports equal scores.
func (m *Match) IsTie() bool { return m.homeScore == m.awayScore }

// Involves reports whether the named team played either side.
func (m *Match) Involves(teamName string) bool {
	return m.home.Name() == teamName || m.away.Name() == teamName
}

// Winner is the higher-scoring team, or nil on a tie.
func (m *Match) Winner() *teams.Team {
	switch {
	case m.homeScore > m.awayScore:
		return m.home
	case m.awayScore > m.homeScore:
		return m.away
	default:
		return nil
	}
}

// Loser is the lower-scoring team, or nil on a tie.
func (m *Match) Loser() *teams.Team {
	switch {
	case m.homeScore > m.awayScore:
		return m.away
	case m.awayScore > m.homeScore:
		return m.home
	default:
		return nil
	}
}

// Margin is the absolute point difference.
func (m *Match) Margin() int {
	if m.homeScore > m.awayScore {
		return m.homeScore - m.awayScore
	}
	return m.awayScore - m.homeScore
}

// IsClose reports a margin at or under threshold.
func (m *Match) IsClose(threshold int) bool {
	return m.Margin() <= threshold
}

func (m *Match) String() string {
	return fmt.Sprintf("%s %d - %d %s (%s)",
		m.home.Name(), m.homeScore, m.awayScore, m.away.Name(), timeutil.FormatDate(m.date))
}
