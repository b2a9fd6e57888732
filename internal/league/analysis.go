package league

import (
	"sort"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/games"
)

const (
	// DefaultStrugglingThreshold is the win percentage under which a ranked team struggles.
	DefaultStrugglingThreshold = 40.0
	// ShortRosterSize flags rosters smaller than this.
	ShortRosterSize = 10
	// WeakOffensePoints flags teams whose average points per player is lower.
	WeakOffensePoints = 15.0

	trendTopTeams      = 3
	trendRecentMatches = 5
)

// HeadToHead compares two teams and lists the matches they played against each other.
type HeadToHead struct {
	TeamA   TeamDetail  `json:"teamA"`
	TeamB   TeamDetail  `json:"teamB"`
	Matches []MatchView `json:"matches"`
	WinsA   int         `json:"winsA"`
	WinsB   int         `json:"winsB"`
	Ties    int         `json:"ties"`
}

// Trends summarizes the top of the table and recent results.
type Trends struct {
	TopTeams        []TeamView  `json:"topTeams"`
	RecentMatches   []MatchView `json:"recentMatches"`
	TotalMatches    int         `json:"totalMatches"`
	CloseMatches    int         `json:"closeMatches"`
	ClosePercentage float64     `json:"closePercentage"`
}

// StrugglingTeam is a ranked team under the threshold, with the likely causes.
type StrugglingTeam struct {
	TeamView
	ShortRoster   bool     `json:"shortRoster"`
	WeakOffense   bool     `json:"weakOffense"`
	AveragePoints *float64 `json:"averagePoints,omitempty"`
}

// StrugglingReport lists teams under the threshold and teams that lost every game.
type StrugglingReport struct {
	Threshold float64          `json:"threshold"`
	Teams     []StrugglingTeam `json:"teams"`
	Winless   []TeamView       `json:"winless"`
}

// HeadToHead compares teams a and b.
func (l *League) HeadToHead(a, b string) (HeadToHead, error) {
	if a == b {
		return HeadToHead{}, domain.Invalid("pick two different teams")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	teamA, ok := l.teams[a]
	if !ok {
		return HeadToHead{}, domain.NotFound("team %s not found", a)
	}
	teamB, ok := l.teams[b]
	if !ok {
		return HeadToHead{}, domain.NotFound("team %s not found", b)
	}

	h2h := HeadToHead{
		TeamA:   teamDetail(teamA),
		TeamB:   teamDetail(teamB),
		Matches: []MatchView{},
	}
	for _, m := range l.matches {
		if !m.Involves(a) || !m.Involves(b) {
			continue
		}
		h2h.Matches = append(h2h.Matches, NewMatchView(m))
		switch m.Winner() {
		case teamA:
			h2h.WinsA++
		case teamB:
			h2h.WinsB++
		default:
			h2h.Ties++
		}
	}
	return h2h, nil
}

// Trends reports the top three teams, the five most recent matches by date and
// the share of close matches.
func (l *League) Trends() Trends {
	l.mu.RLock()
	defer l.mu.RUnlock()

	standings := l.standings()
	if len(standings) > trendTopTeams {
		standings = standings[:trendTopTeams]
	}

	recent := make([]*games.Match, len(l.matches))
	copy(recent, l.matches)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date().After(recent[j].Date())
	})
	if len(recent) > trendRecentMatches {
		recent = recent[:trendRecentMatches]
	}

	trends := Trends{
		TopTeams:      standings,
		RecentMatches: make([]MatchView, 0, len(recent)),
		TotalMatches:  len(l.matches),
	}
	for _, m := range recent {
		trends.RecentMatches = append(trends.RecentMatches, NewMatchView(m))
	}
	for _, m := range l.matches {
		if m.IsClose(games.DefaultCloseThreshold) {
			trends.CloseMatches++
		}
	}
	if trends.TotalMatches > 0 {
		trends.ClosePercentage = float64(trends.CloseMatches) / float64(trends.TotalMatches) * 100
	}
	return trends
}

// StrugglingTeams lists ranked teams whose win percentage is under threshold, and
// teams with losses but no wins. A non-positive threshold uses the default.
func (l *League) StrugglingTeams(threshold float64) StrugglingReport {
	if threshold <= 0 {
		threshold = DefaultStrugglingThreshold
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	report := StrugglingReport{
		Threshold: threshold,
		Teams:     []StrugglingTeam{},
		Winless:   []TeamView{},
	}
	for _, view := range l.standings() {
		if view.WinPercentage >= threshold {
			continue
		}
		entry := StrugglingTeam{
			TeamView:    view,
			ShortRoster: view.RosterSize < ShortRosterSize,
		}
		if avg, ok := l.teams[view.Name].Averages(); ok {
			points := avg.Points
			entry.AveragePoints = &points
			entry.WeakOffense = points < WeakOffensePoints
		}
		report.Teams = append(report.Teams, entry)
	}
	for _, team := range l.orderedTeams() {
		if team.Wins() == 0 && team.Losses() > 0 {
			report.Winless = append(report.Winless, teamView(team))
		}
	}
	return report
}
