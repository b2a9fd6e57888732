package league

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
	"github.com/preston-bernstein/nba-league-service/internal/domain/teams"
)

// Metric selects the average a leaderboard is sorted by.
type Metric string

const (
	MetricPoints     Metric = "points"
	MetricAssists    Metric = "assists"
	MetricRebounds   Metric = "rebounds"
	MetricEfficiency Metric = "efficiency"
)

// ParseMetric maps a leaderboard name to a Metric. "average-efficiency" is an
// alias for efficiency; unknown names fall back to points.
func ParseMetric(raw string) Metric {
	switch m := Metric(strings.ToLower(strings.TrimSpace(raw))); m {
	case MetricPoints, MetricAssists, MetricRebounds, MetricEfficiency:
		return m
	case "average-efficiency", "average_efficiency":
		return MetricEfficiency
	default:
		return MetricPoints
	}
}

func (m Metric) value(avg players.Averages) float64 {
	switch m {
	case MetricAssists:
		return avg.Assists
	case MetricRebounds:
		return avg.Rebounds
	case MetricEfficiency:
		return avg.Efficiency
	default:
		return avg.Points
	}
}

// Teams lists every team in registration order.
func (l *League) Teams() []TeamView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]TeamView, 0, len(l.teamOrder))
	for _, team := range l.orderedTeams() {
		out = append(out, teamView(team))
	}
	return out
}

// TeamDetail returns the team with its roster and averages.
func (l *League) TeamDetail(name string) (TeamDetail, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	team, ok := l.teams[name]
	if !ok {
		return TeamDetail{}, domain.NotFound("team %s not found", name)
	}
	return teamDetail(team), nil
}

// Players lists every player in registration order.
func (l *League) Players() []PlayerView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]PlayerView, 0, len(l.playerOrder))
	for _, p := range l.orderedPlayers() {
		out = append(out, playerView(p))
	}
	return out
}

// PlayerDetail returns the player's view.
func (l *League) PlayerDetail(name string) (PlayerView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.players[name]
	if !ok {
		return PlayerView{}, domain.NotFound("player %s not found", name)
	}
	return playerView(p), nil
}

// Matches returns the match log in insertion order.
func (l *League) Matches() []MatchView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]MatchView, 0, len(l.matches))
	for _, m := range l.matches {
		out = append(out, NewMatchView(m))
	}
	return out
}

// TeamMatches returns the matches the named team played, in log order. Unknown
// teams yield an empty list.
func (l *League) TeamMatches(name string) []MatchView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []MatchView{}
	if _, ok := l.teams[name]; !ok {
		return out
	}
	for _, m := range l.matches {
		if m.Involves(name) {
			out = append(out, NewMatchView(m))
		}
	}
	return out
}

// Standings ranks teams with at least one decided game by win percentage, then
// wins. Remaining ties keep registration order.
func (l *League) Standings() []TeamView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.standings()
}

func (l *League) standings() []TeamView {
	ranked := make([]*teams.Team, 0, len(l.teamOrder))
	for _, team := range l.orderedTeams() {
		if team.GamesPlayed() > 0 {
			ranked = append(ranked, team)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].WinPercentage(), ranked[j].WinPercentage()
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Wins() > ranked[j].Wins()
	})

	out := make([]TeamView, 0, len(ranked))
	for _, team := range ranked {
		out = append(out, teamView(team))
	}
	return out
}

// TopPlayers ranks players with statistics by the metric's average, highest
// first, and returns at most limit rows. Ties keep registration order.
func (l *League) TopPlayers(metric string, limit int) []Ranking {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.topPlayers(ParseMetric(metric), limit)
}

func (l *League) topPlayers(metric Metric, limit int) []Ranking {
	if limit <= 0 {
		return []Ranking{}
	}
	rows := make([]Ranking, 0, len(l.playerOrder))
	for _, p := range l.orderedPlayers() {
		avg, ok := p.Averages()
		if !ok {
			continue
		}
		rows = append(rows, Ranking{
			Name:     p.Name(),
			Team:     p.Team(),
			Position: p.Position(),
			Value:    metric.value(avg),
			Averages: avg,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// SystemStats counts teams, players and matches.
func (l *League) SystemStats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Stats{
		TotalTeams:   len(l.teams),
		TotalPlayers: len(l.players),
		TotalMatches: len(l.matches),
	}
	for _, team := range l.teams {
		if team.GamesPlayed() > 0 {
			stats.ActiveTeams++
		}
	}
	for _, p := range l.players {
		if p.HasStatistics() {
			stats.ActivePlayers++
		}
	}
	return stats
}

func (l *League) orderedTeams() []*teams.Team {
	out := make([]*teams.Team, 0, len(l.teamOrder))
	for _, name := range l.teamOrder {
		out = append(out, l.teams[name])
	}
	return out
}

func (l *League) orderedPlayers() []*players.Player {
	out := make([]*players.Player, 0, len(l.playerOrder))
	for _, name := range l.playerOrder {
		out = append(out, l.players[name])
	}
	return out
}
