package league

import (
	"github.com/preston-bernstein/nba-league-service/internal/domain/games"
	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
	"github.com/preston-bernstein/nba-league-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-league-service/internal/timeutil"
)

// TeamView is a point-in-time copy of a team's identity and tally.
type TeamView struct {
	Name          string  `json:"name"`
	City          string  `json:"city"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
	RosterSize    int     `json:"rosterSize"`
}

// TeamDetail adds the roster and team averages to a TeamView.
type TeamDetail struct {
	TeamView
	Players  []PlayerView        `json:"players"`
	Averages *teams.TeamAverages `json:"averages,omitempty"`
}

// PlayerView is a point-in-time copy of a player with derived numbers.
type PlayerView struct {
	Name      string             `json:"name"`
	Origin    string             `json:"origin"`
	StartYear int                `json:"startYear"`
	Position  players.Position   `json:"position"`
	Team      string             `json:"team,omitempty"`
	Games     int                `json:"games"`
	Averages  *players.Averages  `json:"averages,omitempty"`
	BestStats *players.BestStats `json:"bestStats,omitempty"`
}

// MatchView is a flattened match.
type MatchView struct {
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Date      string `json:"date"`
	Winner    string `json:"winner,omitempty"`
	Margin    int    `json:"margin"`
	Close     bool   `json:"close"`
}

// Ranking is one row of a leaderboard.
type Ranking struct {
	Name     string           `json:"name"`
	Team     string           `json:"team,omitempty"`
	Position players.Position `json:"position"`
	Value    float64          `json:"value"`
	Averages players.Averages `json:"averages"`
}

// Stats summarizes registry sizes.
type Stats struct {
	TotalTeams    int `json:"totalTeams"`
	ActiveTeams   int `json:"activeTeams"`
	TotalPlayers  int `json:"totalPlayers"`
	ActivePlayers int `json:"activePlayers"`
	TotalMatches  int `json:"totalMatches"`
}

func teamView(t *teams.Team) TeamView {
	return TeamView{
		Name:          t.Name(),
		City:          t.City(),
		Wins:          t.Wins(),
		Losses:        t.Losses(),
		WinPercentage: t.WinPercentage(),
		RosterSize:    t.Size(),
	}
}

func teamDetail(t *teams.Team) TeamDetail {
	detail := TeamDetail{TeamView: teamView(t), Players: []PlayerView{}}
	for _, p := range t.Players() {
		detail.Players = append(detail.Players, playerView(p))
	}
	if avg, ok := t.Averages(); ok {
		detail.Averages = &avg
	}
	return detail
}

func playerView(p *players.Player) PlayerView {
	view := PlayerView{
		Name:      p.Name(),
		Origin:    p.Origin(),
		StartYear: p.StartYear(),
		Position:  p.Position(),
		Team:      p.Team(),
	}
	if avg, ok := p.Averages(); ok {
		view.Games = avg.Games
		view.Averages = &avg
	}
	if best, ok := p.BestStats(); ok {
		view.BestStats = &best
	}
	return view
}

// NewMatchView flattens a recorded match; matches are immutable so no lock is required.
func NewMatchView(m *games.Match) MatchView {
	view := MatchView{
		HomeTeam:  m.Home().Name(),
		AwayTeam:  m.Away().Name(),
		HomeScore: m.HomeScore(),
		AwayScore: m.AwayScore(),
		Date:      timeutil.FormatDate(m.Date()),
		Margin:    m.Margin(),
		Close:     m.IsClose(games.DefaultCloseThreshold),
	}
	if w := m.Winner(); w != nil {
		view.Winner = w.Name()
	}
	return view
}
