package league

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
	"github.com/preston-bernstein/nba-league-service/internal/timeutil"
)

// Document is the serializable form of a whole league.
type Document struct {
	Teams   []TeamDoc   `json:"teams" yaml:"teams"`
	Players []PlayerDoc `json:"players" yaml:"players"`
	Matches []MatchDoc  `json:"matches" yaml:"matches"`
}

// TeamDoc carries a team's identity. Wins and losses are informational; a reload
// derives them from the match log.
type TeamDoc struct {
	Name   string `json:"name" yaml:"name"`
	City   string `json:"city" yaml:"city"`
	Wins   int    `json:"wins" yaml:"wins"`
	Losses int    `json:"losses" yaml:"losses"`
}

// PlayerDoc carries a player and its stat history. A nil Team marks a free agent.
type PlayerDoc struct {
	Name       string         `json:"name" yaml:"name"`
	Origin     string         `json:"origin" yaml:"origin"`
	StartYear  int            `json:"startYear" yaml:"startYear"`
	Position   string         `json:"position" yaml:"position"`
	Team       *string        `json:"team" yaml:"team"`
	Statistics []StatisticDoc `json:"statistics" yaml:"statistics"`
}

type StatisticDoc struct {
	Minutes  float64   `json:"minutes" yaml:"minutes"`
	Points   int       `json:"points" yaml:"points"`
	Assists  int       `json:"assists" yaml:"assists"`
	Rebounds int       `json:"rebounds" yaml:"rebounds"`
	Date     time.Time `json:"date" yaml:"date"`
}

type MatchDoc struct {
	HomeTeam  string `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam  string `json:"awayTeam" yaml:"awayTeam"`
	HomeScore int    `json:"homeScore" yaml:"homeScore"`
	AwayScore int    `json:"awayScore" yaml:"awayScore"`
	Date      string `json:"date" yaml:"date"`
}

// Document exports the league in registration and log order.
func (l *League) Document() Document {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc := Document{
		Teams:   make([]TeamDoc, 0, len(l.teamOrder)),
		Players: make([]PlayerDoc, 0, len(l.playerOrder)),
		Matches: make([]MatchDoc, 0, len(l.matches)),
	}
	for _, team := range l.orderedTeams() {
		doc.Teams = append(doc.Teams, TeamDoc{
			Name:   team.Name(),
			City:   team.City(),
			Wins:   team.Wins(),
			Losses: team.Losses(),
		})
	}
	for _, p := range l.orderedPlayers() {
		pd := PlayerDoc{
			Name:       p.Name(),
			Origin:     p.Origin(),
			StartYear:  p.StartYear(),
			Position:   string(p.Position()),
			Statistics: []StatisticDoc{},
		}
		if p.HasTeam() {
			team := p.Team()
			pd.Team = &team
		}
		for _, s := range p.Statistics() {
			pd.Statistics = append(pd.Statistics, StatisticDoc{
				Minutes:  s.Minutes(),
				Points:   s.Points(),
				Assists:  s.Assists(),
				Rebounds: s.Rebounds(),
				Date:     s.Date(),
			})
		}
		doc.Players = append(doc.Players, pd)
	}
	for _, m := range l.matches {
		doc.Matches = append(doc.Matches, MatchDoc{
			HomeTeam:  m.Home().Name(),
			AwayTeam:  m.Away().Name(),
			HomeScore: m.HomeScore(),
			AwayScore: m.AwayScore(),
			Date:      timeutil.FormatDate(m.Date()),
		})
	}
	return doc
}

// FromDocument rebuilds a league: teams, then players with their statistics, then
// matches in log order. Tallies come from the replayed matches only.
func FromDocument(doc Document, logger *slog.Logger, recorder *metrics.Recorder) (*League, error) {
	// Replayed operations are not live traffic; the recorder is attached at the end.
	l := New(logger, nil)

	for i, td := range doc.Teams {
		if _, err := l.AddTeam(td.Name, td.City); err != nil {
			return nil, fmt.Errorf("team %d: %w", i+1, err)
		}
	}

	for i, pd := range doc.Players {
		if err := l.loadPlayer(pd); err != nil {
			return nil, fmt.Errorf("player %d (%s): %w", i+1, pd.Name, err)
		}
	}

	for i, md := range doc.Matches {
		if _, err := l.AddMatch(md.HomeTeam, md.AwayTeam, md.HomeScore, md.AwayScore, md.Date); err != nil {
			return nil, fmt.Errorf("match %d: %w", i+1, err)
		}
	}

	for _, td := range doc.Teams {
		team := l.teams[td.Name]
		if team.Wins() != td.Wins || team.Losses() != td.Losses {
			logging.Warn(logger, "stored tally differs from match log",
				logging.FieldTeam, td.Name,
				"stored_wins", td.Wins, "stored_losses", td.Losses,
				"wins", team.Wins(), "losses", team.Losses(),
			)
		}
	}

	l.metrics = recorder
	return l, nil
}

func (l *League) loadPlayer(pd PlayerDoc) error {
	position, err := players.ParsePosition(pd.Position)
	if err != nil {
		return err
	}

	var p *players.Player
	if pd.Team != nil && *pd.Team != "" {
		p, err = l.AddPlayerToTeam(*pd.Team, pd.Name, pd.Origin, pd.StartYear, position)
		if err != nil {
			return err
		}
	} else {
		p, err = l.addFreeAgent(pd.Name, pd.Origin, pd.StartYear, position)
		if err != nil {
			return err
		}
	}

	for j, sd := range pd.Statistics {
		if _, err := l.RecordStatistic(p.Name(), sd.Minutes, sd.Points, sd.Assists, sd.Rebounds, sd.Date); err != nil {
			return fmt.Errorf("statistic %d: %w", j+1, err)
		}
	}
	return nil
}

func (l *League) addFreeAgent(name, origin string, startYear int, position players.Position) (*players.Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.players[name]; exists {
		return nil, domain.Duplicate("player %s already exists in the league", name)
	}
	p, err := players.New(name, origin, startYear, position)
	if err != nil {
		return nil, err
	}
	l.register(p)
	return p, nil
}
