package players

import (
	"strings"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
)

// FirstSeason is the first season of professional league play.
const FirstSeason = 1946

// Averages is a player's per-match mean line.
type Averages struct {
	Minutes    float64 `json:"minutes"`
	Points     float64 `json:"points"`
	Assists    float64 `json:"assists"`
	Rebounds   float64 `json:"rebounds"`
	Games      int     `json:"games"`
	Efficiency float64 `json:"efficiency"`
}

// BestStats holds single-match highs; each field may come from a different match.
type BestStats struct {
	Points   int `json:"points"`
	Assists  int `json:"assists"`
	Rebounds int `json:"rebounds"`
}

// Player is a league member with a stat history. The team back-reference is the
// team's name; the league owns both records.
type Player struct {
	name       string
	origin     string
	startYear  int
	position   Position
	statistics []Statistic
	team       string
}

var _ domain.Person = (*Player)(nil)

// New validates identity fields and builds a Player with no team.
func New(name, origin string, startYear int, position Position) (*Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalid("player name must be a non-empty string")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, domain.Invalid("player origin must be a non-empty string")
	}
	if startYear < FirstSeason {
		return nil, domain.Invalid("start year must be >= %d", FirstSeason)
	}
	if !position.Valid() {
		return nil, domain.Invalid("invalid position: %q", position)
	}
	return &Player{
		name:      name,
		origin:    origin,
		startYear: startYear,
		position:  position,
	}, nil
}

func (p *Player) Name() string       { return p.name }
func (p *Player) Origin() string     { return p.origin }
func (p *Player) StartYear() int     { return p.startYear }
func (p *Player) Position() Position { return p.position }

// Team returns the name of the player's current team, or "" for a free agent.
func (p *Player) Team() string { return p.team }

// HasTeam reports whether the player is attached to a team.
func (p *Player) HasTeam() bool { return p.team != "" }

// SetTeam updates the back-reference. Only roster operations should call it;
// nil clears the reference.
func (p *Player) SetTeam(team domain.Named) error {
	if domain.IsNil(team) {
		p.team = ""
		return nil
	}
	if !domain.HasName(team) {
		return &domain.CapabilityError{Argument: "team", Message: "team must expose a name"}
	}
	p.team = team.Name()
	return nil
}

// Equal compares identity by (name, origin).
func (p *Player) Equal(other domain.Person) bool {
	if p == nil || other == nil {
		return false
	}
	return p.name == other.Name() && p.origin == other.Origin()
}

// AddStatistic validates and appends a stat line.
func (p *Player) AddStatistic(minutes float64, points, assists, rebounds int, date time.Time) (Statistic, error) {
	stat, err := NewStatistic(minutes, points, assists, rebounds, date)
	if err != nil {
		return Statistic{}, err
	}
	p.statistics = append(p.statistics, stat)
	return stat, nil
}

// Statistics returns a copy of the stat history in insertion order.
func (p *Player) Statistics() []Statistic {
	out := make([]Statistic, len(p.statistics))
	copy(out, p.statistics)
	return out
}

// HasStatistics reports whether the player has played at least one recorded match.
func (p *Player) HasStatistics() bool { return len(p.statistics) > 0 }

// Averages returns mean values across recorded matches. Efficiency is the mean of
// per-match efficiencies, not the efficiency of the means.
func (p *Player) Averages() (Averages, bool) {
	n := len(p.statistics)
	if n == 0 {
		return Averages{}, false
	}
	var minutes, efficiency float64
	var points, assists, rebounds int
	for _, s := range p.statistics {
		minutes += s.minutes
		points += s.points
		assists += s.assists
		rebounds += s.rebounds
		efficiency += s.Efficiency()
	}
	count := float64(n)
	return Averages{
		Minutes:    minutes / count,
		Points:     float64(points) / count,
		Assists:    float64(assists) / count,
		Rebounds:   float64(rebounds) / count,
		Games:      n,
		Efficiency: efficiency / count,
	}, true
}

// BestStats returns the independent single-match highs.
func (p *Player) BestStats() (BestStats, bool) {
	if len(p.statistics) == 0 {
		return BestStats{}, false
	}
	var best BestStats
	for _, s := range p.statistics {
		best.Points = max(best.Points, s.points)
		best.Assists = max(best.Assists, s.assists)
		best.Rebounds = max(best.Rebounds, s.rebounds)
	}
	return best, true
}

func (p *Player) String() string {
	return p.name + " (" + string(p.position) + ") - " + p.origin
}
