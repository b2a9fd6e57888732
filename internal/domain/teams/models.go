package teams

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
)

// MaxPlayers caps a roster.
const MaxPlayers = 15

// TeamAverages is the mean of each active player's own averages.
type TeamAverages struct {
	Points        float64 `json:"points"`
	Assists       float64 `json:"assists"`
	Rebounds      float64 `json:"rebounds"`
	ActivePlayers int     `json:"activePlayers"`
}

// Team is a city-tagged roster with a win/loss tally. It references players it does
// not own and is the authority on roster membership.
type Team struct {
	name   string
	city   string
	roster []*players.Player
	wins   int
	losses int
}

var _ domain.Named = (*Team)(nil)

// New validates and builds an empty Team.
func New(name, city string) (*Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalid("team name must be a non-empty string")
	}
	if strings.TrimSpace(city) == "" {
		return nil, domain.Invalid("team city must be a non-empty string")
	}
	return &Team{name: name, city: city}, nil
}

func (t *Team) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}
func (t *Team) City() string { return t.city }
func (t *Team) Wins() int    { return t.wins }
func (t *Team) Losses() int  { return t.losses }
func (t *Team) Size() int    { return len(t.roster) }
func (t *Team) IsFull() bool { return len(t.roster) >= MaxPlayers }

// GamesPlayed counts decided games; ties never reach the tally.
func (t *Team) GamesPlayed() int { return t.wins + t.losses }

// Players returns a copy of the roster in insertion order.
func (t *Team) Players() []*players.Player {
	out := make([]*players.Player, len(t.roster))
	copy(out, t.roster)
	return out
}

// Has reports whether p is on this roster.
func (t *Team) Has(p *players.Player) bool {
	return t.indexOf(p) >= 0
}

// AddPlayer attaches p to the roster. It returns false without error when p is
// already on the roster. A player on another team must be removed there first.
func (t *Team) AddPlayer(p *players.Player) (bool, error) {
	return t.InsertPlayer(p, len(t.roster))
}

// IndexOf returns p's roster slot, or -1.
func (t *Team) IndexOf(p *players.Player) int {
	return t.indexOf(p)
}

// InsertPlayer is AddPlayer at a given roster slot; out-of-range slots append.
// It lets a caller put a player back exactly where a RemovePlayer took it from.
func (t *Team) InsertPlayer(p *players.Player, index int) (bool, error) {
	if p == nil {
		return false, &domain.CapabilityError{Argument: "player", Message: "player is required"}
	}
	if len(t.roster) >= MaxPlayers {
		return false, domain.CapacityExceeded("team %s cannot have more than %d players", t.name, MaxPlayers)
	}
	if t.Has(p) {
		return false, nil
	}
	if p.HasTeam() && p.Team() != t.name {
		return false, domain.Invalid("player %s already belongs to %s", p.Name(), p.Team())
	}
	if err := p.SetTeam(t); err != nil {
		return false, err
	}
	if index < 0 || index >= len(t.roster) {
		t.roster = append(t.roster, p)
		return true, nil
	}
	t.roster = append(t.roster, nil)
	copy(t.roster[index+1:], t.roster[index:])
	t.roster[index] = p
	return true, nil
}

// RemovePlayer detaches p; it returns false when p was not on the roster.
func (t *Team) RemovePlayer(p *players.Player) bool {
	idx := t.indexOf(p)
	if idx < 0 {
		return false
	}
	t.roster = append(t.roster[:idx], t.roster[idx+1:]...)
	_ = p.SetTeam(nil)
	return true
}

// FindPlayerByName is a case-insensitive roster lookup.
func (t *Team) FindPlayerByName(name string) *players.Player {
	// Casers keep state, so each lookup gets its own.
	folder := cases.Fold()
	want := folder.String(name)
	for _, p := range t.roster {
		if folder.String(p.Name()) == want {
			return p
		}
	}
	return nil
}

// RecordWin and RecordLoss are called once per decided match at finalization.
func (t *Team) RecordWin()  { t.wins++ }
func (t *Team) RecordLoss() { t.losses++ }

// WinPercentage is wins over decided games, scaled to 100.
func (t *Team) WinPercentage() float64 {
	total := t.GamesPlayed()
	if total == 0 {
		return 0.0
	}
	return float64(t.wins) / float64(total) * 100
}

// Averages averages per-player averages over roster members with at least one
// statistic; players without statistics are left out of the denominator.
func (t *Team) Averages() (TeamAverages, bool) {
	if len(t.roster) == 0 {
		return TeamAverages{}, false
	}
	var out TeamAverages
	for _, p := range t.roster {
		avg, ok := p.Averages()
		if !ok {
			continue
		}
		out.Points += avg.Points
		out.Assists += avg.Assists
		out.Rebounds += avg.Rebounds
		out.ActivePlayers++
	}
	if out.ActivePlayers == 0 {
		return TeamAverages{}, false
	}
	n := float64(out.ActivePlayers)
	out.Points /= n
	out.Assists /= n
	out.Rebounds /= n
	return out, true
}

func (t *Team) String() string {
	return t.name + " (" + t.city + ")"
}

func (t *Team) indexOf(p *players.Player) int {
	if p == nil {
		return -1
	}
	for i, member := range t.roster {
		if member == p || member.Equal(p) {
			return i
		}
	}
	return -1
}
