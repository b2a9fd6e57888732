// Package league owns the canonical team and player registries and the match log,
// and is the only place the player/team graph is changed.
package league

import (
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/games"
	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
	"github.com/preston-bernstein/nba-league-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-league-service/internal/logging"
	"github.com/preston-bernstein/nba-league-service/internal/metrics"
)

// Operation names used for metrics and logs.
const (
	OpAddTeam         = "add_team"
	OpAddPlayer       = "add_player"
	OpTransferPlayer  = "transfer_player"
	OpRecordStatistic = "record_statistic"
	OpAddMatch        = "add_match"
	OpRepairOrphans   = "repair_orphans"
)

// League is the source of truth for teams, players and matches.
//
// Mutations take the write lock and queries the read lock. Entity pointers handed
// out by FindTeam/FindPlayer must only be changed through League methods.
type League struct {
	mu sync.RWMutex

	teams       map[string]*teams.Team
	teamOrder   []string
	players     map[string]*players.Player
	playerOrder []string
	matches     []*games.Match

	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs an empty League. Logger and recorder may be nil.
func New(logger *slog.Logger, recorder *metrics.Recorder) *League {
	return &League{
		teams:   make(map[string]*teams.Team),
		players: make(map[string]*players.Player),
		logger:  logger,
		metrics: recorder,
	}
}

// AddTeam registers a new team; names are unique.
func (l *League) AddTeam(name, city string) (team *teams.Team, err error) {
	defer l.observe(OpAddTeam, time.Now(), &err, logging.FieldTeam, name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.teams[name]; exists {
		return nil, domain.Duplicate("team %s already exists", name)
	}
	team, err = teams.New(name, city)
	if err != nil {
		return nil, err
	}
	l.teams[name] = team
	l.teamOrder = append(l.teamOrder, name)
	return team, nil
}

// FindTeam looks a team up by exact name.
func (l *League) FindTeam(name string) (*teams.Team, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	team, ok := l.teams[name]
	return team, ok
}

// FindPlayer looks a player up by exact name.
func (l *League) FindPlayer(name string) (*players.Player, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.players[name]
	return p, ok
}

// AddPlayerToTeam creates a player on a team. The player is registered only after
// the roster accepted it, so a rejected add leaves no trace.
func (l *League) AddPlayerToTeam(teamName, name, origin string, startYear int, position players.Position) (p *players.Player, err error) {
	defer l.observe(OpAddPlayer, time.Now(), &err, logging.FieldTeam, teamName, logging.FieldPlayer, name)

	l.mu.Lock()
	defer l.mu.Unlock()

	team, ok := l.teams[teamName]
	if !ok {
		return nil, domain.NotFound("team %s not found", teamName)
	}
	if _, exists := l.players[name]; exists {
		return nil, domain.Duplicate("player %s already exists in the league", name)
	}
	p, err = players.New(name, origin, startYear, position)
	if err != nil {
		return nil, err
	}
	added, err := team.AddPlayer(p)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, domain.Invalid("could not add %s to %s", name, teamName)
	}
	l.register(p)
	return p, nil
}

// TransferPlayer moves a player to another team. The move detaches first; when the
// new roster refuses the player, the player goes back to the original slot.
func (l *League) TransferPlayer(name, newTeamName string) (err error) {
	defer l.observe(OpTransferPlayer, time.Now(), &err, logging.FieldPlayer, name, logging.FieldTeam, newTeamName)

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.players[name]
	if !ok {
		return domain.NotFound("player %s not found", name)
	}
	target, ok := l.teams[newTeamName]
	if !ok {
		return domain.NotFound("team %s not found", newTeamName)
	}
	if p.Team() == target.Name() {
		return domain.Invalid("%s is already on %s", name, newTeamName)
	}

	previousName := p.Team()
	origin := l.teams[previousName]
	slot := -1
	if origin != nil {
		slot = origin.IndexOf(p)
		origin.RemovePlayer(p)
	}
	// A back-reference to an unregistered team would block the attach.
	_ = p.SetTeam(nil)

	if _, attachErr := l.attach(target, p); attachErr != nil {
		l.restore(p, origin, slot, previousName)
		return attachErr
	}
	return nil
}

// RecordStatistic appends a stat line to a registered player.
func (l *League) RecordStatistic(name string, minutes float64, points, assists, rebounds int, date time.Time) (stat players.Statistic, err error) {
	defer l.observe(OpRecordStatistic, time.Now(), &err, logging.FieldPlayer, name)

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.players[name]
	if !ok {
		return players.Statistic{}, domain.NotFound("player %s not found", name)
	}
	return p.AddStatistic(minutes, points, assists, rebounds, date)
}

// AddMatch records a finished match from an ISO (YYYY-MM-DD) date. Team names are
// resolved before the date is parsed.
func (l *League) AddMatch(homeName, awayName string, homeScore, awayScore int, dateISO string) (m *games.Match, err error) {
	defer l.observe(OpAddMatch, time.Now(), &err, "home", homeName, "away", awayName, logging.FieldDate, dateISO)

	l.mu.Lock()
	defer l.mu.Unlock()

	home, away, err := l.matchTeams(homeName, awayName)
	if err != nil {
		return nil, err
	}
	date, err := games.ParseDate(dateISO)
	if err != nil {
		return nil, err
	}
	return l.appendMatch(home, away, homeScore, awayScore, date)
}

// AddMatchOn records a finished match. Tallies change only when the match is
// valid, and a rejected match is never appended to the log.
func (l *League) AddMatchOn(homeName, awayName string, homeScore, awayScore int, date time.Time) (m *games.Match, err error) {
	defer l.observe(OpAddMatch, time.Now(), &err, "home", homeName, "away", awayName)

	l.mu.Lock()
	defer l.mu.Unlock()

	home, away, err := l.matchTeams(homeName, awayName)
	if err != nil {
		return nil, err
	}
	return l.appendMatch(home, away, homeScore, awayScore, date)
}

// matchTeams resolves both sides of a fixture; callers hold the write lock.
func (l *League) matchTeams(homeName, awayName string) (*teams.Team, *teams.Team, error) {
	home, ok := l.teams[homeName]
	if !ok {
		return nil, nil, domain.NotFound("team %s not found", homeName)
	}
	away, ok := l.teams[awayName]
	if !ok {
		return nil, nil, domain.NotFound("team %s not found", awayName)
	}
	return home, away, nil
}

func (l *League) appendMatch(home, away *teams.Team, homeScore, awayScore int, date time.Time) (*games.Match, error) {
	m, err := games.New(home, away, homeScore, awayScore, date)
	if err != nil {
		return nil, err
	}
	l.matches = append(l.matches, m)
	return m, nil
}

// RepairOrphans attaches every player without a team to the first registered team
// with roster space and returns how many were placed.
func (l *League) RepairOrphans() (repaired int) {
	var err error
	defer l.observe(OpRepairOrphans, time.Now(), &err)

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, name := range l.playerOrder {
		p := l.players[name]
		if p.HasTeam() {
			continue
		}
		for _, teamName := range l.teamOrder {
			team := l.teams[teamName]
			if team.IsFull() {
				continue
			}
			if added, addErr := team.AddPlayer(p); addErr == nil && added {
				repaired++
				logging.Info(l.logger, "orphaned player attached",
					logging.FieldPlayer, name, logging.FieldTeam, teamName)
				break
			}
		}
	}
	return repaired
}

func (l *League) attach(team *teams.Team, p *players.Player) (bool, error) {
	added, err := team.AddPlayer(p)
	if err != nil {
		return false, err
	}
	if !added {
		return false, domain.Invalid("could not add %s to %s", p.Name(), team.Name())
	}
	return true, nil
}

func (l *League) restore(p *players.Player, origin *teams.Team, slot int, previousName string) {
	if origin != nil {
		if _, err := origin.InsertPlayer(p, slot); err != nil {
			logging.Error(l.logger, "transfer rollback failed", err,
				logging.FieldPlayer, p.Name(), logging.FieldTeam, origin.Name())
		}
		return
	}
	if previousName != "" {
		_ = p.SetTeam(teamRef(previousName))
	}
}

// register adds p to the player registry; callers hold the write lock.
func (l *League) register(p *players.Player) {
	l.players[p.Name()] = p
	l.playerOrder = append(l.playerOrder, p.Name())
}

func (l *League) observe(op string, start time.Time, errp *error, args ...any) {
	var err error
	if errp != nil {
		err = *errp
	}
	l.metrics.RecordOperation(op, time.Since(start), err)
	logging.Outcome(l.logger, "league operation", err, append([]any{logging.FieldOperation, op}, args...)...)
}

// teamRef is a bare name used to put back a back-reference to a team the league
// does not know about.
type teamRef string

func (r teamRef) Name() string { return string(r) }
