package league

import (
	"fmt"

	"github.com/preston-bernstein/nba-league-service/internal/domain/teams"
)

// ValidateConsistency scans the registries and returns one human-readable line per
// broken invariant. It never changes state and never fails; an empty slice means
// the league is consistent.
func (l *League) ValidateConsistency() []string {
	l.mu.RLock()
	issues := l.consistencyIssues()
	l.mu.RUnlock()

	l.metrics.RecordConsistencyIssues(len(issues))
	return issues
}

func (l *League) consistencyIssues() []string {
	issues := []string{}

	for _, p := range l.orderedPlayers() {
		if !p.HasTeam() {
			issues = append(issues, fmt.Sprintf("player %s does not belong to any team", p.Name()))
			continue
		}
		team, ok := l.teams[p.Team()]
		if !ok {
			issues = append(issues, fmt.Sprintf("player %s references team %s which is not registered", p.Name(), p.Team()))
			continue
		}
		if !team.Has(p) {
			issues = append(issues, fmt.Sprintf("player %s is linked to %s but missing from its roster", p.Name(), team.Name()))
		}
	}

	for _, team := range l.orderedTeams() {
		for _, member := range team.Players() {
			if member.Team() != team.Name() {
				issues = append(issues, fmt.Sprintf("player %s is on the %s roster but linked to %q", member.Name(), team.Name(), member.Team()))
			}
		}
		if team.Size() > teams.MaxPlayers {
			issues = append(issues, fmt.Sprintf("team %s has %d players (max %d)", team.Name(), team.Size(), teams.MaxPlayers))
		}
	}

	for i, m := range l.matches {
		if registered, ok := l.teams[m.Home().Name()]; !ok || registered != m.Home() {
			issues = append(issues, fmt.Sprintf("match %d: home team %s is not registered", i+1, m.Home().Name()))
		}
		if registered, ok := l.teams[m.Away().Name()]; !ok || registered != m.Away() {
			issues = append(issues, fmt.Sprintf("match %d: away team %s is not registered", i+1, m.Away().Name()))
		}
	}
	return issues
}
