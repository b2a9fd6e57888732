package teams

import (
	"fmt"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
	"github.com/preston-bernstein/nba-league-service/internal/domain/players"
)

func mustTeam(t *testing.T, name string) *Team {
	t.Helper()
	team, err := New(name, "Chicago")
	if err != nil {
		t.Fatalf("expected team, got %v", err)
	}
	return team
}

func mustPlayer(t *testing.T, name string) *players.Player {
	t.Helper()
	p, err := players.New(name, "USA", 2010, players.Center)
	if err != nil {
		t.Fatalf("expected player, got %v", err)
	}
	return p
}

func TestNewValidates(t *testing.T) {
	if _, err := New("", "Chicago"); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, err := New("Chicago Bulls", ""); err == nil {
		t.Fatalf("expected empty city to fail")
	}
}

func TestAddPlayerSetsBackReference(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	p := mustPlayer(t, "Michael Jordan")

	added, err := team.AddPlayer(p)
	if err != nil || !added {
		t.Fatalf("expected player added, got %v (%v)", added, err)
	}
	if p.Team() != "Chicago Bulls" {
		t.Fatalf("expected back-reference, got %q", p.Team())
	}

	added, err = team.AddPlayer(p)
	if err != nil || added {
		t.Fatalf("expected second add to be a no-op, got %v (%v)", added, err)
	}
	if team.Size() != 1 {
		t.Fatalf("expected roster of 1, got %d", team.Size())
	}
}

func TestAddPlayerRejectsPlayerOnOtherTeam(t *testing.T) {
	bulls := mustTeam(t, "Chicago Bulls")
	lakers := mustTeam(t, "Los Angeles Lakers")
	p := mustPlayer(t, "Dennis Rodman")
	_, _ = bulls.AddPlayer(p)

	if _, err := lakers.AddPlayer(p); !domain.IsKind(err, domain.KindInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if lakers.Size() != 0 || p.Team() != "Chicago Bulls" {
		t.Fatalf("expected player to stay on original team")
	}
}

func TestAddPlayerCapacity(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	for i := 0; i < MaxPlayers; i++ {
		if _, err := team.AddPlayer(mustPlayer(t, fmt.Sprintf("Player %d", i))); err != nil {
			t.Fatalf("unexpected error adding player %d: %v", i, err)
		}
	}

	extra := mustPlayer(t, "Player 16")
	if _, err := team.AddPlayer(extra); !domain.IsKind(err, domain.KindCapacity) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if team.Size() != MaxPlayers {
		t.Fatalf("expected roster to stay at %d, got %d", MaxPlayers, team.Size())
	}
	if extra.HasTeam() {
		t.Fatalf("expected rejected player to stay unattached")
	}
}

func TestRemovePlayer(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	p := mustPlayer(t, "Scottie Pippen")
	_, _ = team.AddPlayer(p)

	if !team.RemovePlayer(p) {
		t.Fatalf("expected removal to succeed")
	}
	if p.HasTeam() || team.Size() != 0 {
		t.Fatalf("expected player detached")
	}
	if team.RemovePlayer(p) {
		t.Fatalf("expected second removal to report false")
	}
	if team.RemovePlayer(nil) {
		t.Fatalf("expected nil removal to report false")
	}
}

func TestFindPlayerByNameIgnoresCase(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	_, _ = team.AddPlayer(mustPlayer(t, "Michael Jordan"))

	if got := team.FindPlayerByName("MICHAEL jordan"); got == nil {
		t.Fatalf("expected case-insensitive match")
	}
	if got := team.FindPlayerByName("Magic Johnson"); got != nil {
		t.Fatalf("expected nil for missing player")
	}
}

func TestWinPercentage(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	if got := team.WinPercentage(); got != 0.0 {
		t.Fatalf("expected 0 with no games, got %v", got)
	}
	team.RecordWin()
	team.RecordWin()
	team.RecordWin()
	team.RecordLoss()
	if got := team.WinPercentage(); got != 75.0 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestAveragesSkipsPlayersWithoutStatistics(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	if _, ok := team.Averages(); ok {
		t.Fatalf("expected no averages for empty roster")
	}

	a := mustPlayer(t, "A")
	b := mustPlayer(t, "B")
	idle := mustPlayer(t, "Idle")
	for _, p := range []*players.Player{a, b, idle} {
		_, _ = team.AddPlayer(p)
	}
	if _, ok := team.Averages(); ok {
		t.Fatalf("expected no averages when nobody has statistics")
	}

	_, _ = a.AddStatistic(30, 20, 4, 10, time.Time{})
	_, _ = b.AddStatistic(30, 10, 8, 2, time.Time{})

	avg, ok := team.Averages()
	if !ok {
		t.Fatalf("expected averages")
	}
	if avg.ActivePlayers != 2 || avg.Points != 15 || avg.Assists != 6 || avg.Rebounds != 6 {
		t.Fatalf("unexpected averages %+v", avg)
	}
}

func TestPlayersReturnsCopy(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	_, _ = team.AddPlayer(mustPlayer(t, "Michael Jordan"))

	roster := team.Players()
	roster[0] = nil
	if team.Players()[0] == nil {
		t.Fatalf("expected roster to remain unchanged")
	}
}

func TestInsertPlayerRestoresSlot(t *testing.T) {
	team := mustTeam(t, "Chicago Bulls")
	a, b, c := mustPlayer(t, "A"), mustPlayer(t, "B"), mustPlayer(t, "C")
	for _, p := range []*players.Player{a, b, c} {
		_, _ = team.AddPlayer(p)
	}

	idx := team.IndexOf(b)
	team.RemovePlayer(b)
	if _, err := team.InsertPlayer(b, idx); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	roster := team.Players()
	if roster[0] != a || roster[1] != b || roster[2] != c {
		t.Fatalf("expected original roster order restored")
	}
	if b.Team() != "Chicago Bulls" {
		t.Fatalf("expected back-reference restored")
	}
}

func TestNilTeamHasNoName(t *testing.T) {
	var team *Team
	if team.Name() != "" {
		t.Fatalf("expected empty name on nil team")
	}
	if domain.HasName(team) {
		t.Fatalf("expected nil team to lack a name")
	}
}
