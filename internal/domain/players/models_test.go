package players

import (
	"testing"
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
)

type namedStub string

func (n namedStub) Name() string { return string(n) }

func mustPlayer(t *testing.T, name string) *Player {
	t.Helper()
	p, err := New(name, "USA", 2003, SmallForward)
	if err != nil {
		t.Fatalf("expected player, got %v", err)
	}
	return p
}

func TestNewValidatesIdentity(t *testing.T) {
	cases := []struct {
		name     string
		origin   string
		year     int
		position Position
	}{
		{"", "USA", 2003, Center},
		{"LeBron James", " ", 2003, Center},
		{"LeBron James", "USA", 1945, Center},
		{"LeBron James", "USA", 2003, Position("Sixth Man")},
	}
	for _, tc := range cases {
		if _, err := New(tc.name, tc.origin, tc.year, tc.position); !domain.IsKind(err, domain.KindInvalid) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
	if _, err := New("George Mikan", "USA", FirstSeason, Center); err != nil {
		t.Fatalf("expected first season to be accepted, got %v", err)
	}
}

func TestParsePosition(t *testing.T) {
	got, err := ParsePosition(" Point Guard ")
	if err != nil || got != PointGuard {
		t.Fatalf("expected point guard, got %q (%v)", got, err)
	}
	if _, err := ParsePosition("point guard"); err == nil {
		t.Fatalf("expected display names to be case sensitive")
	}
}

func TestAveragesEmpty(t *testing.T) {
	p := mustPlayer(t, "LeBron James")
	if _, ok := p.Averages(); ok {
		t.Fatalf("expected no averages without statistics")
	}
	if _, ok := p.BestStats(); ok {
		t.Fatalf("expected no best stats without statistics")
	}
}

func TestAveragesUsesMeanOfEfficiencies(t *testing.T) {
	p := mustPlayer(t, "LeBron James")
	if _, err := p.AddStatistic(10, 10, 0, 0, time.Time{}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := p.AddStatistic(30, 30, 6, 4, time.Time{}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	avg, ok := p.Averages()
	if !ok {
		t.Fatalf("expected averages")
	}
	if avg.Games != 2 || avg.Minutes != 20 || avg.Points != 20 || avg.Assists != 3 || avg.Rebounds != 2 {
		t.Fatalf("unexpected averages %+v", avg)
	}
	// (1.0 + 40/30) / 2, not (25/20).
	want := (1.0 + 40.0/30.0) / 2
	if avg.Efficiency != want {
		t.Fatalf("expected efficiency %v, got %v", want, avg.Efficiency)
	}
}

func TestBestStatsAreIndependent(t *testing.T) {
	p := mustPlayer(t, "Dennis Rodman")
	_, _ = p.AddStatistic(30, 30, 2, 5, time.Time{})
	_, _ = p.AddStatistic(30, 4, 9, 20, time.Time{})

	best, ok := p.BestStats()
	if !ok {
		t.Fatalf("expected best stats")
	}
	if best.Points != 30 || best.Assists != 9 || best.Rebounds != 20 {
		t.Fatalf("unexpected best stats %+v", best)
	}
}

func TestAddStatisticPropagatesValidation(t *testing.T) {
	p := mustPlayer(t, "LeBron James")
	if _, err := p.AddStatistic(49, 1, 1, 1, time.Time{}); !domain.IsKind(err, domain.KindInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(p.Statistics()) != 0 {
		t.Fatalf("expected rejected statistic to be discarded")
	}
}

func TestSetTeamRequiresName(t *testing.T) {
	p := mustPlayer(t, "LeBron James")

	if err := p.SetTeam(namedStub("")); err == nil {
		t.Fatalf("expected capability error")
	} else if _, ok := domain.AsCapabilityError(err); !ok {
		t.Fatalf("expected capability error, got %T", err)
	}
	if err := p.SetTeam(namedStub("Los Angeles Lakers")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if p.Team() != "Los Angeles Lakers" || !p.HasTeam() {
		t.Fatalf("expected team back-reference, got %q", p.Team())
	}
	_ = p.SetTeam(nil)
	if p.HasTeam() {
		t.Fatalf("expected nil to clear the team")
	}
}

func TestEqualUsesNameAndOrigin(t *testing.T) {
	a := mustPlayer(t, "Anthony Davis")
	b, _ := New("Anthony Davis", "USA", 2012, PowerForward)
	c, _ := New("Anthony Davis", "Canada", 2012, PowerForward)

	if !a.Equal(b) {
		t.Fatalf("expected same name and origin to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected different origin to compare unequal")
	}
}

func TestStatisticsReturnsCopy(t *testing.T) {
	p := mustPlayer(t, "LeBron James")
	_, _ = p.AddStatistic(30, 20, 5, 5, time.Time{})

	stats := p.Statistics()
	stats[0] = Statistic{}
	if p.Statistics()[0].Points() != 20 {
		t.Fatalf("expected player history to remain unchanged")
	}
}

type rosterStub struct{ name string }

func (r *rosterStub) Name() string { return r.name }

func TestSetTeamTypedNilClears(t *testing.T) {
	p := mustPlayer(t, "Jayson Tatum")
	if err := p.SetTeam(&rosterStub{name: "Boston Celtics"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	var none *rosterStub
	if err := p.SetTeam(none); err != nil {
		t.Fatalf("expected typed nil to clear the team, got %v", err)
	}
	if p.HasTeam() || p.Team() != "" {
		t.Fatalf("expected no team, got %q", p.Team())
	}
}
