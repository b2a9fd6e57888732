package players

import (
	"time"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
)

// MaxMinutes is the length of a regulation game.
const MaxMinutes = 48.0

// Statistic is one player's line for a single match. Values are only built through
// NewStatistic, so a Statistic is always within range.
type Statistic struct {
	minutes  float64
	points   int
	assists  int
	rebounds int
	date     time.Time
}

// NewStatistic validates and builds a stat line. A zero date defaults to now.
func NewStatistic(minutes float64, points, assists, rebounds int, date time.Time) (Statistic, error) {
	if minutes < 0 || minutes > MaxMinutes {
		return Statistic{}, domain.Invalid("minutes must be between 0 and %g", MaxMinutes)
	}
	if points < 0 {
		return Statistic{}, domain.Invalid("points cannot be negative")
	}
	if assists < 0 {
		return Statistic{}, domain.Invalid("assists cannot be negative")
	}
	if rebounds < 0 {
		return Statistic{}, domain.Invalid("rebounds cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return Statistic{
		minutes:  minutes,
		points:   points,
		assists:  assists,
		rebounds: rebounds,
		date:     date,
	}, nil
}

func (s Statistic) Minutes() float64 { return s.minutes }
func (s Statistic) Points() int      { return s.points }
func (s Statistic) Assists() int     { return s.assists }
func (s Statistic) Rebounds() int    { return s.rebounds }
func (s Statistic) Date() time.Time  { return s.date }

// Efficiency is (points+assists+rebounds) per minute played, or 0 without minutes.
func (s Statistic) Efficiency() float64 {
	if s.minutes == 0 {
		return 0
	}
	return float64(s.points+s.assists+s.rebounds) / s.minutes
}
