package players

import (
	"strings"

	"github.com/preston-bernstein/nba-league-service/internal/domain"
)

// Position is the on-court role a player is listed at.
type Position string

const (
	PointGuard    Position = "Point Guard"
	ShootingGuard Position = "Shooting Guard"
	SmallForward  Position = "Small Forward"
	PowerForward  Position = "Power Forward"
	Center        Position = "Center"
)

// Positions lists every valid position in roster order.
var Positions = []Position{PointGuard, ShootingGuard, SmallForward, PowerForward, Center}

// ParsePosition maps a display name (e.g. "Point Guard") to a Position.
func ParsePosition(raw string) (Position, error) {
	raw = strings.TrimSpace(raw)
	for _, p := range Positions {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", domain.Invalid("invalid position: %q", raw)
}

// Valid reports whether p is one of the five known positions.
func (p Position) Valid() bool {
	_, err := ParsePosition(string(p))
	return err == nil
}
