package domain

import "reflect"

// Named is the identity capability shared by teams and people.
type Named interface {
	Name() string
}

// Person is the capability every roster member exposes. Player is the only
// implementation today; staff types can satisfy it without touching the league.
type Person interface {
	Named
	Origin() string
}

// IsNil reports whether n is nil or wraps a nil pointer, as a nil *teams.Team does.
func IsNil(n Named) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// HasName reports whether n carries a usable identity.
func HasName(n Named) bool {
	return !IsNil(n) && n.Name() != ""
}
