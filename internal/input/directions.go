package input

import (
	"errors"
	"fmt"
)

// Direction is one of the four cardinal movement directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// AllDirections lists every direction in a fixed order.
var AllDirections = [4]Direction{Up, Down, Left, Right}

// ErrUnknownDirection is returned when a direction name cannot be parsed.
var ErrUnknownDirection = errors.New("unknown direction")

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= Right
}

// ParseDirection converts a direction name ("up", "down", "left", "right").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Directions is the set of currently held directions, one bit per direction.
// The zero value is the empty set.
type Directions uint8

func (d Direction) bit() Directions {
	return 1 << d
}

// Press returns the set with d added.
func (s Directions) Press(d Direction) Directions {
	if !d.Valid() {
		return s
	}
	return s | d.bit()
}

// Release returns the set with d removed. Releasing an inactive direction is a no-op.
func (s Directions) Release(d Direction) Directions {
	if !d.Valid() {
		return s
	}
	return s &^ d.bit()
}

// Only returns a set holding just d, as a touch d-pad does.
func Only(d Direction) Directions {
	return Directions(0).Press(d)
}

// Has reports whether d is held.
func (s Directions) Has(d Direction) bool {
	return d.Valid() && s&d.bit() != 0
}

// Empty reports whether no direction is held.
func (s Directions) Empty() bool {
	return s == 0
}

func (s Directions) String() string {
	out := "{"
	first := true
	for _, d := range AllDirections {
		if !s.Has(d) {
			continue
		}
		if !first {
			out += ","
		}
		out += d.String()
		first = false
	}
	return out + "}"
}
