package grid

import (
	"fmt"
	"strings"
)

// Direction is a cardinal direction. North is +Y, East is +X.
type Direction int

// Direction constants, in walker order.
const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the four cardinal directions in walker order.
var Directions = [4]Direction{North, East, South, West}

var directionVectors = [4]Point{
	{0, 1},  // North
	{1, 0},  // East
	{0, -1}, // South
	{-1, 0}, // West
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a name such as "north" or "N" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// MarshalYAML writes the direction as its lowercase name.
func (d Direction) MarshalYAML() (interface{}, error) {
	return strings.ToLower(d.String()), nil
}

// UnmarshalYAML accepts a direction name.
func (d *Direction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// Vector returns the unit step for d. Invalid directions return the zero point.
func (d Direction) Vector() Point {
	if !d.Valid() {
		return Point{}
	}
	return directionVectors[d]
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// RunAxis returns the unit step along a wall facing d: X for north/south, Y for east/west.
func (d Direction) RunAxis() Point {
	if d == North || d == South {
		return Point{1, 0}
	}
	return Point{0, 1}
}

// Along returns the component of p measured along the run axis of d.
func (d Direction) Along(p Point) int {
	if d == North || d == South {
		return p.X
	}
	return p.Y
}

// Across returns the component of p perpendicular to the run axis of d.
func (d Direction) Across(p Point) int {
	if d == North || d == South {
		return p.Y
	}
	return p.X
}

// Compose builds a point from a run-axis coordinate and a perpendicular line coordinate.
func (d Direction) Compose(along, across int) Point {
	if d == North || d == South {
		return Point{along, across}
	}
	return Point{across, along}
}

// Neighbor returns the cell one step from p in direction d.
func (p Point) Neighbor(d Direction) Point {
	return p.Add(d.Vector())
}
