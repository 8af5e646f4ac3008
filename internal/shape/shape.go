// Package shape decides which grid cells belong to a room. Each room style is one Shape.
package shape

import (
	"fmt"
	"strings"

	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// Kind identifies a room style.
type Kind int

// Room styles.
const (
	Uniform Kind = iota
	RandomWalk
	Chunk
	Protrusion
	Preset
)

// Kinds lists every style in declaration order.
var Kinds = [...]Kind{Uniform, RandomWalk, Chunk, Protrusion, Preset}

var kindNames = [...]string{"uniform", "random_walk", "chunk", "protrusion", "preset"}

// String returns the style name used in config and catalog files.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts a style name. "randomwalk", "random-walk" and "chunky" are accepted too.
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch name {
	case "", "uniform":
		return Uniform, nil
	case "random_walk", "randomwalk", "randwalk":
		return RandomWalk, nil
	case "chunk", "chunky":
		return Chunk, nil
	case "protrusion", "protrusions":
		return Protrusion, nil
	case "preset":
		return Preset, nil
	}
	return Uniform, fmt.Errorf("unknown room style %q", s)
}

// Shape populates a grid with one room footprint. The grid keeps its size; every cell is rewritten.
type Shape interface {
	Kind() Kind
	Generate(g *grid.Grid, r *rng.Stream) Result
}

// Result summarizes a shape run.
type Result struct {
	Occupied int         // Cells inside the room footprint
	Chunks   []grid.Rect // Placed chunks, in placement order (chunk styles only)
	TooSmall bool        // Footprint below MinRoomCells
}

// MinRoomCells is the smallest footprint a carved room should have.
const MinRoomCells = 16

// FillRatio returns the footprint's share of the whole grid.
func (r Result) FillRatio(g *grid.Grid) float32 {
	if g.Total() == 0 {
		return 0
	}
	return float32(r.Occupied) / float32(g.Total())
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
