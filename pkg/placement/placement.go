// Package placement holds the records generation hands to the instantiation layer.
package placement

import (
	"fmt"

	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
)

// Kind says which pass produced a record.
type Kind int

// Record kinds.
const (
	Floor Kind = iota
	WallBase
	WallMiddle
	WallTop
	Corner
	Doorway
	Ceiling
)

var kindNames = [...]string{"floor", "wall_base", "wall_middle", "wall_top", "corner", "doorway", "ceiling"}

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalYAML writes the kind as its name.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Record is one placed mesh: the asset reference, the cells it covers and its room-local transform.
type Record struct {
	Kind      Kind           `yaml:"kind"`
	Mesh      string         `yaml:"mesh"`
	Cell      grid.Point     `yaml:"cell"`      // Origin cell (lowest X, lowest Y) of the footprint
	Footprint grid.Point     `yaml:"footprint"` // Cells covered, after rotation
	Rotation  int            `yaml:"rotation"`  // Degrees: 0, 90, 180 or 270
	Facing    grid.Direction `yaml:"facing"`    // Walls, corners and doorways only
	Transform math.Transform `yaml:"transform"`
}

// Rect returns the cell rectangle covered by the record.
func (r Record) Rect() grid.Rect {
	return grid.Rect{Min: r.Cell, Size: r.Footprint}
}

// List is an ordered collection of records, in placement order.
type List struct {
	Records []Record
}

// Add appends records.
func (l *List) Add(records ...Record) {
	l.Records = append(l.Records, records...)
}

// Len returns the number of records.
func (l *List) Len() int {
	return len(l.Records)
}

// OfKind returns the records of the given kinds, in placement order.
func (l *List) OfKind(kinds ...Kind) []Record {
	var out []Record
	for _, r := range l.Records {
		for _, k := range kinds {
			if r.Kind == k {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Clear removes every record of the given kinds and returns how many were removed.
// Slices handed out before the call keep their contents.
func (l *List) Clear(kinds ...Kind) int {
	kept := make([]Record, 0, len(l.Records))
	removed := 0
	for _, r := range l.Records {
		drop := false
		for _, k := range kinds {
			if r.Kind == k {
				drop = true
				break
			}
		}
		if drop {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	l.Records = kept
	return removed
}

// CountByKind returns the number of records for each kind.
func (l *List) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, r := range l.Records {
		counts[r.Kind]++
	}
	return counts
}
