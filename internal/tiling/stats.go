package tiling

// SizeClass groups tiles for fill statistics.
type SizeClass int

// Size classes.
const (
	Large  SizeClass = iota // Area 8 and up
	Medium                  // Area 4
	Small                   // Area 2 and below
	Filler                  // Gap fill
)

func (c SizeClass) String() string {
	switch c {
	case Large:
		return "large"
	case Medium:
		return "medium"
	case Small:
		return "small"
	default:
		return "filler"
	}
}

func classify(area int) SizeClass {
	switch {
	case area >= 8:
		return Large
	case area >= 4:
		return Medium
	default:
		return Small
	}
}

// Stats counts what one fill placed.
type Stats struct {
	ForcedEmpty   int `yaml:"forced_empty"` // Cells reserved as Void
	Forced        int `yaml:"forced"`
	ForcedSkipped int `yaml:"forced_skipped"`
	Large         int `yaml:"large"`
	Medium        int `yaml:"medium"`
	Small         int `yaml:"small"`
	Filler        int `yaml:"filler"`
	Remaining     int `yaml:"remaining"` // Empty cells left in the region
}

func (s *Stats) count(c SizeClass) {
	switch c {
	case Large:
		s.Large++
	case Medium:
		s.Medium++
	case Small:
		s.Small++
	default:
		s.Filler++
	}
}

// Total returns the number of tiles placed.
func (s Stats) Total() int {
	return s.Forced + s.Large + s.Medium + s.Small + s.Filler
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.ForcedEmpty += other.ForcedEmpty
	s.Forced += other.Forced
	s.ForcedSkipped += other.ForcedSkipped
	s.Large += other.Large
	s.Medium += other.Medium
	s.Small += other.Small
	s.Filler += other.Filler
	s.Remaining += other.Remaining
}
