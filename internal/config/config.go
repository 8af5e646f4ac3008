// Package config handles generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Grid           GridConfig          `yaml:"grid"`
	Room           string              `yaml:"room"`  // Catalog room to build
	Style          string              `yaml:"style"` // Overrides the room's style when set
	Seed           int64               `yaml:"seed"`  // -1 picks a time-based seed
	RandomWalk     RandomWalkConfig    `yaml:"random_walk"`
	IrregularWalls IrregularWallConfig `yaml:"irregular_walls"`
	Chunk          ChunkConfig         `yaml:"chunk"`
	Protrusion     ProtrusionConfig    `yaml:"protrusion"`
	Catalog        CatalogConfig       `yaml:"catalog"`
	Output         OutputConfig        `yaml:"output"`
	Logging        LoggingConfig       `yaml:"logging"`
}

// GridConfig holds the room grid dimensions.
type GridConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float32 `yaml:"cell_size"` // World units per cell, used when the room does not set one
}

// RandomWalkConfig holds random-walk shape parameters.
type RandomWalkConfig struct {
	FillRatio       float32 `yaml:"fill_ratio"`
	BranchChance    float32 `yaml:"branch_chance"`
	DirChangeChance float32 `yaml:"dir_change_chance"`
	MaxWalkers      int     `yaml:"max_walkers"`
	SmoothingPasses int     `yaml:"smoothing_passes"`
	RemoveIslands   bool    `yaml:"remove_islands"`
	MarkWalls       bool    `yaml:"mark_walls"` // Mark the standard 2-cell wall mask after carving
}

// IrregularWallConfig holds variable wall thickness parameters.
type IrregularWallConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Chance2Cell      float32 `yaml:"chance_2_cell"`
	Chance4Cell      float32 `yaml:"chance_4_cell"`
	MinSegmentLength int     `yaml:"min_segment_length"`
	MaxSegmentLength int     `yaml:"max_segment_length"`
}

// ChunkConfig holds chunk-aggregate shape parameters.
type ChunkConfig struct {
	MinChunks  int     `yaml:"min_chunks"`
	MaxChunks  int     `yaml:"max_chunks"`
	Chance2x2  float32 `yaml:"chance_2x2"`
	Chance4x4  float32 `yaml:"chance_4x4"`
	ChanceRect float32 `yaml:"chance_rect"`
	MarkCustom bool    `yaml:"mark_custom"` // Carve chunks as Custom instead of Empty
}

// ProtrusionConfig holds base-room-plus-protrusions parameters.
type ProtrusionConfig struct {
	BasePercentage float32 `yaml:"base_percentage"`
	MinProtrusions int     `yaml:"min_protrusions"`
	MaxProtrusions int     `yaml:"max_protrusions"`
	MinSize        int     `yaml:"min_size"`
	MaxSize        int     `yaml:"max_size"`
}

// CatalogConfig holds catalog file paths.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig holds where generated rooms are written.
type OutputConfig struct {
	Path          string `yaml:"path"`        // Placement YAML, empty writes to stdout
	PreviewPNG    string `yaml:"preview_png"` // Optional PNG preview
	PixelsPerCell int    `yaml:"pixels_per_cell"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:    20,
			Height:   20,
			CellSize: 100,
		},
		Style: "",
		Seed:  -1,
		RandomWalk: RandomWalkConfig{
			FillRatio:       0.6,
			BranchChance:    0.3,
			DirChangeChance: 0.4,
			MaxWalkers:      3,
			SmoothingPasses: 2,
			RemoveIslands:   true,
		},
		IrregularWalls: IrregularWallConfig{
			Enabled:          false,
			Chance2Cell:      0.5,
			Chance4Cell:      0.5,
			MinSegmentLength: 2,
			MaxSegmentLength: 6,
		},
		Chunk: ChunkConfig{
			MinChunks:  3,
			MaxChunks:  8,
			Chance2x2:  0.4,
			Chance4x4:  0.3,
			ChanceRect: 0.3,
			MarkCustom: true,
		},
		Protrusion: ProtrusionConfig{
			BasePercentage: 0.6,
			MinProtrusions: 1,
			MaxProtrusions: 4,
			MinSize:        2,
			MaxSize:        4,
		},
		Catalog: CatalogConfig{
			Path: "catalog.yaml",
		},
		Output: OutputConfig{
			PixelsPerCell: 16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
