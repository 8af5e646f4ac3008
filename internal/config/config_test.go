package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.Width != 20 || cfg.Grid.Height != 20 {
		t.Errorf("expected 20x20 grid, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Grid.CellSize != 100 {
		t.Errorf("expected cell size 100, got %v", cfg.Grid.CellSize)
	}
	if cfg.Seed != -1 {
		t.Errorf("expected time-based seed by default, got %d", cfg.Seed)
	}

	if cfg.RandomWalk.FillRatio != 0.6 {
		t.Errorf("expected fill ratio 0.6, got %v", cfg.RandomWalk.FillRatio)
	}
	if !cfg.RandomWalk.RemoveIslands {
		t.Error("expected island removal on by default")
	}

	if cfg.Chunk.MinChunks != 3 || cfg.Chunk.MaxChunks != 8 {
		t.Errorf("expected chunks 3..8, got %d..%d", cfg.Chunk.MinChunks, cfg.Chunk.MaxChunks)
	}
	if cfg.IrregularWalls.Enabled {
		t.Error("expected irregular walls off by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
grid:
  width: 32
  height: 24
  cell_size: 50

style: chunk
seed: 42

random_walk:
  fill_ratio: 0.5
  smoothing_passes: 0
  remove_islands: false

chunk:
  min_chunks: 3
  max_chunks: 3
  chance_2x2: 1.0

logging:
  level: "debug"
  log_file: "roomgen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Grid.Width != 32 || cfg.Grid.Height != 24 {
		t.Errorf("expected 32x24, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Style != "chunk" {
		t.Errorf("expected style chunk, got %s", cfg.Style)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.RandomWalk.RemoveIslands {
		t.Error("expected remove_islands false")
	}
	// Keys absent from the file keep their defaults.
	if cfg.RandomWalk.MaxWalkers != 3 {
		t.Errorf("expected default max walkers 3, got %d", cfg.RandomWalk.MaxWalkers)
	}
	if cfg.Chunk.Chance2x2 != 1.0 {
		t.Errorf("expected chance_2x2 1.0, got %v", cfg.Chunk.Chance2x2)
	}
	if cfg.Logging.LogFile != "roomgen.log" {
		t.Errorf("expected log file 'roomgen.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
grid:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/roomgen.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("grid:\n  width: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find roomgen.yaml in current directory")
	}
}

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var f Flags
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return &f
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "style and room",
			args: []string{"-style", "random_walk", "-room", "cave"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Style != "random_walk" || cfg.Room != "cave" {
					t.Errorf("unexpected style/room %s/%s", cfg.Style, cfg.Room)
				}
			},
		},
		{
			name: "explicit zero seed",
			args: []string{"-seed", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Seed)
				}
			},
		},
		{
			name: "unset seed keeps config value",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Seed != 7 {
					t.Errorf("expected seed 7 to survive, got %d", cfg.Seed)
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"-width", "40", "-height", "12"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.Width != 40 || cfg.Grid.Height != 12 {
					t.Errorf("expected 40x12, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
				}
			},
		},
		{
			name: "output paths",
			args: []string{"-out", "room.yaml", "-png", "room.png", "-catalog", "c.yaml"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Path != "room.yaml" || cfg.Output.PreviewPNG != "room.png" || cfg.Catalog.Path != "c.yaml" {
					t.Errorf("unexpected output config %+v %+v", cfg.Output, cfg.Catalog)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Seed = 7
			applyFlags(cfg, parseFlags(t, tt.args...))
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
grid:
  width: 16
  height: 9
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(parseFlags(t, "-config", configPath, "-width", "30"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Grid.Width != 30 {
		t.Errorf("expected width 30 from flag, got %d", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 9 {
		t.Errorf("expected height 9 from file, got %d", cfg.Grid.Height)
	}
}

func TestLoadRejectsEmptyGrid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("grid:\n  width: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(parseFlags(t, "-config", configPath))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Style = "preset"
	cfg.Seed = 99
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Style != "preset" || loaded.Seed != 99 {
		t.Errorf("round trip lost values: style=%s seed=%d", loaded.Style, loaded.Seed)
	}
}
