package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/roomgen/internal/config"
	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/internal/room"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/placement"
)

// ErrEmptyCatalog is returned when no room is named and the catalog has none to default to.
var ErrEmptyCatalog = errors.New("catalog has no rooms")

// phaseOrder is the order Build runs its phases in, for reporting.
var phaseOrder = []string{"shape", "floor", "doorways", "walls", "corners", "ceiling"}

// document is the YAML written by generate.
type document struct {
	Report     room.Report        `yaml:"report"`
	Placements []placement.Record `yaml:"placements"`
}

// buildRoom resolves the configured room from cat and runs every generation phase over it.
func buildRoom(cfg *config.Config, cat *catalog.Catalog) (*room.Generator, room.Report, error) {
	name := cfg.Room
	if name == "" {
		names := cat.RoomNames()
		if len(names) == 0 {
			return nil, room.Report{}, ErrEmptyCatalog
		}
		name = names[0]
		logger.Info("no room named, using first in catalog", zap.String("room", name))
	}

	rd, err := cat.Room(name)
	if err != nil {
		return nil, room.Report{}, err
	}
	if cfg.Style != "" {
		rd.Style = cfg.Style
	}

	gen := room.New()
	gen.Configure(cfg)
	if err := gen.Initialize(rd, grid.Point{X: cfg.Grid.Width, Y: cfg.Grid.Height}); err != nil {
		return nil, room.Report{}, fmt.Errorf("initializing room %q: %w", name, err)
	}
	rep, ok := gen.Build()
	if !ok {
		return nil, rep, fmt.Errorf("building room %q failed", name)
	}
	return gen, rep, nil
}

// encodeDocument writes the report and placements as YAML.
func encodeDocument(w io.Writer, rep room.Report, recs []placement.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Report: rep, Placements: recs}); err != nil {
		return fmt.Errorf("encoding placements: %w", err)
	}
	return enc.Close()
}

// writeOutput writes the document to path, or to stdout when path is empty.
func writeOutput(path string, rep room.Report, recs []placement.Record) error {
	if path == "" {
		return encodeDocument(os.Stdout, rep, recs)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := encodeDocument(file, rep, recs); err != nil {
		return err
	}
	logger.Info("placements written", zap.String("path", path), zap.Int("records", len(recs)))
	return nil
}

// describeCatalog lists rooms with their styles, then the style names of each kind.
func describeCatalog(path string, cat *catalog.Catalog) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Catalog: %s\n\n", path)
	fmt.Fprintf(&sb, "Rooms (%d):\n", len(cat.Rooms))
	for _, name := range cat.RoomNames() {
		rd := cat.Rooms[name]
		fmt.Fprintf(&sb, "  %-12s %-12s", name, rd.Style)
		for _, ref := range []struct{ label, value string }{
			{"floor", rd.FloorName},
			{"walls", rd.WallName},
			{"ceiling", rd.CeilingName},
			{"preset", rd.PresetName},
		} {
			if ref.value != "" {
				fmt.Fprintf(&sb, " %s=%s", ref.label, ref.value)
			}
		}
		sb.WriteByte('\n')
	}

	sections := []struct {
		title string
		names []string
	}{
		{"Floor styles", sortedKeys(cat.Floors)},
		{"Wall styles", sortedKeys(cat.Walls)},
		{"Ceiling styles", sortedKeys(cat.Ceilings)},
		{"Presets", sortedKeys(cat.Presets)},
	}
	for _, s := range sections {
		if len(s.names) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s: %s\n", s.title, strings.Join(s.names, ", "))
	}
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
