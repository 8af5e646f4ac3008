package config

import "flag"

// Flags holds command-line overrides. Register binds them to a subcommand's flag set.
type Flags struct {
	Config  string
	Debug   bool
	Room    string
	Style   string
	Seed    int64
	Width   int
	Height  int
	Catalog string
	Out     string
	Preview string

	fs *flag.FlagSet
}

// Register binds the override flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Room, "room", "", "Catalog room to build")
	fs.StringVar(&f.Style, "style", "", "Room style: uniform, random_walk, chunk, protrusion, preset")
	fs.Int64Var(&f.Seed, "seed", -1, "Random seed (-1 for time-based)")
	fs.IntVar(&f.Width, "width", 0, "Grid width in cells")
	fs.IntVar(&f.Height, "height", 0, "Grid height in cells")
	fs.StringVar(&f.Catalog, "catalog", "", "Path to catalog file")
	fs.StringVar(&f.Out, "out", "", "Placement output file (default stdout)")
	fs.StringVar(&f.Preview, "png", "", "Write a PNG preview to this path")
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// set reports whether the named flag was given on the command line.
func (f *Flags) set(name string) bool {
	if f.fs == nil {
		return false
	}
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Room != "" {
		cfg.Room = f.Room
	}
	if f.Style != "" {
		cfg.Style = f.Style
	}
	if f.set("seed") {
		cfg.Seed = f.Seed
	}
	if f.Width > 0 {
		cfg.Grid.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Grid.Height = f.Height
	}
	if f.Catalog != "" {
		cfg.Catalog.Path = f.Catalog
	}
	if f.Out != "" {
		cfg.Output.Path = f.Out
	}
	if f.Preview != "" {
		cfg.Output.PreviewPNG = f.Preview
	}
}
