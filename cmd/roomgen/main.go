// roomgen is a CLI for generating procedural room layouts from a style catalog.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/config"
	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/internal/preview"
	"github.com/Faultbox/roomgen/internal/room"
	"github.com/Faultbox/roomgen/pkg/catalog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "preview", "view":
		cmdPreview(args)
	case "catalog", "ls":
		cmdCatalog(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`roomgen - procedural room layout generator

Usage:
  roomgen <command> [options]

Commands:
  generate [options]         Build a room and write its placements as YAML
  preview [options]          Build a room and print an ASCII map
  catalog [-catalog file]    List the rooms and styles in a catalog

Options (generate, preview):
  -config file    Config file (default ./roomgen.yaml)
  -catalog file   Catalog file (default catalog.yaml)
  -room name      Catalog room to build (default: first room)
  -style name     Override the room style
  -seed n         Random seed, -1 for time-based
  -width n        Grid width in cells
  -height n       Grid height in cells
  -out file       Placement output (default stdout)
  -png file       Also write a PNG preview
  -debug          Debug logging

Examples:
  roomgen generate -room cellar -seed 42 -out cellar.yaml
  roomgen preview -room cave -style random_walk -width 30 -height 30
  roomgen catalog -catalog catalog.yaml`)
}

// setup parses the shared flags, loads the config and starts logging.
func setup(name string, args []string) *config.Config {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var flags config.Flags
	flags.Register(fs)
	fs.Parse(args)

	cfg, err := config.Load(&flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func build(cfg *config.Config) (*room.Generator, room.Report) {
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		logger.Error("failed to load catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		os.Exit(1)
	}
	gen, rep, err := buildRoom(cfg, cat)
	if err != nil {
		logger.Error("failed to build room", zap.Error(err))
		os.Exit(1)
	}
	return gen, rep
}

func cmdGenerate(args []string) {
	cfg := setup("generate", args)
	defer logger.Sync()

	gen, rep := build(cfg)
	if err := writeOutput(cfg.Output.Path, rep, gen.Placements()); err != nil {
		logger.Error("failed to write placements", zap.Error(err))
		os.Exit(1)
	}
	writePreview(cfg, gen)
}

func cmdPreview(args []string) {
	cfg := setup("preview", args)
	defer logger.Sync()

	gen, rep := build(cfg)
	fmt.Print(preview.ASCII(gen.Grid(), gen.Placements()))
	fmt.Println()
	printReport(rep)
	writePreview(cfg, gen)
}

func writePreview(cfg *config.Config, gen *room.Generator) {
	if cfg.Output.PreviewPNG == "" {
		return
	}
	img := preview.Render(gen.Grid(), gen.Placements(), cfg.Output.PixelsPerCell)
	if err := preview.SavePNG(cfg.Output.PreviewPNG, img); err != nil {
		logger.Error("failed to write preview", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("preview written", zap.String("path", cfg.Output.PreviewPNG))
}

func printReport(rep room.Report) {
	fmt.Printf("Room:     %s (%s)\n", rep.Room, rep.Style)
	fmt.Printf("Seed:     %d\n", rep.Seed)
	fmt.Printf("Grid:     %dx%d, %d cells occupied (%.0f%%)\n", rep.Width, rep.Height, rep.Occupied, rep.FillRatio*100)
	fmt.Printf("Floor:    %d tiles, %d cells left\n", rep.Floor.Total(), rep.Floor.Remaining)
	fmt.Printf("Walls:    %d segments, %d skipped cells\n", rep.Walls.Segments, rep.Walls.Skipped)
	fmt.Printf("Doorways: %d\n", rep.Doorways)
	for _, phase := range phaseOrder {
		if ok, ran := rep.Phases[phase]; ran && !ok {
			fmt.Printf("  %s phase failed\n", phase)
		}
	}
}

func cmdCatalog(args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	path := fs.String("catalog", "catalog.yaml", "Path to catalog file")
	dump := fs.Bool("dump", false, "Print the parsed catalog as YAML")
	fs.Parse(args)

	cat, err := catalog.LoadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dump {
		data, err := cat.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}
	fmt.Print(describeCatalog(*path, cat))
}
