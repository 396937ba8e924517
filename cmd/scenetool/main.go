// scenetool is a CLI utility for generating scenes without a window.
package main

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/scene"
	"github.com/Faultbox/procscape/internal/export"
	"github.com/Faultbox/procscape/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if err := config.ParseArgs(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	args := config.Args()

	switch command {
	case "stats":
		cmdStats(args)
	case "geojson":
		cmdGeoJSON(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - procedural scene generator

Usage:
  scenetool <command> [flags] [args]

Commands:
  stats                    Generate a scene and print mesh statistics
  geojson [output]         Generate a scene and write it as GeoJSON (default stdout)
  config [output]          Print the effective configuration as YAML

Flags:
  --config <file>          Config file (default ./config.yaml or the user config dir)
  --seed <n>               Generation seed, 0 for time-based
  --mode <mode>            Landmark mode: wireframe or roads
  --basis <basis>          Noise basis: perlin or simplex
  --debug                  Enable debug logging

Examples:
  scenetool stats --seed 42
  scenetool geojson --seed 42 --mode wireframe plan.geojson
  scenetool config > config.yaml`)
}

// load reads the configuration and routes logs to the configured file only, keeping
// stdout free for command output.
func load() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// generate builds a scene, reporting component failures on stderr.
func generate(cfg *config.Config) *scene.Scene {
	s, err := scene.Build(cfg, cfg.Generation.ResolveSeed())
	if s == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}
	return s
}

func cmdStats(args []string) {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool stats [flags]")
		os.Exit(1)
	}
	cfg := load()
	defer logger.Sync()
	s := generate(cfg)

	fmt.Printf("Scene:  %s\n", s.ID)
	fmt.Printf("Seed:   %d\n", s.Seed)
	fmt.Printf("Basis:  %s\n", cfg.Noise.Basis)
	fmt.Printf("Mode:   %s\n", cfg.Landmarks.Mode)
	fmt.Println()

	fmt.Printf("%-12s %8s %10s %10s %8s %8s\n", "COMPONENT", "BUFFERS", "VERTICES", "TRIANGLES", "STRIPS", "LINES")
	rows := map[string]scene.Stats{}
	if s.Terrain != nil {
		rows["terrain"] = scene.StatsOf(s.Terrain.Meshes())
	}
	if s.Landmarks != nil {
		rows["landmarks"] = scene.StatsOf(s.Landmarks.Meshes())
	}
	var buildings []*mesh.Buffer
	for _, b := range s.Buildings {
		buildings = append(buildings, b.Meshes()...)
	}
	if len(buildings) > 0 {
		rows["buildings"] = scene.StatsOf(buildings)
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printStats(name, rows[name])
	}
	printStats("total", s.Stats())

	if s.Landmarks != nil {
		g := s.Landmarks.Graph()
		fmt.Println()
		fmt.Printf("Landmarks: %d sites, %d triangles, %d unique edges, %d drawn edges\n",
			g.NodeCount(), len(s.Landmarks.Triangles()), len(g.UniqueEdges()), len(g.Edges()))
	}
	bb := s.Bounds()
	fmt.Printf("Bounds:    (%.1f, %.1f, %.1f) - (%.1f, %.1f, %.1f)\n",
		bb.Min[0], bb.Min[1], bb.Min[2], bb.Max[0], bb.Max[1], bb.Max[2])
}

func printStats(name string, st scene.Stats) {
	fmt.Printf("%-12s %8d %10d %10d %8d %8d\n", name, st.Buffers, st.Vertices, st.Triangles, st.TriangleStrips, st.LineStrips)
}

func cmdGeoJSON(args []string) {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool geojson [flags] [output]")
		os.Exit(1)
	}
	cfg := load()
	defer logger.Sync()
	s := generate(cfg)

	if len(args) == 0 || args[0] == "-" {
		if err := export.Write(os.Stdout, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := writeGeoJSONFile(args[0], s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", args[0])
}

// writeGeoJSONFile exports s to path. The file is closed before returning.
func writeGeoJSONFile(path string, s *scene.Scene) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if werr := export.Write(f, s); werr != nil {
		return fmt.Errorf("writing %s: %w", path, werr)
	}
	return nil
}

func cmdConfig(args []string) {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool config [flags] [output]")
		os.Exit(1)
	}
	cfg := load()

	if len(args) == 1 {
		if err := cfg.SaveTo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", args[0])
		return
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
