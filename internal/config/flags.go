package config

import (
	"flag"

	"github.com/Faultbox/procscape/internal/engine/landmarks"
	"github.com/Faultbox/procscape/internal/engine/noise"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Int64("seed", -1, "Generation seed (0 = time-based, -1 = keep configured)")
	flagMode       = flag.String("mode", "", "Landmark mode: wireframe or roads")
	flagBasis      = flag.String("basis", "", "Noise basis: perlin or simplex")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowBounds = true
	}
	if *flagSeed >= 0 {
		cfg.Generation.Seed = *flagSeed
	}
	if *flagMode != "" {
		cfg.Landmarks.Mode = landmarks.Mode(*flagMode)
	}
	if *flagBasis != "" {
		cfg.Noise.Basis = noise.Basis(*flagBasis)
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}

// ParseArgs parses flags from args instead of os.Args, for tools with subcommands.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
}
