// Package main implements tilegen, which renders a solid-color square PNG
// tile from a hex color string.
//
// Usage:
//
//	tilegen <hex_color>
//
// Settings are read from $TILEGEN_CONFIG or ./tilegen.toml when present.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"tools.zach/dev/tilegen/internal/config"
	"tools.zach/dev/tilegen/internal/hexcolor"
	"tools.zach/dev/tilegen/internal/logger"
	"tools.zach/dev/tilegen/internal/paths"
	"tools.zach/dev/tilegen/internal/tile"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// resolveVersion returns [version] when set via ldflags, otherwise a
// "dev+<hash>" tag built from the VCS info embedded by the Go toolchain.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code. User-facing
// messages go to stdout; diagnostics go through slog.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintf(stdout, "Usage: %s <hex_color>\n", paths.BinaryName)
		return 1
	}
	input := args[0]

	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		fmt.Fprintf(stdout, "Error: load config: %v\n", err)
		return 1
	}

	log, logCloser := logger.New(stderr, cfg.LogFile(), logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	defer logCloser.Close()
	log.Debug("tilegen starting", "version", resolveVersion(), "config", paths.ConfigPath())

	path, err := generate(log, cfg, input)
	if err != nil {
		var ioErr *tile.IOError
		switch {
		case errors.Is(err, hexcolor.ErrInvalidFormat):
			log.Debug("rejected input", "input", input, "error", err)
		case errors.As(err, &ioErr):
			log.Error("write failed", "op", ioErr.Op, "path", ioErr.Path, "error", ioErr.Err)
		default:
			log.Error("generate failed", "error", err)
		}
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Image saved to %s\n", path)
	return 0
}

// generate parses input, renders the tile with its configured sectors and
// saves it, returning its path.
func generate(log *slog.Logger, cfg *config.Config, input string) (string, error) {
	c, err := hexcolor.Parse(input)
	if err != nil {
		return "", err
	}
	log.Debug("parsed color", "input", input, "color", c.String())

	sectors, err := cfg.TileSectors()
	if err != nil {
		return "", err
	}
	img, err := tile.Render(c, cfg.Image.Size, sectors...)
	if err != nil {
		return "", err
	}

	path, err := tile.Save(cfg.OutputDir(), cfg.FileName(input), img)
	if err != nil {
		return "", err
	}
	log.Info("tile written", "path", path, "size", cfg.Image.Size, "sectors", len(sectors))
	return path, nil
}
