// ABOUTME: Shared initialization code for all modes (solve, tui, watch)
// ABOUTME: Merges config-file defaults with command-line overrides and loads the source image

package main

import (
	"fmt"
	"log/slog"

	"jigsaw-ga/internal/gaconfig"
	"jigsaw-ga/internal/imageio"
	"jigsaw-ga/internal/puzzle"
	"jigsaw-ga/internal/tile"
)

// RunOptions carries the fully-resolved parameters for one solve, after
// flags have been layered over the config file.
type RunOptions struct {
	InputImage  string
	OutputImage string
	TileSide    int

	PopulationSize int
	EliteSize      int
	Generations    int
	Seed           int64

	Debug bool
	RunID string
}

// resolveOptions loads the config file at configPath, then applies any
// flags the caller actually set (set tracks which flag.Name values were
// seen on the command line).
func resolveOptions(configPath string, flags RunOptions, set map[string]bool) (RunOptions, error) {
	cfg, err := gaconfig.LoadConfig(configPath)
	if err != nil {
		return RunOptions{}, fmt.Errorf("load config: %w", err)
	}

	resolved := RunOptions{
		InputImage:     cfg.InputImage,
		OutputImage:    cfg.OutputImage,
		TileSide:       cfg.TileSide,
		PopulationSize: cfg.PopulationSize,
		EliteSize:      cfg.EliteSize,
		Generations:    cfg.Generations,
		Seed:           cfg.Seed,
	}

	if set["input"] {
		resolved.InputImage = flags.InputImage
	}
	if set["output"] {
		resolved.OutputImage = flags.OutputImage
	}
	if set["tile-side"] {
		resolved.TileSide = flags.TileSide
	}
	if set["population"] {
		resolved.PopulationSize = flags.PopulationSize
	}
	if set["elite"] {
		resolved.EliteSize = flags.EliteSize
	}
	if set["generations"] {
		resolved.Generations = flags.Generations
	}
	if set["seed"] {
		resolved.Seed = flags.Seed
	}
	resolved.Debug = flags.Debug
	resolved.RunID = flags.RunID

	return resolved, nil
}

// loadTiles reads the source image and splits it into a tile grid,
// logging the resulting geometry.
func loadTiles(logger *slog.Logger, opts RunOptions) ([]tile.Tile, int, int, error) {
	img, err := imageio.Load(opts.InputImage)
	if err != nil {
		return nil, 0, 0, err
	}

	tiles, rows, cols, err := imageio.Split(img, opts.TileSide)
	if err != nil {
		return nil, 0, 0, err
	}

	logger.Info("split source image", "input", opts.InputImage, "rows", rows, "cols", cols, "tiles", len(tiles))
	return tiles, rows, cols, nil
}

// solveOptions converts resolved run options into puzzle.Options. live,
// if non-nil, lets a running TUI retune the elite size mid-solve; the
// non-interactive modes have no control to do that and pass nil.
func solveOptions(opts RunOptions, progress func(puzzle.GenerationUpdate), live *gaconfig.SharedConfig) puzzle.Options {
	return puzzle.Options{
		PopulationSize: opts.PopulationSize,
		EliteSize:      opts.EliteSize,
		Generations:    opts.Generations,
		Seed:           uint64(opts.Seed),
		Progress:       progress,
		Live:           live,
	}
}
