// ABOUTME: Non-interactive solve mode: runs to completion, printing progress lines as it goes
// ABOUTME: Writes the reassembled PNG plus a JSON sidecar recording the run's identity and result

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jigsaw-ga/internal/imageio"
	"jigsaw-ga/internal/puzzle"
)

// runMetadata is written alongside the output image so a solved puzzle
// can be traced back to the run (and config) that produced it.
type runMetadata struct {
	RunID          string    `json:"run_id"`
	SolvedAt       time.Time `json:"solved_at"`
	Generations    int       `json:"generations"`
	PopulationSize int       `json:"population_size"`
	EliteSize      int       `json:"elite_size"`
	Seed           int64     `json:"seed"`
	BestFitness    float64   `json:"best_fitness"`
}

// runCLI loads the source image, runs the solve to completion printing
// one line per fitness improvement, writes the reassembled PNG, and
// drops a JSON sidecar with the run's identity and outcome.
func runCLI(logger *slog.Logger, opts RunOptions) error {
	tiles, rows, cols, err := loadTiles(logger, opts)
	if err != nil {
		return err
	}

	lastPrinted := 0.0
	bestFitness := 0.0
	perm, err := puzzle.Solve(tiles, rows, cols, solveOptions(opts, func(u puzzle.GenerationUpdate) {
		bestFitness = u.BestFitness
		if u.Stagnation == 0 {
			fmt.Printf("generation %d: fitness improved to %s\n", u.Generation, formatMinimalPrecision(lastPrinted, u.BestFitness))
			lastPrinted = u.BestFitness
		}
	}, nil))
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	merged, err := imageio.Merge(tiles, perm, rows, cols)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	if err := imageio.Save(opts.OutputImage, merged); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	meta := runMetadata{
		RunID:          opts.RunID,
		SolvedAt:       time.Now(),
		Generations:    opts.Generations,
		PopulationSize: opts.PopulationSize,
		EliteSize:      opts.EliteSize,
		Seed:           opts.Seed,
		BestFitness:    bestFitness,
	}
	if err := writeSidecar(opts.OutputImage+".json", meta); err != nil {
		logger.Warn("failed to write run metadata sidecar", "error", err)
	}

	logger.Info("solve complete", "output", opts.OutputImage, "best_fitness", bestFitness)
	fmt.Printf("wrote %s (best fitness %.4f)\n", opts.OutputImage, bestFitness)
	return nil
}

func writeSidecar(path string, meta runMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
