// ABOUTME: Wires internal/tui's bubbletea progress screen to a background Solve run
// ABOUTME: Mirrors the teacher's runGA-in-a-goroutine-plus-update-channel pattern

package main

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jigsaw-ga/internal/gaconfig"
	"jigsaw-ga/internal/imageio"
	"jigsaw-ga/internal/puzzle"
	"jigsaw-ga/internal/tui"
)

// runTUI shows a live progress screen while the solve runs in the
// background, then writes the result exactly as runCLI does.
func runTUI(logger *slog.Logger, opts RunOptions) error {
	tiles, rows, cols, err := loadTiles(logger, opts)
	if err != nil {
		return err
	}

	live := gaconfig.NewShared(gaconfig.GAConfig{
		PopulationSize: opts.PopulationSize,
		EliteSize:      opts.EliteSize,
	})
	model, report := tui.New(opts.Generations, live)

	go func() {
		perm, err := puzzle.Solve(tiles, rows, cols, solveOptions(opts, report, live))
		model.Finish(perm, err)
	}()

	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	result := finalModel.(*tui.Model)
	if result.Err != nil {
		return fmt.Errorf("solve: %w", result.Err)
	}
	if result.Result == nil {
		return fmt.Errorf("tui: quit before the solve finished")
	}

	merged, err := imageio.Merge(tiles, result.Result, rows, cols)
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
		BestFitness:    result.BestFitness,
	}
	if err := writeSidecar(opts.OutputImage+".json", meta); err != nil {
		logger.Warn("failed to write run metadata sidecar", "error", err)
	}

	logger.Info("solve complete", "output", opts.OutputImage, "best_fitness", result.BestFitness)
	return nil
}
