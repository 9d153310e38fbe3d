// ABOUTME: Entry point for jigsaw-ga: flag parsing, profiling, and mode routing
// ABOUTME: Routes to a non-interactive solve, a live TUI, or a file-watching loop

// Package main provides the entry point for jigsaw-ga, a genetic
// algorithm-based square jigsaw puzzle solver.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"jigsaw-ga/internal/gaconfig"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", gaconfig.GetConfigPath(), "path to a TOML config file")
	input := flag.String("input", "", "source image to split and solve")
	output := flag.String("output", "", "path to write the reassembled image")
	tileSide := flag.Int("tile-side", 0, "pixel edge length of each tile")
	population := flag.Int("population", 0, "population size")
	elite := flag.Int("elite", -1, "elite size (individuals carried unchanged each generation)")
	generations := flag.Int("generations", 0, "number of generations to run")
	seed := flag.Int64("seed", 0, "PRNG seed; same seed and inputs reproduce the same solve")
	tuiMode := flag.Bool("tui", false, "show a live progress screen instead of printing lines")
	watch := flag.Bool("watch", false, "re-solve whenever the input image is rewritten")
	debug := flag.Bool("debug", false, "write a JSON debug log to jigsaw-ga-debug.log")
	cpuprofile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	memprofile := flag.String("memprofile", "", "write a memory profile to this file")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts, err := resolveOptions(*configPath, RunOptions{
		InputImage:     *input,
		OutputImage:    *output,
		TileSide:       *tileSide,
		PopulationSize: *population,
		EliteSize:      *elite,
		Generations:    *generations,
		Seed:           *seed,
		Debug:          *debug,
		RunID:          newRunID(),
	}, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jigsaw-ga: %v\n", err)
		return 1
	}

	if opts.InputImage == "" {
		fmt.Println("Usage: jigsaw-ga [flags] --input <image.png>")
		flag.PrintDefaults()
		return 1
	}

	debugLogPath := ""
	if opts.Debug {
		debugLogPath = "jigsaw-ga-debug.log"
	}
	logger, closeLog, err := newLogger(opts.RunID, debugLogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jigsaw-ga: setup debug log: %v\n", err)
		return 1
	}
	defer closeLog()

	if *cpuprofile != "" {
		stop, err := startCPUProfile(*cpuprofile)
		if err != nil {
			logger.Error("cpu profile setup failed", "error", err)
			return 1
		}
		defer stop()
	}
	if *memprofile != "" {
		defer writeMemoryProfile(logger, *memprofile)
	}

	logger.Info("starting run", "input", opts.InputImage, "output", opts.OutputImage,
		"population", opts.PopulationSize, "elite", opts.EliteSize, "generations", opts.Generations, "seed", opts.Seed)

	var runErr error
	switch {
	case *watch:
		runErr = runWatch(logger, opts)
	case *tuiMode:
		runErr = runTUI(logger, opts)
	default:
		runErr = runCLI(logger, opts)
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "jigsaw-ga: %v\n", runErr)
		return 1
	}
	return 0
}

func startCPUProfile(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func writeMemoryProfile(logger *slog.Logger, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		logger.Error("create memory profile failed", "error", err)
		return
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Error("write memory profile failed", "error", err)
	}
}
