// ABOUTME: Generational GA driver: elitism, roulette selection, pooled crossover
// ABOUTME: Dispatches one crossover call per child through a worker pool with independent RNG/cursor streams

package puzzle

import (
	"fmt"
	"math/rand"

	"jigsaw-ga/internal/gaconfig"
	"jigsaw-ga/internal/pool"
	"jigsaw-ga/internal/tile"
)

// GenerationUpdate reports the state of one completed generation to an
// optional progress observer.
type GenerationUpdate struct {
	Generation  int
	BestFitness float64
	Stagnation  int
	EliteSize   int
	Best        []int
}

// Options configures one Solve run.
type Options struct {
	PopulationSize int
	EliteSize      int
	Generations    int
	Seed           uint64

	// Progress, if set, is called once per completed generation.
	Progress func(GenerationUpdate)

	// Live, if set, is read at the start of every generation; its
	// EliteSize overrides the static EliteSize above so a running TUI
	// can retune elitism mid-solve. Nil means no live retuning.
	Live *gaconfig.SharedConfig
}

// Solve searches the space of tile-grid permutations for the
// arrangement with the lowest total edge dissimilarity, returning the
// best permutation found after Options.Generations generations.
func Solve(tiles []tile.Tile, rows, cols int, opts Options) ([]int, error) {
	n := rows * cols
	if n != len(tiles) {
		return nil, fmt.Errorf("puzzle: rows*cols (%d) must equal tile count (%d)", n, len(tiles))
	}
	if n == 0 {
		return nil, fmt.Errorf("puzzle: grid must have at least one tile")
	}
	if opts.PopulationSize <= 0 {
		return nil, fmt.Errorf("puzzle: population size must be positive")
	}
	if opts.EliteSize < 0 || opts.EliteSize > opts.PopulationSize {
		return nil, fmt.Errorf("puzzle: elite size (%d) must be between 0 and population size (%d)", opts.EliteSize, opts.PopulationSize)
	}

	tables, err := tile.BuildCompatibility(tiles)
	if err != nil {
		return nil, err
	}

	if n == 1 {
		return []int{0}, nil
	}

	rng := rand.New(rand.NewSource(int64(opts.Seed)))

	population := make(Population, opts.PopulationSize)
	for i := range population {
		ind, err := NewRandom(rows, cols, tables, rng)
		if err != nil {
			return nil, err
		}
		population[i] = ind
	}
	population.SortAscending()

	workers := pool.New(opts.PopulationSize)
	defer workers.Close()

	best := population.Fittest()
	bestFitness := best.Fitness()
	stagnation := 0

	for gen := 0; gen < opts.Generations; gen++ {
		eliteSize := opts.EliteSize
		if opts.Live != nil {
			if live := opts.Live.Get().EliteSize; live >= 0 && live <= opts.PopulationSize {
				eliteSize = live
			}
		}

		elites := append(Population{}, population[len(population)-eliteSize:]...)

		childCount := opts.PopulationSize - eliteSize
		pairs := population.SelectParents(childCount, rng)
		children := make(Population, childCount)
		errs := make([]error, childCount)

		for i := range pairs {
			p1, p2 := pairs[i][0], pairs[i][1]
			childRNG := rand.New(rand.NewSource(rng.Int63()))
			cursor := tables.NewCursor()
			workers.Submit(func() {
				child, err := Crossover(p1, p2, tables, childRNG, cursor)
				children[i] = child
				errs[i] = err
			})
		}
		workers.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("puzzle: crossover failed: %w", err)
			}
		}

		next := make(Population, 0, opts.PopulationSize)
		next = append(next, elites...)
		next = append(next, children...)
		population = next
		population.SortAscending()

		if fit := population.Fittest().Fitness(); fit > bestFitness {
			bestFitness = fit
			best = population.Fittest()
			stagnation = 0
		} else {
			stagnation++
		}

		if opts.Progress != nil {
			opts.Progress(GenerationUpdate{
				Generation:  gen,
				BestFitness: bestFitness,
				Stagnation:  stagnation,
				EliteSize:   eliteSize,
				Best:        append([]int(nil), best.Pieces...),
			})
		}
	}

	return best.Pieces, nil
}
