// ABOUTME: Population ordering and fitness-proportionate parent selection
// ABOUTME: Implements the roulette draw as a cumulative-weight scan, not explicit intervals

package puzzle

import (
	"math/rand"
	"sort"
)

// Population is an ordered collection of individuals.
type Population []*Individual

// SortAscending sorts the population by fitness ascending, fittest last.
func (p Population) SortAscending() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Fitness() < p[j].Fitness()
	})
}

// Fittest returns the best individual. p must be sorted ascending.
func (p Population) Fittest() *Individual {
	return p[len(p)-1]
}

// SelectParents draws count parent pairs by fitness-proportionate
// (roulette) selection: each draw is a uniform point in [0, totalFitness)
// mapped onto the individuals' cumulative fitness, equivalent to a
// piecewise-constant distribution weighted by fitness. Self-pairing is
// allowed. If every individual has zero fitness, selection falls back to
// uniform choice.
func (p Population) SelectParents(count int, rng *rand.Rand) [][2]*Individual {
	weights := make([]float64, len(p))
	var total float64
	for i, ind := range p {
		weights[i] = ind.Fitness()
		total += weights[i]
	}

	draw := func() *Individual {
		if total <= 0 {
			return p[rng.Intn(len(p))]
		}
		target := rng.Float64() * total
		var cum float64
		for i, w := range weights {
			cum += w
			if target < cum {
				return p[i]
			}
		}
		return p[len(p)-1]
	}

	pairs := make([][2]*Individual, count)
	for i := range pairs {
		pairs[i] = [2]*Individual{draw(), draw()}
	}
	return pairs
}
