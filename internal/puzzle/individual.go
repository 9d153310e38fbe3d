// ABOUTME: Individual representation and fitness for the jigsaw genetic algorithm
// ABOUTME: A grid permutation of tile ids, its inverse index, and a cached fitness score

// Package puzzle implements the individual representation, fitness,
// crossover kernel, and evolution driver of the jigsaw genetic
// algorithm described in spec.md.
package puzzle

import (
	"fmt"
	"math/rand"

	"jigsaw-ga/internal/tile"
)

// fitnessEpsilon keeps the fitness denominator from reaching zero when
// every adjacent pair of tiles agrees perfectly.
const fitnessEpsilon = 0.001

// Individual is a candidate grid arrangement: a permutation of tile ids
// plus its inverse index and a lazily computed, cached fitness. It
// borrows (never owns) the shared, read-only compatibility tables.
type Individual struct {
	Rows, Cols int
	Pieces     []int // Pieces[row*Cols+col] = tile id occupying that cell
	index      []int // index[Pieces[p]] == p, the inverse permutation

	tables     *tile.Tables
	fitness    float64
	hasFitness bool
}

// NewRandom builds an individual whose Pieces is a uniformly random
// permutation of 0..N-1 on an Rows x Cols grid.
func NewRandom(rows, cols int, tables *tile.Tables, rng *rand.Rand) (*Individual, error) {
	pieces := rng.Perm(rows * cols)
	return FromPermutation(rows, cols, pieces, tables)
}

// FromPermutation validates that pieces is a permutation of 0..N-1 and
// builds an Individual from it, with its fitness cache cleared.
func FromPermutation(rows, cols int, pieces []int, tables *tile.Tables) (*Individual, error) {
	n := rows * cols
	if len(pieces) != n {
		return nil, fmt.Errorf("puzzle: expected %d pieces, got %d", n, len(pieces))
	}

	index := make([]int, n)
	for i := range index {
		index[i] = -1
	}
	for pos, id := range pieces {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("puzzle: piece id %d out of range [0,%d)", id, n)
		}
		if index[id] != -1 {
			return nil, fmt.Errorf("puzzle: piece id %d appears more than once", id)
		}
		index[id] = pos
	}

	return &Individual{
		Rows:   rows,
		Cols:   cols,
		Pieces: pieces,
		index:  index,
		tables: tables,
	}, nil
}

// Edge returns the neighbouring piece id of piece in direction o, or -1
// if piece sits on that edge of the grid (the spec's "no neighbour"
// sentinel).
func (ind *Individual) Edge(piece int, o tile.Orientation) int {
	pos := ind.index[piece]
	row, col := pos/ind.Cols, pos%ind.Cols
	dRow, dCol := o.Delta()
	nr, nc := row+dRow, col+dCol
	if nr < 0 || nr >= ind.Rows || nc < 0 || nc >= ind.Cols {
		return -1
	}
	return ind.Pieces[nr*ind.Cols+nc]
}

// Fitness returns the individual's fitness (larger is better), computed
// as 1000 divided by the total horizontal and vertical edge
// dissimilarity of the current arrangement plus fitnessEpsilon.
// The result is cached on first computation.
func (ind *Individual) Fitness() float64 {
	if ind.hasFitness {
		return ind.fitness
	}

	raw := fitnessEpsilon
	for r := 0; r < ind.Rows; r++ {
		for c := 0; c < ind.Cols-1; c++ {
			a := ind.Pieces[r*ind.Cols+c]
			b := ind.Pieces[r*ind.Cols+c+1]
			raw += ind.tables.D[a][b][tile.Right]
		}
	}
	for r := 0; r < ind.Rows-1; r++ {
		for c := 0; c < ind.Cols; c++ {
			a := ind.Pieces[r*ind.Cols+c]
			b := ind.Pieces[(r+1)*ind.Cols+c]
			raw += ind.tables.D[a][b][tile.Down]
		}
	}

	ind.fitness = 1000 / raw
	ind.hasFitness = true
	return ind.fitness
}
