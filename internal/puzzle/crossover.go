// ABOUTME: Kernel-growing crossover: greedy assembly of a child from two parents
// ABOUTME: Priority queue ranks shared-edge agreement over best-buddy over greedy best-match

package puzzle

import (
	"container/heap"
	"math/rand"
	"sort"

	"jigsaw-ga/internal/tile"
)

// position is a cell on the unbounded assembly lattice, before
// translation into the output grid.
type position struct {
	row, col int
}

func (p position) add(dRow, dCol int) position {
	return position{p.row + dRow, p.col + dCol}
}

// Candidate ranks, lowest value wins priority.
const (
	rankSharedEdge = iota
	rankBestBuddy
	rankGreedy
)

// candidate is one entry in the crossover priority queue: a proposal to
// place piece at pos, having been suggested by source looking toward
// orient.
type candidate struct {
	rank   int
	cost   float64
	seq    int // insertion order, breaks (rank, cost) ties deterministically
	piece  int
	pos    position
	source int
	orient tile.Orientation
}

// candidateHeap is a min-heap ordered by (rank, cost, seq): the
// highest-priority candidate is the one with the lowest rank, then the
// lowest cost, then the earliest inserted.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank < h[j].rank
	}
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Crossover assembles a child individual from two parents by greedily
// growing a kernel on an unbounded lattice, seeded at a random root
// piece, and rectangularizing the result into an Rows x Cols grid. rng
// supplies the root piece draw; cursor must be private to this call,
// tile.Tables.NewCursor per invocation, never shared across concurrent
// crossovers.
func Crossover(parent1, parent2 *Individual, tables *tile.Tables, rng *rand.Rand, cursor *tile.Cursor) (*Individual, error) {
	rows, cols := parent1.Rows, parent1.Cols
	n := rows * cols

	kernel := make(map[int]position, n)
	usedPosition := make(map[position]bool, n)
	var minRow, maxRow, minCol, maxCol int
	var seq int

	pq := &candidateHeap{}

	inRange := func(p position) bool {
		spanRow := max(maxRow, p.row) - min(minRow, p.row) + 1
		spanCol := max(maxCol, p.col) - min(minCol, p.col) + 1
		return spanRow <= rows && spanCol <= cols
	}

	push := func(c candidate) {
		c.seq = seq
		seq++
		heap.Push(pq, c)
	}

	// addCandidate pushes, at most, one candidate for source piece s
	// looking toward orientation o at target position pos, trying the
	// three ranked heuristics in priority order.
	addCandidate := func(s int, o tile.Orientation, pos position) {
		e1 := parent1.Edge(s, o)
		e2 := parent2.Edge(s, o)

		if e1 == e2 && e1 >= 0 {
			if _, placed := kernel[e1]; !placed {
				push(candidate{rank: rankSharedEdge, cost: 0, piece: e1, pos: pos, source: s, orient: o})
				return
			}
		}

		if buddy, ok := tables.BestBuddy(s, o); ok {
			if _, placed := kernel[buddy]; !placed && (e1 == buddy || e2 == buddy) {
				push(candidate{rank: rankBestBuddy, cost: 0, piece: buddy, pos: pos, source: s, orient: o})
				return
			}
		}

		for {
			m, ok := cursor.Next(tables, s, o)
			if !ok {
				return
			}
			if _, placed := kernel[m.Neighbour]; !placed {
				push(candidate{rank: rankGreedy, cost: m.Cost, piece: m.Neighbour, pos: pos, source: s, orient: o})
				return
			}
		}
	}

	// place commits piece at pos, extends the bounding box, and queues
	// fresh candidates for its unoccupied, in-range neighbours.
	place := func(piece int, pos position) {
		kernel[piece] = pos
		usedPosition[pos] = true
		if len(kernel) == 1 {
			minRow, maxRow, minCol, maxCol = pos.row, pos.row, pos.col, pos.col
		} else {
			minRow = min(minRow, pos.row)
			maxRow = max(maxRow, pos.row)
			minCol = min(minCol, pos.col)
			maxCol = max(maxCol, pos.col)
		}
		for o := tile.Orientation(0); o < 4; o++ {
			dRow, dCol := o.Delta()
			np := pos.add(dRow, dCol)
			if usedPosition[np] || !inRange(np) {
				continue
			}
			addCandidate(piece, o, np)
		}
	}

	root := parent1.Pieces[rng.Intn(n)]
	place(root, position{0, 0})

	for pq.Len() > 0 && len(kernel) < n {
		top := heap.Pop(pq).(candidate)
		// The bounding box may have grown since top was queued, so its
		// target is re-checked against the grid before placement.
		if usedPosition[top.pos] || !inRange(top.pos) {
			continue
		}
		if _, placed := kernel[top.piece]; placed {
			addCandidate(top.source, top.orient, top.pos)
			continue
		}
		place(top.piece, top.pos)
	}

	pieces := make([]int, n)
	filled := make([]bool, n)
	placedID := make([]bool, n)
	for id, pos := range kernel {
		r, c := pos.row-minRow, pos.col-minCol
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		idx := r*cols + c
		if !filled[idx] {
			pieces[idx] = id
			filled[idx] = true
			placedID[id] = true
		}
	}

	if len(kernel) < n {
		var leftover []int
		for id := 0; id < n; id++ {
			if !placedID[id] {
				leftover = append(leftover, id)
			}
		}
		sort.Ints(leftover)
		li := 0
		for idx := 0; idx < n; idx++ {
			if !filled[idx] {
				pieces[idx] = leftover[li]
				li++
			}
		}
	}

	return FromPermutation(rows, cols, pieces, tables)
}
