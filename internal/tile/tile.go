// ABOUTME: Tile compatibility model: side extraction and dissimilarity tensor
// ABOUTME: Builds the per-tile best-match tables the crossover kernel searches

// Package tile defines the jigsaw tile type and the compatibility model
// used to score how well two tiles agree along a shared edge.
package tile

import (
	"fmt"
	"math"
	"sort"
)

// Orientation names one of the four sides of a square tile.
type Orientation int

const (
	Up Orientation = iota
	Down
	Left
	Right
)

// Opposite flips the low bit: Up<->Down, Left<->Right.
func (o Orientation) Opposite() Orientation {
	return o ^ 1
}

// Delta returns the (rowDelta, colDelta) offset a neighbour in this
// orientation sits at, matching the dissimilarity tensor's convention:
// Up is the neighbour one row above (row-1), Down one row below, etc.
func (o Orientation) Delta() (dRow, dCol int) {
	switch o {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		panic(fmt.Sprintf("tile: invalid orientation %d", o))
	}
}

// Tile is an immutable S*S*K pixel block and its index in 0..N.
type Tile struct {
	ID     int
	Side   int // S, the tile's edge length in pixels
	Chans  int // K, the channel count (3 or 4)
	Pixels []byte
}

// At returns the pixel at (row, col), channel-major: K consecutive bytes.
func (t Tile) At(row, col int) []byte {
	offset := (row*t.Side + col) * t.Chans
	return t.Pixels[offset : offset+t.Chans]
}

// SideBytes returns the S*K byte sequence along the named edge, in canonical
// order: left-to-right for Up/Down, top-to-bottom for Left/Right.
func (t Tile) SideBytes(o Orientation) []byte {
	out := make([]byte, t.Side*t.Chans)
	switch o {
	case Up:
		copy(out, t.Pixels[:t.Side*t.Chans])
	case Down:
		start := (t.Side - 1) * t.Side * t.Chans
		copy(out, t.Pixels[start:start+t.Side*t.Chans])
	case Left:
		for r := 0; r < t.Side; r++ {
			copy(out[r*t.Chans:], t.At(r, 0))
		}
	case Right:
		for r := 0; r < t.Side; r++ {
			copy(out[r*t.Chans:], t.At(r, t.Side-1))
		}
	default:
		panic(fmt.Sprintf("tile: invalid orientation %d", o))
	}
	return out
}

// Dissimilarity returns the Euclidean norm over the matched boundary
// samples of (a.side(o) - b.side(o^1)) / 255. It is not symmetric: the
// reverse pair uses Dissimilarity(b, a, o^1).
func Dissimilarity(a, b Tile, o Orientation) float64 {
	sideA := a.SideBytes(o)
	sideB := b.SideBytes(o.Opposite())

	var sum float64
	for i := range sideA {
		delta := (float64(sideA[i]) - float64(sideB[i])) / 255.0
		sum += delta * delta
	}
	return math.Sqrt(sum)
}

// Match is one entry of a best-match table: a neighbour and its cost.
type Match struct {
	Neighbour int
	Cost      float64
}

// Tables holds the N*N*4 dissimilarity tensor and the N*4 best-match
// tables derived from it. Both are read-only after BuildCompatibility
// returns.
type Tables struct {
	N int
	D [][][4]float64 // D[i][j][o]
	B [][4][]Match   // B[i][o], ascending cost, excludes j==i
}

// BuildCompatibility computes the dissimilarity tensor for all tile
// pairs and orientations, then derives the sorted best-match tables.
// Tiles must share side length and channel count and be indexed 0..N-1.
func BuildCompatibility(tiles []Tile) (*Tables, error) {
	n := len(tiles)
	if n == 0 {
		return nil, fmt.Errorf("tile: no tiles supplied")
	}
	side, chans := tiles[0].Side, tiles[0].Chans
	for i, t := range tiles {
		if t.Side != side || t.Chans != chans {
			return nil, fmt.Errorf("tile: tile %d has shape %dx%d(%dch), want %dx%d(%dch)", i, t.Side, t.Side, t.Chans, side, side, chans)
		}
		if t.ID != i {
			return nil, fmt.Errorf("tile: tile at position %d has ID %d, tiles must be indexed 0..N-1", i, t.ID)
		}
	}

	tables := &Tables{
		N: n,
		D: make([][][4]float64, n),
		B: make([][4][]Match, n),
	}

	for i := 0; i < n; i++ {
		tables.D[i] = make([][4]float64, n)
		for j := 0; j < n; j++ {
			for o := Orientation(0); o < 4; o++ {
				tables.D[i][j][o] = Dissimilarity(tiles[i], tiles[j], o)
			}
		}
	}

	for i := 0; i < n; i++ {
		for o := Orientation(0); o < 4; o++ {
			matches := make([]Match, 0, n-1)
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				matches = append(matches, Match{Neighbour: j, Cost: tables.D[i][j][o]})
			}
			sort.Slice(matches, func(a, b int) bool {
				if matches[a].Cost != matches[b].Cost {
					return matches[a].Cost < matches[b].Cost
				}
				return matches[a].Neighbour < matches[b].Neighbour
			})
			tables.B[i][o] = matches
		}
	}

	return tables, nil
}

// BestBuddy returns the mutual top-ranked neighbour of piece across
// orientation o: piece's top neighbour on side o, call it b; if b's top
// neighbour on side o^1 is piece itself, piece and b are best buddies.
func (t *Tables) BestBuddy(piece int, o Orientation) (buddy int, ok bool) {
	firstMatches := t.B[piece][o]
	if len(firstMatches) == 0 {
		return -1, false
	}
	first := firstMatches[0].Neighbour

	backMatches := t.B[first][o.Opposite()]
	if len(backMatches) == 0 {
		return -1, false
	}
	second := backMatches[0].Neighbour

	return first, second == piece
}

// Cursor is the scratch, per-crossover-call state tracking the next
// untried best-match entry for each (piece, orientation) pair. It must
// be created fresh for every crossover invocation (see package puzzle).
type Cursor struct {
	next [][4]int
}

// NewCursor returns a zero-initialised cursor sized for N pieces.
func (t *Tables) NewCursor() *Cursor {
	return &Cursor{next: make([][4]int, t.N)}
}

// Next returns the next untried (cost, neighbour) entry in B[piece][o]
// at or after the cursor, advancing the cursor past it. ok is false once
// every entry has been consumed.
func (c *Cursor) Next(tables *Tables, piece int, o Orientation) (m Match, ok bool) {
	entries := tables.B[piece][o]
	idx := c.next[piece][o]
	if idx >= len(entries) {
		return Match{}, false
	}
	c.next[piece][o] = idx + 1
	return entries[idx], true
}
