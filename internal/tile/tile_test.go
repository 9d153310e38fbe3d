// ABOUTME: Tests for tile side extraction and the compatibility tables
// ABOUTME: Covers the dissimilarity symmetry law and best-match table invariants

package tile

import (
	"math"
	"testing"
)

func solidTile(id, side, chans int, value byte) Tile {
	pixels := make([]byte, side*side*chans)
	for i := range pixels {
		pixels[i] = value
	}
	return Tile{ID: id, Side: side, Chans: chans, Pixels: pixels}
}

func TestDissimilarityIdenticalTilesIsZero(t *testing.T) {
	a := solidTile(0, 4, 3, 100)
	b := solidTile(1, 4, 3, 100)

	for o := Orientation(0); o < 4; o++ {
		if d := Dissimilarity(a, b, o); d != 0 {
			t.Errorf("orientation %d: want 0, got %v", o, d)
		}
	}
}

func TestDissimilarityReverseUsesOppositeSide(t *testing.T) {
	a := solidTile(0, 4, 3, 50)
	b := solidTile(1, 4, 3, 200)

	for o := Orientation(0); o < 4; o++ {
		forward := Dissimilarity(a, b, o)
		reverse := Dissimilarity(b, a, o.Opposite())
		if math.Abs(forward-reverse) > 1e-9 {
			t.Errorf("orientation %d: Dissimilarity(a,b,o)=%v != Dissimilarity(b,a,o^1)=%v", o, forward, reverse)
		}
	}
}

func TestOrientationOppositeIsInvolution(t *testing.T) {
	for o := Orientation(0); o < 4; o++ {
		if o.Opposite().Opposite() != o {
			t.Errorf("orientation %d: opposite-of-opposite should be itself", o)
		}
	}
}

func TestBuildCompatibilityRejectsNonSequentialIDs(t *testing.T) {
	tiles := []Tile{solidTile(0, 2, 3, 0), solidTile(5, 2, 3, 0)}
	if _, err := BuildCompatibility(tiles); err == nil {
		t.Fatal("expected an error for a non-sequential tile ID")
	}
}

func TestBuildCompatibilityRejectsMismatchedShape(t *testing.T) {
	tiles := []Tile{solidTile(0, 2, 3, 0), solidTile(1, 3, 3, 0)}
	if _, err := BuildCompatibility(tiles); err == nil {
		t.Fatal("expected an error for mismatched tile shape")
	}
}

func TestBestMatchTableSortedAscendingExcludingSelf(t *testing.T) {
	tiles := make([]Tile, 5)
	for i := range tiles {
		tiles[i] = solidTile(i, 3, 3, byte(i*40))
	}

	tables, err := BuildCompatibility(tiles)
	if err != nil {
		t.Fatalf("BuildCompatibility: %v", err)
	}

	for i := range tiles {
		for o := Orientation(0); o < 4; o++ {
			matches := tables.B[i][o]
			if len(matches) != len(tiles)-1 {
				t.Fatalf("tile %d orientation %d: expected %d matches, got %d", i, o, len(tiles)-1, len(matches))
			}
			for _, m := range matches {
				if m.Neighbour == i {
					t.Fatalf("tile %d orientation %d: best-match table includes itself", i, o)
				}
			}
			for k := 1; k < len(matches); k++ {
				if matches[k].Cost < matches[k-1].Cost {
					t.Fatalf("tile %d orientation %d: best-match table not sorted ascending at index %d", i, o, k)
				}
			}
		}
	}
}

func TestCursorAdvancesAndExhausts(t *testing.T) {
	tiles := make([]Tile, 3)
	for i := range tiles {
		tiles[i] = solidTile(i, 2, 3, byte(i*80))
	}
	tables, err := BuildCompatibility(tiles)
	if err != nil {
		t.Fatalf("BuildCompatibility: %v", err)
	}

	cursor := tables.NewCursor()
	first, ok := cursor.Next(tables, 0, Right)
	if !ok {
		t.Fatal("expected a first match")
	}
	second, ok := cursor.Next(tables, 0, Right)
	if !ok {
		t.Fatal("expected a second match")
	}
	if first.Neighbour == second.Neighbour {
		t.Fatal("cursor returned the same neighbour twice without advancing")
	}

	if _, ok := cursor.Next(tables, 0, Right); ok {
		t.Fatal("expected the cursor to be exhausted after N-1 calls")
	}
}

func TestBestBuddyRequiresMutualTopRank(t *testing.T) {
	// Three tiles where 0 and 1 are each other's best match on the
	// right/left pair, so they must be reported as best buddies.
	tiles := []Tile{
		solidTile(0, 2, 3, 10),
		solidTile(1, 2, 3, 11),
		solidTile(2, 2, 3, 200),
	}
	tables, err := BuildCompatibility(tiles)
	if err != nil {
		t.Fatalf("BuildCompatibility: %v", err)
	}

	buddy, ok := tables.BestBuddy(0, Right)
	if !ok || buddy != 1 {
		t.Fatalf("expected tile 0 and 1 to be best buddies on Right, got buddy=%d ok=%v", buddy, ok)
	}
}
