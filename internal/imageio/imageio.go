// ABOUTME: PNG load/save and tile splitting/merging, the out-of-core-scope I/O collaborator
// ABOUTME: Converts to/from internal/tile.Tile so the solver never touches image/png directly

// Package imageio loads a source PNG, splits it into square tiles for
// the solver, and reassembles a solved permutation back into a PNG.
// None of this is part of the genetic algorithm itself; it is the
// surrounding plumbing a runnable binary needs.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"jigsaw-ga/internal/tile"
)

const channels = 4 // we always normalise to NRGBA

// Image is a decoded, channel-normalised bitmap.
type Image struct {
	Width, Height int
	Pixels        []byte // row-major, 4 bytes (RGBA) per pixel
}

// Load reads a PNG file and normalises it to RGBA.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	bounds := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)

	return &Image{Width: bounds.Dx(), Height: bounds.Dy(), Pixels: nrgba.Pix}, nil
}

// Save encodes img as a PNG file at path.
func Save(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()

	nrgba := &image.NRGBA{
		Pix:    img.Pixels,
		Stride: img.Width * channels,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	if err := png.Encode(f, nrgba); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

// Split divides img into an evenly-spaced grid of side*side tiles,
// cropping any remainder off the right and bottom edges, and returns
// them row-major alongside the grid's row and column counts.
func Split(img *Image, side int) (tiles []tile.Tile, rows, cols int, err error) {
	if side <= 0 {
		return nil, 0, 0, fmt.Errorf("imageio: tile side must be positive, got %d", side)
	}

	cols = img.Width / side
	rows = img.Height / side
	if rows == 0 || cols == 0 {
		return nil, 0, 0, fmt.Errorf("imageio: image %dx%d too small for tile side %d", img.Width, img.Height, side)
	}

	tiles = make([]tile.Tile, 0, rows*cols)
	id := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pixels := make([]byte, side*side*channels)
			for y := 0; y < side; y++ {
				srcRow := r*side + y
				srcOffset := (srcRow*img.Width + c*side) * channels
				dstOffset := y * side * channels
				copy(pixels[dstOffset:dstOffset+side*channels], img.Pixels[srcOffset:srcOffset+side*channels])
			}
			tiles = append(tiles, tile.Tile{ID: id, Side: side, Chans: channels, Pixels: pixels})
			id++
		}
	}

	return tiles, rows, cols, nil
}

// Merge lays tiles out according to perm (perm[gridIndex] = tile id at
// that grid cell) and stitches them back into one Image.
func Merge(tiles []tile.Tile, perm []int, rows, cols int) (*Image, error) {
	if len(perm) != rows*cols {
		return nil, fmt.Errorf("imageio: permutation has %d entries, want %d", len(perm), rows*cols)
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("imageio: no tiles to merge")
	}

	side := tiles[0].Side
	width, height := cols*side, rows*side
	pixels := make([]byte, width*height*channels)

	for gridIdx, tileID := range perm {
		if tileID < 0 || tileID >= len(tiles) {
			return nil, fmt.Errorf("imageio: permutation references tile id %d out of range [0,%d)", tileID, len(tiles))
		}
		t := tiles[tileID]
		r, c := gridIdx/cols, gridIdx%cols
		for y := 0; y < side; y++ {
			dstRow := r*side + y
			dstOffset := (dstRow*width + c*side) * channels
			srcOffset := y * side * channels
			copy(pixels[dstOffset:dstOffset+side*channels], t.Pixels[srcOffset:srcOffset+side*channels])
		}
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}
