// ABOUTME: Tests for PNG round-tripping and the split/merge tile bijection
// ABOUTME: Builds small synthetic images in-memory rather than shipping test fixtures

package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func writeTestPNG(t *testing.T, path string, width, height int, fill func(x, y int) color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill(x, y))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := t.TempDir() + "/in.png"
	writeTestPNG(t, path, 4, 4, func(x, y int) color.NRGBA {
		return color.NRGBA{R: byte(x * 60), G: byte(y * 60), B: 10, A: 255}
	})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Fatalf("expected 4x4, got %dx%d", img.Width, img.Height)
	}

	out := path + ".out.png"
	if err := Save(out, img); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for i := range img.Pixels {
		if img.Pixels[i] != reloaded.Pixels[i] {
			t.Fatalf("pixel %d changed across round trip: %d != %d", i, img.Pixels[i], reloaded.Pixels[i])
		}
	}
}

func TestSplitProducesExpectedGridAndCropsRemainder(t *testing.T) {
	path := t.TempDir() + "/in.png"
	writeTestPNG(t, path, 10, 6, func(x, y int) color.NRGBA {
		return color.NRGBA{R: byte(x), G: byte(y), B: 0, A: 255}
	})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tiles, rows, cols, err := Split(img, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if rows != 2 || cols != 3 {
		t.Fatalf("expected a 2x3 grid cropping the 1px/0px remainder, got %dx%d", rows, cols)
	}
	if len(tiles) != rows*cols {
		t.Fatalf("expected %d tiles, got %d", rows*cols, len(tiles))
	}
	for i, tl := range tiles {
		if tl.ID != i {
			t.Fatalf("tile %d has ID %d, want sequential IDs", i, tl.ID)
		}
	}
}

func TestSplitRejectsImageSmallerThanOneTile(t *testing.T) {
	img := &Image{Width: 2, Height: 2, Pixels: make([]byte, 2*2*4)}
	if _, _, _, err := Split(img, 4); err == nil {
		t.Fatal("expected an error when the image is smaller than one tile")
	}
}

func TestMergeIsSplitInverseOnIdentityPermutation(t *testing.T) {
	path := t.TempDir() + "/in.png"
	writeTestPNG(t, path, 4, 4, func(x, y int) color.NRGBA {
		return color.NRGBA{R: byte(x * 40), G: byte(y * 40), B: 5, A: 255}
	})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tiles, rows, cols, err := Split(img, 2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	identity := make([]int, len(tiles))
	for i := range identity {
		identity[i] = i
	}

	merged, err := Merge(tiles, identity, rows, cols)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if merged.Width != img.Width || merged.Height != img.Height {
		t.Fatalf("expected merged size %dx%d, got %dx%d", img.Width, img.Height, merged.Width, merged.Height)
	}
	for i := range img.Pixels {
		if img.Pixels[i] != merged.Pixels[i] {
			t.Fatalf("pixel %d differs after split+merge identity round trip: %d != %d", i, img.Pixels[i], merged.Pixels[i])
		}
	}
}

func TestMergeRejectsPermutationLengthMismatch(t *testing.T) {
	if _, err := Merge(nil, []int{0, 1}, 2, 2); err == nil {
		t.Fatal("expected an error for a permutation length mismatch")
	}
}
