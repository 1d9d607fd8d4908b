package memimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSprites(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "head.png"), 64)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644)

	if err := LoadSprites(dir, 20); err != nil {
		t.Fatal(err)
	}
	img, ok := GetSprite(SpriteHead)
	if !ok {
		t.Fatal("head sprite missing")
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("sprite size %dx%d, want 20x20", b.Dx(), b.Dy())
	}
	if _, ok := GetSprite("notes"); ok {
		t.Error("non-image loaded")
	}
}

func TestLoadSpritesMissingDirectory(t *testing.T) {
	if err := LoadSprites(filepath.Join(t.TempDir(), "nope"), 20); err != nil {
		t.Fatalf("LoadSprites() = %v", err)
	}
	if _, ok := GetSprite(SpriteHead); ok {
		t.Error("stale sprite survived reload")
	}
}
