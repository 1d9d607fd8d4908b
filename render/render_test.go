package render

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

func rgb(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func snapshot(state structs.State) structs.Snapshot {
	return structs.Snapshot{
		State:       state.String(),
		Width:       3,
		Height:      2,
		Body:        []structs.Cell{{X: 0, Y: 1}, {X: 0, Y: 0}},
		Apple:       structs.Cell{X: 2, Y: 0},
		AppleActive: true,
	}
}

func TestBoard(t *testing.T) {
	img := Board(snapshot(structs.Running), 10)
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("size %dx%d, want 30x20", b.Dx(), b.Dy())
	}
	// y grows upward, so (2,0) is the bottom right block
	if r, g, _ := rgb(img, 25, 15); r < 200 || g > 100 {
		t.Errorf("apple pixel = %d,%d", r, g)
	}
	// head at (0,1) is the top left block
	if r, _, b := rgb(img, 5, 5); b < 200 || r > 100 {
		t.Errorf("head pixel = %d,%d", r, b)
	}
	// (1,1) is an empty checker square
	if _, g, _ := rgb(img, 15, 5); g < 180 {
		t.Errorf("board pixel green = %d", g)
	}
}

func TestBoardGameOverIsDarker(t *testing.T) {
	live := Board(snapshot(structs.Running), 10)
	dead := Board(snapshot(structs.GameOver), 10)
	_, lg, _ := rgb(live, 15, 5)
	_, dg, _ := rgb(dead, 15, 5)
	if dg >= lg {
		t.Errorf("game over pixel %d not darker than %d", dg, lg)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "board.png")
	if err := SavePNG(snapshot(structs.Idle), 8, path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("board not written: %v", err)
	}
}
