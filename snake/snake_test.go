package snake

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hoshinonyaruko/gridsnake/grid"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

func cell(x, y int) structs.Cell { return structs.Cell{X: x, Y: y} }

// build grows a snake along path, head last.
func build(path ...structs.Cell) *Snake {
	s := New(path[0])
	for _, c := range path[1:] {
		s.Advance(c, true)
	}
	return s
}

func TestAdvanceShiftsTail(t *testing.T) {
	// [C0 head, C1, C2]
	c0, c1, c2 := cell(2, 2), cell(1, 2), cell(0, 2)
	h := cell(3, 2)

	s := build(c2, c1, c0)
	vacated, ok := s.Advance(h, false)
	if want := []structs.Cell{h, c0, c1}; !reflect.DeepEqual(s.Body(), want) {
		t.Fatalf("Body() = %v, want %v", s.Body(), want)
	}
	if !ok || vacated != c2 {
		t.Errorf("vacated = %v,%v, want %v", vacated, ok, c2)
	}
	if s.Occupies(c2) {
		t.Errorf("vacated cell still occupied")
	}

	s = build(c2, c1, c0)
	_, ok = s.Advance(h, true)
	if want := []structs.Cell{h, c0, c1, c2}; !reflect.DeepEqual(s.Body(), want) {
		t.Fatalf("Body() = %v, want %v", s.Body(), want)
	}
	if ok {
		t.Errorf("growth vacated a cell")
	}
	for _, c := range []structs.Cell{h, c0, c1, c2} {
		if !s.Occupies(c) {
			t.Errorf("Occupies(%v) = false", c)
		}
	}
}

func TestAdvanceHeadOnly(t *testing.T) {
	s := New(cell(0, 0))
	vacated, ok := s.Advance(cell(1, 0), false)
	if !ok || vacated != cell(0, 0) {
		t.Errorf("vacated = %v,%v", vacated, ok)
	}
	if s.Len() != 1 || s.Head() != cell(1, 0) {
		t.Errorf("body = %v", s.Body())
	}

	s.Advance(cell(2, 0), true)
	if want := []structs.Cell{cell(2, 0), cell(1, 0)}; !reflect.DeepEqual(s.Body(), want) {
		t.Errorf("Body() = %v, want %v", s.Body(), want)
	}
	if !reflect.DeepEqual(s.Tail(), []structs.Cell{cell(1, 0)}) {
		t.Errorf("Tail() = %v", s.Tail())
	}
}

func TestSetTargetDirection(t *testing.T) {
	s := New(cell(5, 5))
	// nothing committed yet, any direction goes
	if !s.SetTargetDirection(structs.Down) {
		t.Fatal("first direction rejected")
	}
	if s.SetTargetDirection(structs.None) {
		t.Error("None accepted")
	}
	s.SetTargetDirection(structs.Up)
	if s.PromoteDirection() != structs.Up {
		t.Fatalf("Direction() = %v, want up", s.Direction())
	}
	if s.SetTargetDirection(structs.Down) {
		t.Error("opposite accepted")
	}
	if s.TargetDirection() != structs.Up {
		t.Errorf("target changed to %v", s.TargetDirection())
	}
	if !s.SetTargetDirection(structs.Left) {
		t.Error("perpendicular rejected")
	}
	// still committed to Up until promoted
	if s.Direction() != structs.Up {
		t.Errorf("Direction() = %v before promotion", s.Direction())
	}
}

func TestComputeNextHead(t *testing.T) {
	g, _ := grid.New(3, 3)
	tests := []struct {
		head structs.Cell
		dir  structs.Direction
		want structs.Cell
		ok   bool
	}{
		{cell(1, 1), structs.Up, cell(1, 2), true},
		{cell(1, 1), structs.Down, cell(1, 0), true},
		{cell(1, 1), structs.Left, cell(0, 1), true},
		{cell(1, 1), structs.Right, cell(2, 1), true},
		{cell(1, 2), structs.Up, structs.Cell{}, false},
		{cell(0, 0), structs.Left, structs.Cell{}, false},
		{cell(2, 0), structs.Right, structs.Cell{}, false},
		{cell(0, 0), structs.Down, structs.Cell{}, false},
	}
	for _, tt := range tests {
		s := New(tt.head)
		s.SetTargetDirection(tt.dir)
		s.PromoteDirection()
		got, ok := s.ComputeNextHead(g)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%v from %v: got %v,%v want %v,%v", tt.dir, tt.head, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAppleRelocateAvoidsSnake(t *testing.T) {
	g, _ := grid.New(4, 4)
	pool := grid.NewPool(g, grid.NewSource(3))
	s := build(cell(0, 0), cell(1, 0), cell(2, 0), cell(3, 0), cell(3, 1))
	for _, c := range s.Body() {
		pool.Remove(c)
	}
	var a Apple
	for i := 0; i < 100; i++ {
		if err := a.Relocate(pool); err != nil {
			t.Fatal(err)
		}
		if s.Occupies(a.Cell()) {
			t.Fatalf("apple placed on snake at %v", a.Cell())
		}
		if !a.Is(a.Cell()) {
			t.Fatal("apple not active after relocate")
		}
	}
}

func TestAppleRelocateEmptyPool(t *testing.T) {
	g, _ := grid.New(1, 1)
	pool := grid.NewPool(g, grid.NewSource(1))
	pool.Remove(cell(0, 0))
	var a Apple
	if err := a.Relocate(pool); !errors.Is(err, grid.ErrEmptyPool) {
		t.Fatalf("Relocate() error = %v", err)
	}
	if a.Active() {
		t.Error("apple active with empty pool")
	}
}
