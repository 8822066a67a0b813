package tetris

import (
	"reflect"
	"testing"
)

func TestShapeCells(t *testing.T) {
	for shape := range Shape(ShapeCount) {
		size := catalog[shape].size
		for rotation := range 4 {
			cells := ShapeCells(shape, rotation)
			seen := map[Point]bool{}
			for _, c := range cells {
				if c.X < 0 || c.Y < 0 || c.X >= size || c.Y >= size {
					t.Errorf("%v rotation %d: cell %v outside its %dx%d box", shape, rotation, c, size, size)
				}
				seen[c] = true
			}
			if len(seen) != 4 {
				t.Errorf("%v rotation %d: wanted 4 distinct cells, got %v", shape, rotation, cells)
			}
		}
	}
}

func TestShapeCellsPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("wanted a panic")
		}
	}()
	ShapeCells(J, 4)
}

func TestColor(t *testing.T) {
	for shape := range Shape(ShapeCount) {
		if c := shape.Color(); !c.isColor() {
			t.Errorf("wanted %v to have a color, got %d", shape, c)
		}
	}
}

func TestWallKicks(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		from, to int
		want     []Point
	}{
		{"T 0>R", T, 0, 1, []Point{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}},
		{"Z L>0", Z, 3, 0, []Point{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}},
		{"I 0>R", I, 0, 1, []Point{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}}},
		{"I 2>L", I, 2, 3, []Point{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}}},
		{"O never kicks", O, 1, 2, []Point{{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WallKicks(tt.shape, tt.from, tt.to); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("non adjacent rotations panic", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Errorf("wanted a panic")
			}
		}()
		WallKicks(T, 0, 2)
	})
}

func TestInput(t *testing.T) {
	in := NewInput(MoveLeft, HardDrop)
	if !in.Left || !in.HardDrop || in.Right || in.SoftDrop {
		t.Errorf("wanted left and hard drop only, got %+v", in)
	}
	if in.Empty() {
		t.Errorf("wanted a non empty input")
	}
	if !(Input{}).Empty() {
		t.Errorf("wanted the zero input to be empty")
	}
}
