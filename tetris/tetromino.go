package tetris

import "fmt"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	I Shape = iota
	J
	L
	O
	S
	T
	Z
)

// ShapeCount is the size of the full shape set.
const ShapeCount = 7

var shapeNames = [ShapeCount]string{"I", "J", "L", "O", "S", "T", "Z"}

func (s Shape) String() string {
	if int(s) >= ShapeCount {
		return fmt.Sprintf("Shape(%d)", s)
	}
	return shapeNames[s]
}

// Color is the cell value a locked mino of this shape is stored with.
func (s Shape) Color() Cell { return Cell(s) + 1 }

// Point is a cell position in stack coordinates. Y grows downward.
type Point struct {
	X, Y int
}

func (p Point) add(dx, dy int) Point { return Point{p.X + dx, p.Y + dy} }

type tetromino struct {
	// size of the square bounding box shared by every rotation state.
	size int
	// spawnY is the anchor row the piece spawns at so its lowest
	// spawn-state mino sits on row 1 or, for I, on row 0.
	spawnY int
	// cells holds the offsets from the bounding box top-left corner per
	// rotation state: 0, R, 2, L.
	cells [4][4]Point
}

/*
.	Shapes in rotation state 0 inside their bounding box.

.	I		J		L		O		S		T		Z

.	. . . .		O . .		. . O		. O O .		. O O		. O .		O O .
.	O O O O		O O O		O O O		. O O .		O O .		O O O		. O O
.	. . . .		. . .		. . .		. . . .		. . .		. . .		. . .
.	. . . .
*/
var catalog = [ShapeCount]tetromino{
	I: {
		size:   4,
		spawnY: -1,
		cells: [4][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
			{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
			{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		},
	},
	J: {
		size: 3,
		cells: [4][4]Point{
			{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
		},
	},
	L: {
		size: 3,
		cells: [4][4]Point{
			{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
			{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		},
	},
	O: {
		size: 4,
		cells: [4][4]Point{
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		},
	},
	S: {
		size: 3,
		cells: [4][4]Point{
			{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
			{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
			{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
	},
	T: {
		size: 3,
		cells: [4][4]Point{
			{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
			{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
	},
	Z: {
		size: 3,
		cells: [4][4]Point{
			{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
			{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
		},
	},
}

// ShapeCells returns the four offsets of shape in the given rotation
// state, relative to the top-left corner of its bounding box.
// Out of range arguments are a programming error and panic.
func ShapeCells(shape Shape, rotation int) [4]Point {
	if int(shape) >= ShapeCount {
		panic(fmt.Sprintf("tetris: shape %d out of range", shape))
	}
	if rotation < 0 || rotation > 3 {
		panic(fmt.Sprintf("tetris: rotation %d out of range", rotation))
	}
	return catalog[shape].cells[rotation]
}

// spawnPoint is the anchor a new piece of shape is placed at on a stack
// of the given width.
func spawnPoint(shape Shape, columns int) Point {
	t := catalog[shape]
	return Point{X: (columns - t.size) / 2, Y: t.spawnY}
}
