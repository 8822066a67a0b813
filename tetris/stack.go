package tetris

import (
	"fmt"
	"slices"
)

// Cell is the value stored in one position of the stack.
// 0 is empty and 1..7 is the color of a locked shape (Shape.Color).
type Cell uint8

const (
	Empty Cell = 0
	// Filler marks the protected rows added by difficulty escalation.
	Filler Cell = 8
	// Ghost is only ever produced for rendering and never stored.
	Ghost Cell = 9
)

func (c Cell) isColor() bool { return c >= 1 && c <= ShapeCount }

// Stack is the playfield.
// Columns are 0 > Columns-1 left to right and represent the X axis.
// Rows are 0 > Rows-1 top to bottom and represent the Y axis.
type Stack struct {
	cells   [][]Cell // [y][x]
	columns int
	rows    int
	// filler is the number of protected rows at the bottom.
	filler int
}

// FullRow is a row that is ready to be cleared.
type FullRow struct {
	Y int
	// Mono is true when every cell of the row has the same color.
	Mono bool
}

func newStack(columns, rows int) *Stack {
	s := &Stack{columns: columns, rows: rows}
	s.cells = make([][]Cell, rows)
	for y := range s.cells {
		s.cells[y] = make([]Cell, columns)
	}
	return s
}

func (s *Stack) Columns() int { return s.columns }
func (s *Stack) Rows() int    { return s.rows }

// FillerRows returns how many bottom rows are protected filler rows.
func (s *Stack) FillerRows() int { return s.filler }

// At returns the cell at x, y. Positions outside the stack read as Empty.
func (s *Stack) At(x, y int) Cell {
	if x < 0 || x >= s.columns || y < 0 || y >= s.rows {
		return Empty
	}
	return s.cells[y][x]
}

// IsOccupied reports whether a mino can't be placed at x, y.
// The side walls and the floor count as occupied. Anything above the
// stack (y < 0) is free so pieces can spawn and rotate partially above it.
func (s *Stack) IsOccupied(x, y int) bool {
	if x < 0 || x >= s.columns || y >= s.rows {
		return true
	}
	if y < 0 {
		return false
	}
	return s.cells[y][x] != Empty
}

func (s *Stack) fits(cells [4]Point) bool {
	for _, c := range cells {
		if s.IsOccupied(c.X, c.Y) {
			return false
		}
	}
	return true
}

// Lock writes color into each of the cells. Cells above the stack are
// dropped. The caller has already checked the cells are free.
func (s *Stack) Lock(cells [4]Point, color Cell) {
	if !color.isColor() {
		panic(fmt.Sprintf("tetris: can't lock cells with value %d", color))
	}
	for _, c := range cells {
		if c.Y < 0 {
			continue
		}
		if s.IsOccupied(c.X, c.Y) {
			panic(fmt.Sprintf("tetris: locking onto occupied cell %d,%d", c.X, c.Y))
		}
		s.cells[c.Y][c.X] = color
	}
}

// FullRows returns the rows, top to bottom, that have every column
// occupied. Filler rows are never reported.
func (s *Stack) FullRows() []FullRow {
	var full []FullRow
	for y := range s.rows - s.filler {
		row := s.cells[y]
		if slices.Contains(row, Empty) {
			continue
		}
		mono := true
		for _, c := range row {
			if c == Filler {
				panic(fmt.Sprintf("tetris: filler cell found above the filler rows at row %d", y))
			}
			if c != row[0] {
				mono = false
			}
		}
		full = append(full, FullRow{Y: y, Mono: mono})
	}
	return full
}

// ClearRows removes the given rows and shifts everything above each of
// them down by one. Rows are processed top to bottom, so clearing a row
// never moves the rows still pending below it.
func (s *Stack) ClearRows(rows []int) {
	rows = slices.Clone(rows)
	slices.Sort(rows)
	rows = slices.Compact(rows)
	for _, y := range rows {
		if y < 0 || y >= s.rows {
			panic(fmt.Sprintf("tetris: row %d out of range", y))
		}
		if y >= s.rows-s.filler {
			panic(fmt.Sprintf("tetris: can't clear filler row %d", y))
		}
		for r := y; r > 0; r-- {
			copy(s.cells[r], s.cells[r-1])
		}
		clear(s.cells[0])
	}
}

// ApplyFillerRows overwrites the bottom n rows with Filler.
// The number of filler rows never shrinks.
func (s *Stack) ApplyFillerRows(n int) {
	if n < 0 || n > s.rows {
		panic(fmt.Sprintf("tetris: %d filler rows out of range", n))
	}
	if n > s.filler {
		s.filler = n
	}
	for y := s.rows - s.filler; y < s.rows; y++ {
		for x := range s.cells[y] {
			s.cells[y][x] = Filler
		}
	}
}

func (s *Stack) copyCells() [][]Cell {
	out := make([][]Cell, len(s.cells))
	for i := range s.cells {
		out[i] = slices.Clone(s.cells[i])
	}
	return out
}
