package tetris

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Piece is the read-only view of the falling tetromino.
type Piece struct {
	Shape Shape
	Cells [4]Point
	Ghost [4]Point
}

// Snapshot is a copy of everything a renderer needs. It shares no memory
// with the session and is safe to read from another goroutine.
type Snapshot struct {
	Session    uuid.UUID
	Difficulty Difficulty

	// Stack is indexed [y][x], y = 0 being the top row.
	Stack [][]Cell
	// Piece is nil while rows are being cleared and after game over.
	Piece *Piece
	Next  Shape

	// Clearing lists the rows waiting to be removed. ClearProgress goes
	// from 1 when they are detected down to 0 when they are removed.
	Clearing      []int
	ClearProgress float64

	Score      uint
	LinesClear uint
	Level      uint
	// Speed is how many times faster than level 1 pieces fall.
	Speed      int
	FillerRows int
	PlayTime   time.Duration
	Best       uint

	Paused   bool
	GameOver bool
}

func (t *Tetris) Snapshot() *Snapshot {
	s := &Snapshot{
		Session:    t.ID,
		Difficulty: t.Difficulty,
		Stack:      t.Stack.copyCells(),
		Next:       t.Next,
		Clearing:   slices.Clone(t.clearing),
		Score:      t.Score,
		LinesClear: t.LinesClear,
		Level:      t.Level,
		Speed:      t.cfg.StartFallSpeed / t.fallSpeed,
		FillerRows: t.Stack.FillerRows(),
		PlayTime:   t.PlayTime(),
		Best:       t.Best,
		Paused:     t.paused,
		GameOver:   t.gameOver,
	}
	if t.clearTimer > 0 {
		s.ClearProgress = float64(t.clearTimer) / float64(t.cfg.ClearDuration)
	}
	if t.Tetromino != nil && !t.gameOver {
		s.Piece = &Piece{
			Shape: t.Tetromino.Shape,
			Cells: t.Tetromino.Cells(),
			Ghost: t.GhostCells(),
		}
	}
	return s
}

// Color returns the cell value to draw at x, y: the falling piece first,
// then the stack and the ghost piece last.
func (s *Snapshot) Color(x, y int) Cell {
	if s.Piece != nil {
		if slices.Contains(s.Piece.Cells[:], Point{x, y}) {
			return s.Piece.Shape.Color()
		}
	}
	if y >= 0 && y < len(s.Stack) && x >= 0 && x < len(s.Stack[y]) && s.Stack[y][x] != Empty {
		return s.Stack[y][x]
	}
	if s.Piece != nil && slices.Contains(s.Piece.Ghost[:], Point{x, y}) {
		return Ghost
	}
	return Empty
}

// IsClearing reports whether row y is waiting to be removed.
func (s *Snapshot) IsClearing(y int) bool { return slices.Contains(s.Clearing, y) }
