package tetris

import "math/rand/v2"

// NewTestTetris creates a beginner session on a default 10x20 stack with
// a tetromino of the given shape at its spawn location. The piece sequence
// that follows is seeded and always the same.
func NewTestTetris(shape Shape) *Tetris {
	t := New(DefaultConfig(), Beginner, &Options{Rand: rand.New(rand.NewPCG(1, 2))})
	t.Tetromino = nil
	t.Spawn(shape)
	t.Next = shape
	return t
}
