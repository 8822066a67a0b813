// Package tetris contains the logic of the game
// based on https://tetris.wiki/Tetris_Guideline
package tetris

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ScoreBoard is where final scores go. It's called at most once per game.
type ScoreBoard interface {
	// Best returns the highest recorded score.
	Best() (uint, error)
	// Submit records score and returns the updated table, best first.
	Submit(score uint) ([]uint, error)
}

// Tetromino is the falling piece. X and Y locate the top-left corner of
// its bounding box on the stack.
type Tetromino struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// Cells returns the stack positions the piece occupies.
func (t *Tetromino) Cells() [4]Point { return t.cellsAt(t.Rotation, 0, 0) }

func (t *Tetromino) cellsAt(rotation, dx, dy int) [4]Point {
	cells := ShapeCells(t.Shape, rotation)
	for i := range cells {
		cells[i] = cells[i].add(t.X+dx, t.Y+dy)
	}
	return cells
}

type Options struct {
	Logger     *slog.Logger
	ScoreBoard ScoreBoard
	// Rand is the source of the piece sequence. A random seed is used when nil.
	Rand *rand.Rand
}

// Tetris is one game session. It's not safe for concurrent use, see Game
// for a runner that drives it from a ticker.
type Tetris struct {
	ID         uuid.UUID
	Difficulty Difficulty

	cfg    Config
	logger *slog.Logger
	scores ScoreBoard
	rng    *rand.Rand
	random randomizer

	Stack     *Stack
	Tetromino *Tetromino
	Next      Shape

	Score      uint
	LinesClear uint
	Level      uint
	Best       uint
	fallSpeed  int

	fallTimer     int
	moveTimer     int
	softDropTimer int
	clearTimer    int
	rotateLatch   bool
	dropLatch     bool
	// clearing holds the full rows waiting for the clear timer to expire.
	clearing []int

	ticks    uint64
	paused   bool
	gameOver bool
	posted   bool
}

// New returns a session with a game of difficulty d already started.
// An invalid config is a programming error and panics.
func New(cfg Config, d Difficulty, o *Options) *Tetris {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if o == nil {
		o = &Options{}
	}
	t := &Tetris{
		cfg:    cfg,
		logger: o.Logger,
		scores: o.ScoreBoard,
		rng:    o.Rand,
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	t.NewGame(d)
	return t
}

// NewGame throws away the current game and starts a new one from scratch.
func (t *Tetris) NewGame(d Difficulty) {
	*t = Tetris{
		ID:         uuid.New(),
		Difficulty: d,
		cfg:        t.cfg,
		logger:     t.logger,
		scores:     t.scores,
		rng:        t.rng,
		random:     newRandomizer(t.cfg.Randomizer, t.cfg.shapes(d), t.rng),
		Stack:      newStack(t.cfg.Columns, t.cfg.Rows),
		Level:      d.baseLevel(),
		Best:       t.Best,
	}
	t.fallSpeed = t.cfg.FallSpeed(t.Level)
	if t.scores != nil {
		best, err := t.scores.Best()
		if err != nil {
			t.logger.Warn("unable to read best score", slog.String("error", err.Error()))
		} else {
			t.Best = best
		}
	}
	t.Spawn(t.random.draw())
	t.Next = t.random.draw()
	t.logger.Info("new game",
		slog.String("session", t.ID.String()),
		slog.String("difficulty", d.String()),
	)
}

// Config returns the configuration the session was created with.
func (t *Tetris) Config() Config { return t.cfg }

func (t *Tetris) Pause()  { t.paused = true }
func (t *Tetris) Resume() { t.paused = false }

func (t *Tetris) IsPaused() bool   { return t.paused }
func (t *Tetris) IsGameOver() bool { return t.gameOver }

// FallSpeed is the current number of ticks per row of gravity.
func (t *Tetris) FallSpeed() int { return t.fallSpeed }

// PlayTime is the time spent playing, paused time excluded.
func (t *Tetris) PlayTime() time.Duration {
	return time.Duration(t.ticks) * t.cfg.TickDuration
}

// Move translates the current tetromino by dx, dy. It returns false and
// leaves the tetromino untouched if any target cell is occupied.
func (t *Tetris) Move(dx, dy int) bool {
	if t.Tetromino == nil {
		return false
	}
	if !t.Stack.fits(t.Tetromino.cellsAt(t.Tetromino.Rotation, dx, dy)) {
		return false
	}
	t.Tetromino.X += dx
	t.Tetromino.Y += dy
	return true
}

// Rotate turns the current tetromino one step. Wall kick candidates are
// tried in order and the first one that fits is kept. If none fits the
// tetromino is left untouched.
func (t *Tetris) Rotate(clockwise bool) bool {
	if t.Tetromino == nil {
		return false
	}
	from := t.Tetromino.Rotation
	to := (from + 3) % 4
	if clockwise {
		to = (from + 1) % 4
	}
	for _, k := range WallKicks(t.Tetromino.Shape, from, to) {
		if t.Stack.fits(t.Tetromino.cellsAt(to, k.X, k.Y)) {
			t.Tetromino.Rotation = to
			t.Tetromino.X += k.X
			t.Tetromino.Y += k.Y
			return true
		}
	}
	return false
}

// HardDrop moves the current tetromino straight down as far as it goes
// and returns the number of rows travelled.
func (t *Tetris) HardDrop() int {
	var n int
	for t.Move(0, 1) {
		n++
	}
	return n
}

// dropDistance returns how far the current tetromino can fall.
func (t *Tetris) dropDistance() int {
	if t.Tetromino == nil {
		return 0
	}
	var d int
	for t.Stack.fits(t.Tetromino.cellsAt(t.Tetromino.Rotation, 0, d+1)) {
		d++
	}
	return d
}

// GhostCells returns where the current tetromino would land on a hard drop.
func (t *Tetris) GhostCells() [4]Point {
	if t.Tetromino == nil {
		return [4]Point{}
	}
	return t.Tetromino.cellsAt(t.Tetromino.Rotation, 0, t.dropDistance())
}

// Spawn places a new tetromino of shape at the top center of the stack.
// It returns false, without touching the stack, when the spawn cells are
// taken.
func (t *Tetris) Spawn(shape Shape) bool {
	p := spawnPoint(shape, t.cfg.Columns)
	tm := &Tetromino{Shape: shape, X: p.X, Y: p.Y}
	if !t.Stack.fits(tm.Cells()) {
		return false
	}
	t.Tetromino = tm
	return true
}

// Tick advances the game one step with the actions held during it.
// Input is resolved before gravity, and a lock resolves before the next
// tick's input. It does nothing while paused or after game over.
func (t *Tetris) Tick(in Input) {
	if t.paused || t.gameOver {
		return
	}
	t.ticks++
	t.escalate()
	t.release(in)

	if t.clearTimer > 0 {
		t.clearTimer--
		if t.clearTimer == 0 {
			t.finishClear()
		}
		return
	}
	if t.Tetromino == nil {
		return
	}

	if !t.rotateLatch {
		switch {
		case in.RotateLeft:
			t.rotateLatch = true
			t.Rotate(false)
		case in.RotateRight:
			t.rotateLatch = true
			t.Rotate(true)
		}
	}

	if t.moveTimer == 0 {
		switch {
		case in.Left:
			t.moveTimer = 1
			t.Move(-1, 0)
		case in.Right:
			t.moveTimer = 1
			t.Move(1, 0)
		}
	} else {
		t.moveTimer = (t.moveTimer + 1) % t.cfg.MoveSpeed
	}

	if !t.dropLatch && in.HardDrop {
		t.dropLatch = true
		t.fallTimer = t.fallSpeed
		t.HardDrop()
	}

	if t.softDropTimer == 0 {
		if in.SoftDrop && t.Move(0, 1) {
			t.fallTimer = 0
			t.softDropTimer = 1
		}
	} else {
		t.softDropTimer = (t.softDropTimer + 1) % t.cfg.SoftDropSpeed
	}

	if t.fallTimer >= t.fallSpeed {
		t.fallTimer = 0
		if !t.Move(0, 1) {
			t.lock()
		}
	} else {
		t.fallTimer++
	}
}

// release clears the latches and repeat timers of actions no longer held.
func (t *Tetris) release(in Input) {
	if !in.RotateLeft && !in.RotateRight {
		t.rotateLatch = false
	}
	if !in.Left && !in.Right {
		t.moveTimer = 0
	}
	if !in.HardDrop {
		t.dropLatch = false
	}
	if !in.SoftDrop {
		t.softDropTimer = 0
	}
}

// lock transfers the current tetromino to the stack and scores any full
// rows. Without full rows the next tetromino spawns right away, otherwise
// the rows stay on the stack for the clear duration.
func (t *Tetris) lock() {
	t.Stack.Lock(t.Tetromino.Cells(), t.Tetromino.Shape.Color())
	t.Tetromino = nil

	full := t.Stack.FullRows()
	if len(full) == 0 {
		t.spawnNext()
		return
	}

	var mono int
	t.clearing = t.clearing[:0]
	for _, r := range full {
		t.clearing = append(t.clearing, r.Y)
		if r.Mono {
			mono++
		}
	}
	delta := ScoreDelta(len(full), mono, t.Level)
	t.Score += delta
	t.LinesClear += uint(len(full))
	t.setLevel()
	t.logger.Debug("rows cleared",
		slog.String("session", t.ID.String()),
		slog.Int("rows", len(full)),
		slog.Int("mono", mono),
		slog.Uint64("points", uint64(delta)),
	)

	if t.cfg.ClearDuration == 0 {
		t.finishClear()
		return
	}
	t.clearTimer = t.cfg.ClearDuration
}

func (t *Tetris) setLevel() {
	t.Level = LevelFor(t.Difficulty, t.LinesClear)
	t.fallSpeed = t.cfg.FallSpeed(t.Level)
}

func (t *Tetris) finishClear() {
	t.Stack.ClearRows(t.clearing)
	t.clearing = t.clearing[:0]
	t.spawnNext()
}

func (t *Tetris) spawnNext() {
	shape := t.Next
	t.Next = t.random.draw()
	if !t.Spawn(shape) {
		t.endGame()
	}
}

func (t *Tetris) endGame() {
	t.gameOver = true
	t.logger.Info("game over",
		slog.String("session", t.ID.String()),
		slog.Uint64("score", uint64(t.Score)),
		slog.Uint64("lines", uint64(t.LinesClear)),
		slog.Uint64("level", uint64(t.Level)),
	)
	t.postScore()
}

// postScore submits the final score once per game. A failing score board
// doesn't stop the session.
func (t *Tetris) postScore() {
	if t.posted {
		return
	}
	t.posted = true
	t.Best = max(t.Best, t.Score)
	if t.scores == nil {
		return
	}
	table, err := t.scores.Submit(t.Score)
	if err != nil {
		t.logger.Error("unable to submit score",
			slog.String("session", t.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if len(table) > 0 {
		t.Best = max(t.Best, table[0])
	}
}

// escalate turns one more bottom row into filler every difficulty
// interval of play time, always leaving at least one playable row.
func (t *Tetris) escalate() {
	locked := t.Stack.FillerRows()
	if locked+1 >= t.cfg.Rows {
		return
	}
	if t.PlayTime() < t.cfg.DifficultyInterval*time.Duration(locked+1) {
		return
	}
	t.Stack.ApplyFillerRows(locked + 1)
	t.logger.Info("filler row added",
		slog.String("session", t.ID.String()),
		slog.Int("filler", locked+1),
	)

	top := t.cfg.Rows - t.Stack.FillerRows()
	t.clearing = slices.DeleteFunc(t.clearing, func(y int) bool { return y >= top })
	if t.Tetromino != nil {
		for i := 0; i < t.cfg.Rows+4 && !t.Stack.fits(t.Tetromino.Cells()); i++ {
			t.Tetromino.Y--
		}
	}
}
