package tetris

import (
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type controlKind int

const (
	ctrlNewGame controlKind = iota
	ctrlPause
	ctrlResume
)

type control struct {
	kind       controlKind
	difficulty Difficulty
}

// Game runs a Tetris session in its own goroutine. Every tick of the
// ticker becomes one Tick of the session, and a Snapshot is published
// after it. Terminals only report key presses, so an action stays held
// for Config.HoldTicks ticks after its last event and a key repeating
// faster than that reads as one long press.
type Game struct {
	updateCh chan *Snapshot
	actionCh chan Action
	ctrlCh   chan control
	doneCh   chan struct{}

	tetris   *Tetris
	ticker   Ticker
	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

func NewGame(cfg Config, o *Options) *Game {
	t := newWrappedTicker(1 * time.Hour)
	t.Stop()
	return NewConfigurableGame(cfg, o, t)
}

func NewConfigurableGame(cfg Config, o *Options, ticker Ticker) *Game {
	return &Game{
		updateCh: make(chan *Snapshot, 1),
		actionCh: make(chan Action),
		ctrlCh:   make(chan control),
		doneCh:   make(chan struct{}),
		tetris:   New(cfg, Beginner, o),
		ticker:   ticker,
	}
}

// Start begins a new game of difficulty d, dropping any game in progress.
func (g *Game) Start(d Difficulty) {
	g.mu.Lock()
	if !g.started {
		g.started = true
		go g.listen()
	}
	g.mu.Unlock()
	g.ctrlCh <- control{kind: ctrlNewGame, difficulty: d}
}

// Stop ends the game goroutine. The Game can't be started again, and
// later calls do nothing.
func (g *Game) Stop() {
	g.stopOnce.Do(func() {
		g.ticker.Stop()
		close(g.doneCh)
	})
}

// Pause stops the ticks without touching the session; Resume picks up
// exactly where it left off.
func (g *Game) Pause()  { g.ctrlCh <- control{kind: ctrlPause} }
func (g *Game) Resume() { g.ctrlCh <- control{kind: ctrlResume} }

func (g *Game) Action(a Action) {
	g.actionCh <- a
}

// GetUpdate returns the channel snapshots are published on. Only the
// latest snapshot is kept if the reader falls behind.
func (g *Game) GetUpdate() <-chan *Snapshot { return g.updateCh }

// Read() returns a copy of the current Tetris status that's safe to read concurrently.
func (g *Game) Read() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tetris.Snapshot()
}

func (g *Game) listen() {
	held := map[Action]int{}
	for {
		select {
		case <-g.ticker.C():
			var in Input
			for a, n := range held {
				in.Set(a)
				if n <= 1 {
					delete(held, a)
				} else {
					held[a] = n - 1
				}
			}
			g.mu.Lock()
			g.tetris.Tick(in)
			s := g.tetris.Snapshot()
			g.mu.Unlock()
			if s.GameOver {
				g.ticker.Stop()
			}
			g.publish(s)
		case a := <-g.actionCh:
			held[a] = g.tetris.cfg.HoldTicks
		case c := <-g.ctrlCh:
			g.mu.Lock()
			switch c.kind {
			case ctrlNewGame:
				g.tetris.NewGame(c.difficulty)
				g.ticker.Reset(g.tetris.cfg.TickDuration)
			case ctrlPause:
				g.tetris.Pause()
				g.ticker.Stop()
			case ctrlResume:
				if g.tetris.IsPaused() && !g.tetris.IsGameOver() {
					g.tetris.Resume()
					g.ticker.Reset(g.tetris.cfg.TickDuration)
				}
			}
			s := g.tetris.Snapshot()
			g.mu.Unlock()
			clear(held)
			g.publish(s)
		case <-g.doneCh:
			return
		}
	}
}

// publish replaces any snapshot the reader hasn't picked up yet.
func (g *Game) publish(s *Snapshot) {
	select {
	case g.updateCh <- s:
		return
	default:
	}
	select {
	case <-g.updateCh:
	default:
	}
	g.updateCh <- s
}
