package tetris_test

import (
	"sync"
	"testing"
	"time"

	"blockfall/tetris"
)

type mockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func newMockTicker() *mockTicker          { return &mockTicker{ch: make(chan time.Time)} }
func (m *mockTicker) C() <-chan time.Time { return m.ch }
func (m *mockTicker) Tick()               { m.ch <- time.Now() }
func (m *mockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop, m.reset = true, false
}
func (m *mockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop, m.reset = false, true
}
func (m *mockTicker) isReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *mockTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

func waitUpdate(t *testing.T, game *tetris.Game) *tetris.Snapshot {
	t.Helper()
	select {
	case s := <-game.GetUpdate():
		return s
	case <-time.After(1 * time.Second):
		t.Fatal("Timed out waiting for update signal")
	}
	return nil
}

func TestGetUpdate(t *testing.T) {
	ticker := newMockTicker()
	game := tetris.NewConfigurableGame(tetris.DefaultConfig(), nil, ticker)
	defer game.Stop()

	game.Start(tetris.Advanced)
	s := waitUpdate(t, game)
	if s.Difficulty != tetris.Advanced || s.Level != 2 {
		t.Errorf("wanted an advanced game at level 2, got %v at level %d", s.Difficulty, s.Level)
	}
	if s.Piece == nil {
		t.Errorf("wanted a falling piece")
	}

	ticker.Tick()
	s = waitUpdate(t, game)
	if s.PlayTime != tetris.DefaultConfig().TickDuration {
		t.Errorf("wanted play time of one tick, got %v", s.PlayTime)
	}
}

func TestAction(t *testing.T) {
	ticker := newMockTicker()
	game := tetris.NewConfigurableGame(tetris.DefaultConfig(), nil, ticker)
	defer game.Stop()

	game.Start(tetris.Beginner)
	before := waitUpdate(t, game)
	game.Action(tetris.MoveLeft)
	ticker.Tick()
	after := waitUpdate(t, game)
	for i := range before.Piece.Cells {
		if after.Piece.Cells[i].X != before.Piece.Cells[i].X-1 {
			t.Errorf("wanted the piece moved one column left, got %v from %v", after.Piece.Cells, before.Piece.Cells)
			break
		}
	}

	// a held move waits for the repeat interval before moving again.
	ticker.Tick()
	again := waitUpdate(t, game)
	if again.Piece.Cells != after.Piece.Cells {
		t.Errorf("wanted the piece to stay, got %v from %v", again.Piece.Cells, after.Piece.Cells)
	}
}

func countMinos(s *tetris.Snapshot) int {
	var n int
	for _, row := range s.Stack {
		for _, c := range row {
			if c != tetris.Empty {
				n++
			}
		}
	}
	return n
}

// key repeat events arrive every other tick, inside the hold window.
func TestHeldKeys(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.MoveSpeed = 4
	cfg.HoldTicks = 3

	t.Run("held move repeats every MoveSpeed ticks", func(t *testing.T) {
		ticker := newMockTicker()
		game := tetris.NewConfigurableGame(cfg, nil, ticker)
		defer game.Stop()

		game.Start(tetris.Beginner)
		before := waitUpdate(t, game)
		after := before
		for i := range 8 {
			if i%2 == 0 {
				game.Action(tetris.MoveRight)
			}
			ticker.Tick()
			after = waitUpdate(t, game)
		}
		if moved := after.Piece.Cells[0].X - before.Piece.Cells[0].X; moved != 2 {
			t.Errorf("wanted 2 columns moved in 8 ticks, got %d", moved)
		}
	})

	t.Run("held hard drop fires once", func(t *testing.T) {
		ticker := newMockTicker()
		game := tetris.NewConfigurableGame(cfg, nil, ticker)
		defer game.Stop()

		game.Start(tetris.Beginner)
		waitUpdate(t, game)
		var s *tetris.Snapshot
		for i := range 6 {
			if i%2 == 0 {
				game.Action(tetris.HardDrop)
			}
			ticker.Tick()
			s = waitUpdate(t, game)
		}
		if got := countMinos(s); got != 4 {
			t.Errorf("wanted one piece locked, got %d minos", got)
		}

		// once the window runs out the key counts as released.
		for range cfg.HoldTicks + 1 {
			ticker.Tick()
			waitUpdate(t, game)
		}
		game.Action(tetris.HardDrop)
		ticker.Tick()
		if got := countMinos(waitUpdate(t, game)); got != 8 {
			t.Errorf("wanted a second piece locked after release, got %d minos", got)
		}
	})
}

func TestPauseResume(t *testing.T) {
	ticker := newMockTicker()
	game := tetris.NewConfigurableGame(tetris.DefaultConfig(), nil, ticker)
	defer game.Stop()

	game.Start(tetris.Beginner)
	waitUpdate(t, game)

	game.Pause()
	if s := waitUpdate(t, game); !s.Paused {
		t.Errorf("wanted the game to be paused")
	}
	if !ticker.isStopped() {
		t.Errorf("Expected ticker to be stopped")
	}
	if !game.Read().Paused {
		t.Errorf("wanted Read to report the pause")
	}

	game.Resume()
	if s := waitUpdate(t, game); s.Paused {
		t.Errorf("wanted the game to be resumed")
	}
	if !ticker.isReset() {
		t.Errorf("Expected ticker to be reset")
	}
}

func TestStartStop(t *testing.T) {
	ticker := newMockTicker()
	game := tetris.NewConfigurableGame(tetris.DefaultConfig(), nil, ticker)

	game.Start(tetris.Beginner)
	first := waitUpdate(t, game)
	if !ticker.isReset() {
		t.Errorf("Expected ticker to be reset")
	}

	game.Start(tetris.Beginner)
	second := waitUpdate(t, game)
	if first.Session == second.Session {
		t.Errorf("wanted a new session on restart")
	}

	game.Stop()
	if !ticker.isStopped() {
		t.Errorf("Expected ticker to be stopped")
	}

	done := make(chan struct{})
	go func() {
		game.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Errorf("wanted a second Stop to return")
	}
}
