package client

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"blockfall/tetris"

	"github.com/eiannone/keyboard"
	"github.com/kamstrup/intmap"
)

type clientState int

const (
	menu clientState = iota
	playing
	paused
	highScores
	help
	gameOver
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start(tetris.Difficulty)
	GetUpdate() <-chan *tetris.Snapshot
	Action(tetris.Action)
	Pause()
	Resume()
	Stop()
}

type renderer interface {
	game(*tetris.Snapshot)
	menu()
	paused()
	gameOver(*tetris.Snapshot)
	highScores([]uint)
	help()
}

// ScoreTable lists the high scores, best first.
type ScoreTable interface {
	Scores() []uint
}

type Client struct {
	tetris tetrisGame
	render renderer
	scores ScoreTable
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	state  *state
	doneCh chan struct{}
}

type Options struct {
	NoGhost bool
	// Writer defaults to os.Stdout.
	Writer io.Writer
	Scores ScoreTable
}

func New(g *tetris.Game, cfg tetris.Config, l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(o.Writer, l, cfg, o.NoGhost)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		tetris: g,
		render: r,
		scores: o.Scores,
		logger: l,
		kbCh:   kb,
		state:  &state{current: menu},
		doneCh: make(chan struct{}),
	}, nil
}

// Start shows the menu and blocks until the player quits.
func (c *Client) Start() {
	c.render.menu()
	go c.listenTetris()
	c.listenKB()
	close(c.doneCh)
	c.tetris.Stop()
}

// Close gives the terminal back.
func (c *Client) Close() error {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
	return keyboard.Close()
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		if !c.handle(event) {
			return
		}
	}
}

// handle applies a key press to the current screen. It returns false when
// the player quits.
func (c *Client) handle(event keyboard.KeyEvent) bool {
	switch c.state.get() {
	case menu:
		switch {
		case event.Rune == '1':
			c.newGame(tetris.Beginner)
		case event.Rune == '2':
			c.newGame(tetris.Advanced)
		case event.Rune == '3':
			c.state.set(highScores)
			c.render.highScores(c.highScores())
		case event.Rune == '4':
			c.state.set(help)
			c.render.help()
		case event.Rune == '5' || event.Rune == 'q' || event.Key == keyboard.KeyEsc:
			return false
		}
	case playing:
		if event.Rune == 'p' || event.Key == keyboard.KeyEsc {
			c.state.set(paused)
			c.tetris.Pause()
			return true
		}
		if a, ok := actionFor(event); ok {
			c.tetris.Action(a)
		}
	case paused:
		switch {
		case event.Rune == 'p' || event.Rune == '5' || event.Key == keyboard.KeyEsc:
			c.state.set(playing)
			c.tetris.Resume()
		case event.Rune == '1':
			c.newGame(tetris.Beginner)
		case event.Rune == '2':
			c.newGame(tetris.Advanced)
		case event.Key == keyboard.KeyEnter:
			c.state.set(menu)
			c.render.menu()
		}
	case highScores, help:
		c.state.set(menu)
		c.render.menu()
	case gameOver:
		switch {
		case event.Rune == '1':
			c.newGame(tetris.Beginner)
		case event.Rune == '2':
			c.newGame(tetris.Advanced)
		case event.Key == keyboard.KeyEnter:
			c.state.set(menu)
			c.render.menu()
		}
	}
	return true
}

func (c *Client) newGame(d tetris.Difficulty) {
	c.logger.Debug("starting game", slog.String("difficulty", d.String()))
	c.state.set(playing)
	c.tetris.Start(d)
}

func (c *Client) highScores() []uint {
	if c.scores == nil {
		return nil
	}
	return c.scores.Scores()
}

func (c *Client) listenTetris() {
	for {
		select {
		case s := <-c.tetris.GetUpdate():
			c.update(s)
		case <-c.doneCh:
			return
		}
	}
}

func (c *Client) update(s *tetris.Snapshot) {
	switch c.state.get() {
	case playing:
		c.render.game(s)
		if s.GameOver {
			c.state.set(gameOver)
			c.render.gameOver(s)
		}
	case paused:
		c.render.game(s)
		c.render.paused()
	}
}

var keyActions = func() *intmap.Map[keyboard.Key, tetris.Action] {
	m := intmap.New[keyboard.Key, tetris.Action](8)
	m.Put(keyboard.KeyArrowLeft, tetris.MoveLeft)
	m.Put(keyboard.KeyArrowRight, tetris.MoveRight)
	m.Put(keyboard.KeyArrowDown, tetris.SoftDrop)
	m.Put(keyboard.KeyArrowUp, tetris.RotateRight)
	m.Put(keyboard.KeySpace, tetris.HardDrop)
	return m
}()

var runeActions = func() *intmap.Map[rune, tetris.Action] {
	m := intmap.New[rune, tetris.Action](8)
	m.Put('a', tetris.MoveLeft)
	m.Put('d', tetris.MoveRight)
	m.Put('s', tetris.SoftDrop)
	m.Put('e', tetris.RotateRight)
	m.Put('q', tetris.RotateLeft)
	m.Put(' ', tetris.HardDrop)
	return m
}()

// actionFor maps a key press to a game action. Special keys come with a
// Key code and printable ones with a Rune.
func actionFor(event keyboard.KeyEvent) (tetris.Action, bool) {
	if event.Key != 0 {
		return keyActions.Get(event.Key)
	}
	return runeActions.Get(event.Rune)
}
