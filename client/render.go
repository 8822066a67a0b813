package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"time"

	"blockfall/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"
	Gray    = "90"
	White   = "37"

	resetPos  = "\033[H"  // Reset cursor position to 0,0
	clearEOL  = "\033[K"  // Clear to the end of the line
	clearAll  = "\033[2J" // Clear the screen
	emptyCell = "  "
	ghostCell = "[]"

	// where boxes are drawn, 1-based terminal row and column.
	boxRow   = 7
	boxCol   = 2
	boxWidth = 24
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Cell]string{
	tetris.I.Color(): Cyan,
	tetris.J.Color(): Blue,
	tetris.L.Color(): Orange,
	tetris.O.Color(): Yellow,
	tetris.S.Color(): Green,
	tetris.T.Color(): Magenta,
	tetris.Z.Color(): Red,
	tetris.Filler:    Gray,
}

func block(color string) string { return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", color) }

// frame is what the layout template is executed with.
type frame struct {
	Snapshot *tetris.Snapshot
	Columns  int
	Rows     int
	NoGhost  bool
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	columns  int
	rows     int
	noGhost  bool

	mu   sync.Mutex
	last *tetris.Snapshot
}

func newRender(w io.Writer, l *slog.Logger, cfg tetris.Config, noGhost bool) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if w == nil {
		w = os.Stdout
	}
	return &render{
		writer:   w,
		logger:   l,
		template: tmp,
		columns:  cfg.Columns,
		rows:     cfg.Rows,
		noGhost:  noGhost,
	}, nil
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":  stack,
		"side":   sidePanel,
		"border": border,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", clearEOL+"\r\n")
	l = strings.Replace(l, "Blockfall", "\033[1mBlockfall\033[0m", 1)
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func (r *render) game(s *tetris.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = s
	r.draw()
}

// draw writes the last snapshot over the previous frame.
func (r *render) draw() {
	fmt.Fprint(r.writer, resetPos)
	f := &frame{Snapshot: r.last, Columns: r.columns, Rows: r.rows, NoGhost: r.noGhost}
	if err := r.template.Execute(r.writer, f); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func (r *render) menu() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, clearAll)
	r.draw()
	r.box(
		"",
		"      BLOCKFALL",
		"",
		"  1  Beginner",
		"  2  Advanced",
		"  3  High scores",
		"  4  Help",
		"  5  Quit",
		"",
	)
}

func (r *render) paused() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.box(
		"",
		"        Paused",
		"",
		"  p      continue",
		"  1      new beginner",
		"  2      new advanced",
		"  Enter  menu",
		"",
	)
}

func (r *render) gameOver(s *tetris.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.box(
		"",
		"      Game Over :)",
		"",
		"  Score  "+strconv.FormatUint(uint64(s.Score), 10),
		"  Best   "+strconv.FormatUint(uint64(s.Best), 10),
		"",
		"  1/2    play again",
		"  Enter  menu",
		"",
	)
}

func (r *render) highScores(scores []uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := []string{"", "      High Scores", ""}
	for i, s := range scores {
		lines = append(lines, fmt.Sprintf("  %2d. %d", i+1, s))
	}
	lines = append(lines, "", "  Any key to return", "")
	fmt.Fprint(r.writer, clearAll)
	r.draw()
	r.box(lines...)
}

func (r *render) help() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, clearAll)
	r.draw()
	r.box(
		"",
		"  a / left   move left",
		"  d / right  move right",
		"  s / down   soft drop",
		"  space      hard drop",
		"  e / up     rotate cw",
		"  q          rotate ccw",
		"  p / esc    pause",
		"",
		"  Any key to return",
		"",
	)
}

// box draws lines inside a frame on top of whatever is on screen.
func (r *render) box(lines ...string) {
	edge := "+" + strings.Repeat("-", boxWidth) + "+"
	fmt.Fprintf(r.writer, "\033[%d;%dH%s", boxRow, boxCol, edge)
	for i, l := range lines {
		if len(l) > boxWidth {
			l = l[:boxWidth]
		}
		fmt.Fprintf(r.writer, "\033[%d;%dH|%-*s|", boxRow+1+i, boxCol, boxWidth, l)
	}
	fmt.Fprintf(r.writer, "\033[%d;%dH%s", boxRow+1+len(lines), boxCol, edge)
}

func border(f *frame) string { return strings.Repeat("-", f.Columns*2) }

// stack renders every cell of the playfield, top row first.
func stack(f *frame) [][]string {
	rendered := make([][]string, f.Rows)
	for y := range rendered {
		rendered[y] = make([]string, f.Columns)
		for x := range rendered[y] {
			rendered[y][x] = emptyCell
			if f.Snapshot == nil {
				continue
			}
			s := f.Snapshot
			switch c := s.Color(x, y); {
			case s.IsClearing(y) && c != tetris.Empty:
				rendered[y][x] = block(White)
			case c == tetris.Ghost:
				if !f.NoGhost {
					rendered[y][x] = ghostCell
				}
			case c != tetris.Empty:
				rendered[y][x] = block(colorMap[c])
			}
		}
	}
	return rendered
}

// nextPiece renders the first two rows of shape's spawn orientation.
func nextPiece(shape tetris.Shape) []string {
	rows := [2][4]string{}
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = emptyCell
		}
	}
	for _, p := range tetris.ShapeCells(shape, 0) {
		if p.Y < 2 && p.X < 4 {
			rows[p.Y][p.X] = block(colorMap[shape.Color()])
		}
	}
	return []string{strings.Join(rows[0][:], ""), strings.Join(rows[1][:], "")}
}

// sidePanel returns the text shown to the right of each row of the stack.
func sidePanel(f *frame) []string {
	side := make([]string, f.Rows)
	if f.Snapshot == nil {
		return side
	}
	s := f.Snapshot
	next := nextPiece(s.Next)
	lines := []string{
		"Next",
		next[0],
		next[1],
		"",
		fmt.Sprintf("Score  %d", s.Score),
		fmt.Sprintf("Lines  %d", s.LinesClear),
		fmt.Sprintf("Level  %d", s.Level),
		fmt.Sprintf("Speed  x%d", s.Speed),
		fmt.Sprintf("Locked %d", s.FillerRows),
		fmt.Sprintf("Time   %s", clock(s.PlayTime)),
		fmt.Sprintf("Mode   %s", s.Difficulty),
		fmt.Sprintf("Best   %d", s.Best),
	}
	copy(side, lines)
	return side
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
