// Package highscore keeps the table of best final scores.
package highscore

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Size is the number of entries in the table.
const Size = 10

// Table is the persisted form of the scores.
type Table struct {
	// Scores are sorted best first and padded with zeros to Size.
	Scores  []uint
	Updated time.Time
}

// Store persists a Table. Loading from a store that was never saved
// returns an empty table and no error.
type Store interface {
	Load() (Table, error)
	Save(Table) error
}

// Board is the top-ten table in memory, backed by a Store. It's safe for
// concurrent use.
type Board struct {
	store  Store
	logger *slog.Logger

	mu     sync.Mutex
	scores []uint
	// now is replaced in tests.
	now func() time.Time
}

// NewBoard loads the table from store. A store that can't be read is
// logged and treated as empty so the game can still be played.
func NewBoard(store Store, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Board{store: store, logger: logger, now: time.Now}
	t, err := store.Load()
	if err != nil {
		logger.Warn("unable to load high scores", slog.String("error", err.Error()))
	}
	b.scores = normalize(t.Scores)
	return b
}

// Best returns the highest score of the table.
func (b *Board) Best() (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scores[0], nil
}

// Scores returns a copy of the table, best first.
func (b *Board) Scores() []uint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.scores)
}

// Submit inserts score in the table and saves it. The table is updated
// in memory even when saving fails.
func (b *Board) Submit(score uint) ([]uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scores = normalize(append(b.scores, score))
	out := slices.Clone(b.scores)
	if err := b.store.Save(Table{Scores: out, Updated: b.now()}); err != nil {
		return out, fmt.Errorf("unable to save high scores: %w", err)
	}
	b.logger.Info("score submitted", slog.Uint64("score", uint64(score)), slog.Uint64("best", uint64(out[0])))
	return out, nil
}

// normalize sorts scores best first and pads or truncates them to Size.
func normalize(scores []uint) []uint {
	out := slices.Clone(scores)
	slices.SortFunc(out, func(a, b uint) int { return cmp.Compare(b, a) })
	if len(out) > Size {
		out = out[:Size]
	}
	for len(out) < Size {
		out = append(out, 0)
	}
	return out
}
