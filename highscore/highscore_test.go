package highscore

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	table   Table
	saved   int
	loadErr error
	saveErr error
}

func (m *memStore) Load() (Table, error) { return m.table, m.loadErr }
func (m *memStore) Save(t Table) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.table = t
	m.saved++
	return nil
}

func TestNewBoard(t *testing.T) {
	t.Run("pads and sorts the loaded table", func(t *testing.T) {
		b := NewBoard(&memStore{table: Table{Scores: []uint{30, 120, 60}}}, nil)
		assert.Equal(t, []uint{120, 60, 30, 0, 0, 0, 0, 0, 0, 0}, b.Scores())
		best, err := b.Best()
		require.NoError(t, err)
		assert.Equal(t, uint(120), best)
	})

	t.Run("unreadable store starts empty", func(t *testing.T) {
		b := NewBoard(&memStore{loadErr: errors.New("boom")}, nil)
		assert.Equal(t, make([]uint, Size), b.Scores())
	})
}

func TestSubmit(t *testing.T) {
	store := &memStore{table: Table{Scores: []uint{100, 90, 80, 70, 60, 50, 40, 30, 20, 10}}}
	b := NewBoard(store, nil)
	now := time.Unix(1700000000, 0)
	b.now = func() time.Time { return now }

	table, err := b.Submit(55)
	require.NoError(t, err)
	want := []uint{100, 90, 80, 70, 60, 55, 50, 40, 30, 20}
	assert.Equal(t, want, table)
	assert.Equal(t, want, store.table.Scores)
	assert.Equal(t, now, store.table.Updated)

	table, err = b.Submit(5)
	require.NoError(t, err)
	assert.Equal(t, want, table, "a score below the table doesn't enter it")
	assert.Equal(t, 2, store.saved)

	t.Run("returned table is a copy", func(t *testing.T) {
		table[0] = 1
		best, _ := b.Best()
		assert.Equal(t, uint(100), best)
	})
}

func TestSubmitSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("read only")}
	b := NewBoard(store, nil)

	table, err := b.Submit(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.saveErr)
	assert.Equal(t, uint(42), table[0])
	best, _ := b.Best()
	assert.Equal(t, uint(42), best, "the table is kept in memory")
}

func TestSubmitConcurrent(t *testing.T) {
	b := NewBoard(&memStore{}, nil)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = b.Submit(uint(i))
		}()
	}
	wg.Wait()
	assert.Equal(t, []uint{49, 48, 47, 46, 45, 44, 43, 42, 41, 40}, b.Scores())
}
