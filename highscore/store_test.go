package highscore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.pb")
	store := &FileStore{Path: path}

	t.Run("missing file is an empty table", func(t *testing.T) {
		table, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, table.Scores)
	})

	t.Run("saved table loads back", func(t *testing.T) {
		in := Table{Scores: []uint{900, 300, 0}, Updated: time.Unix(1700000000, 0)}
		require.NoError(t, store.Save(in))
		out, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, in.Scores, out.Scores)
		assert.Equal(t, in.Updated.Unix(), out.Updated.Unix())

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files are left behind")
	})

	t.Run("corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x05, 0x01}, 0o644))
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestUnmarshal(t *testing.T) {
	t.Run("unpacked scores and unknown fields", func(t *testing.T) {
		var b []byte
		b = protowire.AppendTag(b, fieldScores, protowire.VarintType)
		b = protowire.AppendVarint(b, 70)
		b = protowire.AppendTag(b, 9, protowire.BytesType)
		b = protowire.AppendString(b, "ignored")
		b = protowire.AppendTag(b, fieldScores, protowire.VarintType)
		b = protowire.AppendVarint(b, 20)

		table, err := Unmarshal(b)
		require.NoError(t, err)
		assert.Equal(t, []uint{70, 20}, table.Scores)
		assert.True(t, table.Updated.IsZero())
	})

	t.Run("empty message", func(t *testing.T) {
		table, err := Unmarshal(nil)
		require.NoError(t, err)
		assert.Empty(t, table.Scores)
	})
}

func TestTextStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.txt")
	store := &TextStore{Path: path}

	table, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, table.Scores)

	require.NoError(t, store.Save(Table{Scores: []uint{500, 250, 0}}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "500 250 0", string(b))

	tests := []struct {
		name    string
		content string
		want    []uint
	}{
		{"newline separated", "10\n9\n8\n", []uint{10, 9, 8}},
		{"stops at the first bad value", "10 x 8", []uint{10}},
		{"reads at most ten values", "1 2 3 4 5 6 7 8 9 10 11 12", []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			table, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Scores)
		})
	}
}

func TestBoardWithFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.pb")
	b := NewBoard(&FileStore{Path: path}, nil)
	_, err := b.Submit(1200)
	require.NoError(t, err)

	reloaded := NewBoard(&FileStore{Path: path}, nil)
	best, err := reloaded.Best()
	require.NoError(t, err)
	assert.Equal(t, uint(1200), best)
}
