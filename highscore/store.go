package highscore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the binary table message:
//
//	message Table {
//	  repeated uint64 scores = 1 [packed = true];
//	  int64 updated_unix = 2;
//	}
const (
	fieldScores  protowire.Number = 1
	fieldUpdated protowire.Number = 2
)

var ErrCorrupt = errors.New("corrupt high score file")

// FileStore keeps the table in a protobuf encoded file.
type FileStore struct {
	Path string
}

func (f *FileStore) Load() (Table, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("unable to read %s: %w", f.Path, err)
	}
	return Unmarshal(b)
}

func (f *FileStore) Save(t Table) error {
	return writeAtomic(f.Path, Marshal(t))
}

// Marshal encodes t in the protobuf wire format.
func Marshal(t Table) []byte {
	var packed []byte
	for _, s := range t.Scores {
		packed = protowire.AppendVarint(packed, uint64(s))
	}
	var b []byte
	b = protowire.AppendTag(b, fieldScores, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	if !t.Updated.IsZero() {
		b = protowire.AppendTag(b, fieldUpdated, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.Updated.Unix()))
	}
	return b
}

// Unmarshal decodes a table encoded by Marshal. Unknown fields are
// skipped, and unpacked scores are accepted as well.
func Unmarshal(b []byte) (Table, error) {
	var t Table
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Table{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldScores && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return Table{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return Table{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(m))
				}
				packed = packed[m:]
				t.Scores = append(t.Scores, uint(v))
			}
		case num == fieldScores && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Table{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			t.Scores = append(t.Scores, uint(v))
		case num == fieldUpdated && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Table{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			t.Updated = time.Unix(int64(v), 0)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Table{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return t, nil
}

// TextStore keeps the scores as whitespace separated numbers, the format
// of the classic highscores.txt file. It has no room for the update time.
type TextStore struct {
	Path string
}

func (f *TextStore) Load() (Table, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("unable to open %s: %w", f.Path, err)
	}
	defer file.Close()

	var t Table
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() && len(t.Scores) < Size {
		v, err := strconv.ParseUint(scanner.Text(), 10, 64)
		if err != nil {
			// the rest of the file is ignored, as a stream read would.
			break
		}
		t.Scores = append(t.Scores, uint(v))
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("unable to read %s: %w", f.Path, err)
	}
	return t, nil
}

func (f *TextStore) Save(t Table) error {
	s := make([]string, len(t.Scores))
	for i, v := range t.Scores {
		s[i] = strconv.FormatUint(uint64(v), 10)
	}
	return writeAtomic(f.Path, []byte(strings.Join(s, " ")))
}

// writeAtomic replaces path with b, leaving the old file in place if
// anything goes wrong.
func writeAtomic(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("unable to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}
	return nil
}
