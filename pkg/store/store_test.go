package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrent/pkg/codec"
)

// pair is a minimal fixed-width entity for engine tests.
type pair struct {
	Key string
	N   uint32
}

type pairCodec struct{}

func (pairCodec) Size() int { return 12 }

func (pairCodec) Encode(p pair) ([]byte, error) {
	buf := make([]byte, 12)
	if err := codec.PutString(buf, 0, 8, "key", p.Key); err != nil {
		return nil, err
	}
	codec.PutUint32(buf, 8, p.N)
	return buf, nil
}

func (pairCodec) Decode(buf []byte) (pair, error) {
	return pair{
		Key: codec.GetString(buf, 0, 8),
		N:   codec.GetUint32(buf, 8),
	}, nil
}

func newTestStore(t *testing.T) *FixedStore[pair] {
	t.Helper()
	s, err := NewFixedStore[pair](Config{
		FilePath: filepath.Join(t.TempDir(), "pairs.bin"),
		Name:     "pairs",
	}, pairCodec{})
	require.NoError(t, err)
	return s
}

func TestFixedStore_AppendVisibleAtLastPosition(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(pair{Key: "first", N: 1}))
	require.NoError(t, s.Append(pair{Key: "second", N: 2}))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, pair{Key: "second", N: 2}, all[1])

	// Appearing exactly once.
	count := 0
	for _, p := range all {
		if p.Key == "second" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFixedStore_UpdateAtTouchesOnlyThatRecord(t *testing.T) {
	s := newTestStore(t)
	for i := uint32(0); i < 5; i++ {
		require.NoError(t, s.Append(pair{Key: "rec", N: i}))
	}

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.UpdateAt(2, pair{Key: "new", N: 42}))

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, len(before), len(after))

	size := s.RecordSize()
	assert.Equal(t, before[:2*size], after[:2*size], "records before index 2 changed")
	assert.Equal(t, before[3*size:], after[3*size:], "records after index 2 changed")

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, pair{Key: "new", N: 42}, all[2])
}

func TestFixedStore_UpdateAtOutOfRange(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(pair{Key: "only", N: 1}))

	err := s.UpdateAt(5, pair{Key: "x", N: 0})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.UpdateAt(-1, pair{Key: "x", N: 0})
	assert.ErrorIs(t, err, ErrBadIndex)
}

func TestFixedStore_DeleteWherePreservesSurvivorOrder(t *testing.T) {
	s := newTestStore(t)
	for i := uint32(0); i < 6; i++ {
		require.NoError(t, s.Append(pair{Key: "rec", N: i}))
	}

	removed, err := s.DeleteWhere(func(_ int, p pair) bool {
		return p.N%2 == 0
	})
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint32{1, 3, 5}, []uint32{all[0].N, all[1].N, all[2].N})
}

func TestFixedStore_DeleteWhereNoMatchLeavesFileByteIdentical(t *testing.T) {
	s := newTestStore(t)
	for i := uint32(0); i < 3; i++ {
		require.NoError(t, s.Append(pair{Key: "rec", N: i}))
	}

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	beforeStat, err := os.Stat(s.Path())
	require.NoError(t, err)

	removed, err := s.DeleteWhere(func(_ int, p pair) bool {
		return p.N == 99
	})
	require.NoError(t, err)
	assert.Zero(t, removed)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	afterStat, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, beforeStat.ModTime(), afterStat.ModTime(), "file was rewritten")

	// No leftover rebuild files.
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFixedStore_FindFirstReturnsFirstMatch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(pair{Key: "a", N: 1}))
	require.NoError(t, s.Append(pair{Key: "b", N: 2}))
	require.NoError(t, s.Append(pair{Key: "b", N: 3}))

	p, index, err := s.FindFirst(func(p pair) bool { return p.Key == "b" })
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, uint32(2), p.N)

	_, _, err = s.FindFirst(func(p pair) bool { return p.Key == "z" })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixedStore_TrailingPartialRecordIsEndOfStream(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(pair{Key: "whole", N: 1}))

	// Simulate a torn write: half a record at the end.
	f, err := os.OpenFile(s.Path(), os.O_WRONLY|os.O_APPEND, 0600)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, s.RecordSize()/2))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFixedStore_ScanMissingFileYieldsNothing(t *testing.T) {
	s := newTestStore(t)

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFixedStore_IsEmpty(t *testing.T) {
	s := newTestStore(t)

	// Missing file is empty, not unavailable.
	empty, err := s.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, s.Append(pair{Key: "a", N: 1}))
	empty, err = s.IsEmpty()
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestFixedStore_CountTracksRecords(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := uint32(0); i < 4; i++ {
		require.NoError(t, s.Append(pair{Key: "rec", N: i}))
	}
	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestFixedStore_EncodeErrorAbortsBeforeWrite(t *testing.T) {
	s := newTestStore(t)

	err := s.Append(pair{Key: "far too long for the field", N: 1})
	var fe *codec.FieldError
	require.True(t, errors.As(err, &fe))

	// Nothing was written.
	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
