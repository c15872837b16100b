// Package store implements the fixed-width record file engine. A store file
// is a sequence of back-to-back records of one constant size; records are
// addressed by their physical index, so offset = index * size. Deletion
// rebuilds the file and installs the replacement with a single atomic rename.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openfleet/carrent/pkg/codec"
)

// FixedStore is a generic append/scan/update/delete engine over a file of
// fixed-size records. It has no knowledge of entity semantics; entity stores
// layer lookup keys on top of it.
//
// Every operation opens the file, performs its work, and closes it before
// returning. A single mutex enforces the single-writer discipline; the store
// assumes it is the only process touching the file.
type FixedStore[T any] struct {
	config   Config
	codec    codec.Codec[T]
	logger   *slog.Logger
	observer Observer
	mutex    sync.Mutex
}

// NewFixedStore creates a store for one entity type. The file is created
// lazily on first append.
func NewFixedStore[T any](config Config, c codec.Codec[T]) (*FixedStore[T], error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("store %s: empty file path", config.Name)
	}
	if c.Size() <= 0 {
		return nil, fmt.Errorf("store %s: codec reports non-positive record size", config.Name)
	}
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, fmt.Errorf("store %s: %w", config.Name, err)
	}
	return &FixedStore[T]{
		config: config,
		codec:  c,
		logger: slog.Default(),
	}, nil
}

// SetLogger replaces the store's logger.
func (s *FixedStore[T]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetObserver attaches an operation observer (metrics).
func (s *FixedStore[T]) SetObserver(o Observer) {
	s.observer = o
}

// Path returns the store file path.
func (s *FixedStore[T]) Path() string {
	return s.config.FilePath
}

// RecordSize returns the constant on-disk size of one record.
func (s *FixedStore[T]) RecordSize() int {
	return s.codec.Size()
}

func (s *FixedStore[T]) observe(op string, err error, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveOp(s.config.Name, op, err, time.Since(start))
	}
}

// Append encodes rec and writes it at end-of-file, creating the file if
// needed. The write is synced before return; a short write is an error and
// the partial record is truncated away.
func (s *FixedStore[T]) Append(rec T) (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	defer func(start time.Time) { s.observe("append", err, start) }(time.Now())

	data, err := s.codec.Encode(rec)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(s.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("store %s: %w", s.config.Name, err)
	}

	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return fmt.Errorf("store %s: %w", s.config.Name, err)
	}

	n, err := file.Write(data)
	if err != nil || n < len(data) {
		// Drop the partial record so the file stays a whole number of records.
		truncErr := file.Truncate(end)
		file.Close()
		if err == nil {
			err = ErrShortWrite
		}
		if truncErr != nil {
			s.logger.Error("failed to truncate partial record",
				"store", s.config.Name, "error", truncErr)
		}
		return fmt.Errorf("store %s: %w", s.config.Name, err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("store %s: %w", s.config.Name, err)
	}
	return file.Close()
}

// Scan returns a cursor positioned before the first record. Each call opens
// the file afresh; a missing file yields an immediately-exhausted cursor. A
// trailing partial record reads as end-of-stream, not an error.
func (s *FixedStore[T]) Scan() (*Cursor[T], error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.scan()
}

func (s *FixedStore[T]) scan() (*Cursor[T], error) {
	file, err := os.Open(s.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Cursor[T]{codec: s.codec, index: -1}, nil
		}
		return nil, fmt.Errorf("store %s: %w", s.config.Name, ErrStoreUnavailable)
	}
	return &Cursor[T]{codec: s.codec, file: file, index: -1}, nil
}

// All drains a scan into a slice, in append order.
func (s *FixedStore[T]) All() (out []T, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	defer func(start time.Time) { s.observe("scan", err, start) }(time.Now())

	cur, err := s.scan()
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	for cur.Next() {
		out = append(out, cur.Record())
	}
	return out, cur.Err()
}

// FindFirst scans in append order and returns the first record matching
// pred together with its index. ErrNotFound when nothing matches.
func (s *FixedStore[T]) FindFirst(pred func(T) bool) (rec T, index int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	defer func(start time.Time) { s.observe("find", err, start) }(time.Now())

	cur, err := s.scan()
	if err != nil {
		return rec, 0, err
	}
	defer cur.Close()

	for cur.Next() {
		if pred(cur.Record()) {
			return cur.Record(), cur.Index(), nil
		}
	}
	if err := cur.Err(); err != nil {
		return rec, 0, err
	}
	return rec, 0, ErrNotFound
}

// UpdateAt overwrites the whole record at index in place. The index must
// come from a scan of the current file contents; an index beyond the last
// record is ErrNotFound.
func (s *FixedStore[T]) UpdateAt(index int, rec T) (err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	defer func(start time.Time) { s.observe("update", err, start) }(time.Now())

	if index < 0 {
		return ErrBadIndex
	}

	data, err := s.codec.Encode(rec)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(s.config.FilePath, os.O_RDWR, 0600)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("store %s: %w", s.config.Name, ErrStoreUnavailable)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("store %s: %w", s.config.Name, err)
	}

	offset := int64(index) * int64(s.codec.Size())
	if offset+int64(s.codec.Size()) > stat.Size() {
		return ErrNotFound
	}

	if _, err := file.WriteAt(data, offset); err != nil {
		return fmt.Errorf("store %s: %w", s.config.Name, err)
	}
	return file.Sync()
}

// DeleteWhere removes every record matching pred by rebuilding the store:
// survivors are copied to a temp file in the same directory, synced, and the
// temp file is renamed over the original in one atomic step. When nothing
// matches the original file is left untouched, byte for byte.
func (s *FixedStore[T]) DeleteWhere(pred func(index int, rec T) bool) (removed int, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	defer func(start time.Time) { s.observe("delete", err, start) }(time.Now())

	cur, err := s.scan()
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	dir := filepath.Dir(s.config.FilePath)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.config.FilePath)+".rebuild-*")
	if err != nil {
		return 0, fmt.Errorf("store %s: %w", s.config.Name, err)
	}
	tmpPath := tmp.Name()
	discard := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	for cur.Next() {
		if pred(cur.Index(), cur.Record()) {
			removed++
			continue
		}
		data, err := s.codec.Encode(cur.Record())
		if err != nil {
			discard()
			return 0, err
		}
		if _, err := tmp.Write(data); err != nil {
			discard()
			return 0, fmt.Errorf("store %s: %w", s.config.Name, err)
		}
	}
	if err := cur.Err(); err != nil {
		discard()
		return 0, err
	}

	if removed == 0 {
		discard()
		return 0, nil
	}

	if err := tmp.Sync(); err != nil {
		discard()
		return 0, fmt.Errorf("store %s: %w", s.config.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("store %s: %w", s.config.Name, err)
	}

	// Atomic install: rename over the original, never delete-then-rename.
	if err := os.Rename(tmpPath, s.config.FilePath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("store %s: %w", s.config.Name, err)
	}

	s.logger.Debug("store rebuilt", "store", s.config.Name, "removed", removed)
	return removed, nil
}

// Count returns the number of whole records in the file. A missing file
// counts as zero records.
func (s *FixedStore[T]) Count() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.count()
}

func (s *FixedStore[T]) count() (int, error) {
	stat, err := os.Stat(s.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("store %s: %w", s.config.Name, ErrStoreUnavailable)
	}
	n := int(stat.Size() / int64(s.codec.Size()))
	if s.observer != nil {
		s.observer.SetRecords(s.config.Name, n)
	}
	return n, nil
}

// IsEmpty reports whether the store holds zero records. A store file that
// does not exist yet is empty; any other open failure is ErrStoreUnavailable,
// never conflated with emptiness.
func (s *FixedStore[T]) IsEmpty() (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	n, err := s.count()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Cursor provides sequential access to a store's records, in append order.
type Cursor[T any] struct {
	codec codec.Codec[T]
	file  *os.File
	rec   T
	index int
	err   error
	done  bool
}

// Next advances to the next record, reporting whether one was read. A read
// that yields fewer bytes than the record size is end-of-stream.
func (c *Cursor[T]) Next() bool {
	if c.done || c.err != nil || c.file == nil {
		c.done = true
		return false
	}
	buf := make([]byte, c.codec.Size())
	if _, err := io.ReadFull(c.file, buf); err != nil {
		c.done = true
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false
		}
		c.err = err
		return false
	}
	rec, err := c.codec.Decode(buf)
	if err != nil {
		c.done = true
		c.err = err
		return false
	}
	c.rec = rec
	c.index++
	return true
}

// Record returns the record read by the last successful Next.
func (c *Cursor[T]) Record() T {
	return c.rec
}

// Index returns the physical index of the current record.
func (c *Cursor[T]) Index() int {
	return c.index
}

// Err returns the first error encountered, if any. io.EOF is not an error.
func (c *Cursor[T]) Err() error {
	return c.err
}

// Close releases the underlying file.
func (c *Cursor[T]) Close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}
