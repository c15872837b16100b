// Package codec provides the fixed-width binary field primitives the record
// stores are built on. Every entity occupies a constant number of bytes on
// disk: text fields are zero-padded to a fixed width, numeric fields use
// little-endian fixed-size encodings. The constant record size is what makes
// direct offset seeking in the stores valid.
package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Codec serializes one entity type to and from its fixed-size buffer.
// Size must return the same value for the life of the codec; Encode must
// produce exactly Size bytes and Decode must accept exactly Size bytes.
type Codec[T any] interface {
	Size() int
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

// FieldError reports a field value that does not fit its on-disk width.
// Over-long values are rejected, never silently truncated.
type FieldError struct {
	Field string
	Width int
	Len   int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %d bytes exceeds width %d", e.Field, e.Len, e.Width)
}

// PutString writes s into buf[off:off+width], zero-padding the remainder.
// Returns a *FieldError when s does not fit or is not valid UTF-8.
func PutString(buf []byte, off, width int, field, s string) error {
	if len(s) > width {
		return &FieldError{Field: field, Width: width, Len: len(s)}
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("field %s: invalid UTF-8", field)
	}
	n := copy(buf[off:off+width], s)
	for i := off + n; i < off+width; i++ {
		buf[i] = 0
	}
	return nil
}

// GetString reads the zero-padded string at buf[off:off+width].
func GetString(buf []byte, off, width int) string {
	b := buf[off : off+width]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// PutUint32 writes v little-endian at buf[off:off+4].
func PutUint32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

// GetUint32 reads the little-endian uint32 at buf[off:off+4].
func GetUint32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off:])
}

// PutUint64 writes v little-endian at buf[off:off+8].
func PutUint64(buf []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(buf[off:], v)
}

// GetUint64 reads the little-endian uint64 at buf[off:off+8].
func GetUint64(buf []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(buf[off:])
}

// PutBool writes v as a single byte at buf[off].
func PutBool(buf []byte, off int, v bool) {
	if v {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
}

// GetBool reads the byte at buf[off]; any non-zero value is true.
func GetBool(buf []byte, off int) bool {
	return buf[off] != 0
}
