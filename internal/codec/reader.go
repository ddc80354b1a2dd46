package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Reader consumes big-endian primitives from a buffer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) next(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrDecoding, n, r.pos, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Byte reads one byte.
func (r *Reader) Byte() (int, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return int(b[0]), nil
}

// VarShort reads a value written by Writer.VarShort.
func (r *Reader) VarShort() (int, error) {
	v, err := r.Byte()
	if err != nil {
		return 0, err
	}
	if v != varShortMarker {
		return v, nil
	}
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint16(b)), nil
}

// ID reads 16 raw bytes as an identifier.
func (r *Reader) ID() (uuid.UUID, error) {
	b, err := r.next(16)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	copy(id[:], b)
	return id, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }
