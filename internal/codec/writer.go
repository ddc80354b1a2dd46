package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
)

const varShortMarker = 0xFF

// Writer appends big-endian primitives to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Byte writes a single byte in [0, 255].
func (w *Writer) Byte(v int) error {
	if v < 0 || v > math.MaxUint8 {
		return fmt.Errorf("%w: byte %d out of range", ErrEncoding, v)
	}
	w.buf = append(w.buf, byte(v))
	return nil
}

// VarShort writes v in [0, 65535] as one byte, or as 0xFF followed by a
// big-endian uint16 when v >= 255.
func (w *Writer) VarShort(v int) error {
	if v < 0 || v > math.MaxUint16 {
		return fmt.Errorf("%w: varshort %d out of range", ErrEncoding, v)
	}
	if v < varShortMarker {
		w.buf = append(w.buf, byte(v))
		return nil
	}
	w.buf = append(w.buf, varShortMarker)
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(v))
	return nil
}

// ID writes the raw 16 bytes of id.
func (w *Writer) ID(id uuid.UUID) {
	w.buf = append(w.buf, id[:]...)
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }
