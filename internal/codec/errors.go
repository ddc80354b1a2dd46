package codec

import "errors"

var (
	// ErrEncoding is returned when a value cannot be represented on the wire.
	ErrEncoding = errors.New("encoding error")
	// ErrDecoding is returned for truncated or corrupt payloads.
	ErrDecoding = errors.New("decoding error")
)
