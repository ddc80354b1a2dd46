// Package codec implements the compact binary format used to persist
// search result sets in the cache.
//
// A payload is a concatenation of tagged records, each a one-byte type tag
// followed by a type-specific body. Only identifiers are carried; display
// fields are restored from the catalog after decoding.
package codec

import (
	"fmt"

	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

// Type tags.
const (
	TagItem   = 0x01
	TagRecipe = 0x02
)

// Serialize encodes a single result as a tagged record.
func Serialize(r result.Result) ([]byte, error) {
	w := NewWriter(32)
	if err := serialize(w, r); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Deserialize decodes exactly one tagged record.
func Deserialize(data []byte) (result.Result, error) {
	rd := NewReader(data)
	r, err := deserialize(rd)
	if err != nil {
		return nil, err
	}
	if rd.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrDecoding, rd.Remaining())
	}
	return r, nil
}

// SerializeSet concatenates the tagged records of results in order.
func SerializeSet(results []result.Result) ([]byte, error) {
	w := NewWriter(32 * len(results))
	for i, r := range results {
		if err := serialize(w, r); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
	}
	return w.Bytes(), nil
}

// DeserializeSet decodes records until data is exhausted.
func DeserializeSet(data []byte) ([]result.Result, error) {
	rd := NewReader(data)
	var out []result.Result
	for rd.Remaining() > 0 {
		r, err := deserialize(rd)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", len(out), err)
		}
		out = append(out, r)
	}
	return out, nil
}

func serialize(w *Writer, r result.Result) error {
	switch v := r.(type) {
	case *result.ItemResult:
		if err := w.Byte(TagItem); err != nil {
			return err
		}
		return encodeItem(w, v)
	case *result.RecipeResult:
		if err := w.Byte(TagRecipe); err != nil {
			return err
		}
		return encodeRecipe(w, v)
	default:
		return fmt.Errorf("%w: unsupported result type %T", ErrEncoding, r)
	}
}

func deserialize(rd *Reader) (result.Result, error) {
	tag, err := rd.Byte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagItem:
		return decodeItem(rd)
	case TagRecipe:
		return decodeRecipe(rd)
	default:
		return nil, fmt.Errorf("%w: unknown tag 0x%02x", ErrDecoding, tag)
	}
}
