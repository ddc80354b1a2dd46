package codec

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarShort_Encoding(t *testing.T) {
	tests := []struct {
		value int
		want  []byte
	}{
		{0, []byte{0x00}},
		{2, []byte{0x02}},
		{254, []byte{0xFE}},
		{255, []byte{0xFF, 0x00, 0xFF}},
		{256, []byte{0xFF, 0x01, 0x00}},
		{65535, []byte{0xFF, 0xFF, 0xFF}},
	}
	for _, tc := range tests {
		w := NewWriter(0)
		require.NoError(t, w.VarShort(tc.value))
		assert.Equal(t, tc.want, w.Bytes(), "value %d", tc.value)

		got, err := NewReader(tc.want).VarShort()
		require.NoError(t, err)
		assert.Equal(t, tc.value, got)
	}
}

func TestVarShort_OutOfRange(t *testing.T) {
	for _, v := range []int{-1, 65536} {
		err := NewWriter(0).VarShort(v)
		assert.ErrorIs(t, err, ErrEncoding, "value %d", v)
	}
}

func TestByte_OutOfRange(t *testing.T) {
	w := NewWriter(0)
	assert.ErrorIs(t, w.Byte(256), ErrEncoding)
	assert.ErrorIs(t, w.Byte(-1), ErrEncoding)
	require.NoError(t, w.Byte(255))
	assert.Equal(t, []byte{0xFF}, w.Bytes())
}

func TestReader_Truncated(t *testing.T) {
	_, err := NewReader(nil).Byte()
	assert.ErrorIs(t, err, ErrDecoding)

	_, err = NewReader([]byte{0xFF, 0x01}).VarShort()
	assert.ErrorIs(t, err, ErrDecoding)

	_, err = NewReader(make([]byte, 15)).ID()
	assert.ErrorIs(t, err, ErrDecoding)
}

func TestID_RawBytes(t *testing.T) {
	id := uuid.MustParse("1ce5dc33-91b2-4f69-8680-639d702d9f56")
	w := NewWriter(16)
	w.ID(id)
	assert.Equal(t, id[:], w.Bytes())

	rd := NewReader(w.Bytes())
	got, err := rd.ID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Zero(t, rd.Remaining())
}
