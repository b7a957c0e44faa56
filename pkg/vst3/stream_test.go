package vst3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStreamWriteRead(t *testing.T) {
	s := NewMemoryStream()

	n, res := s.Write([]byte{1, 2, 3, 4})
	require.True(t, res.OK())
	assert.Equal(t, int32(4), n)
	assert.Equal(t, 4, s.Size())

	pos, res := s.Seek(0, SeekSet)
	require.True(t, res.OK())
	assert.Equal(t, int64(0), pos)

	buf := make([]byte, 4)
	n, res = s.Read(buf)
	require.True(t, res.OK())
	assert.Equal(t, int32(4), n)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)

	// Reading past the end is a zero-byte success, not an error.
	n, res = s.Read(buf)
	require.True(t, res.OK())
	assert.Equal(t, int32(0), n)
}

func TestMemoryStreamOverwrite(t *testing.T) {
	s := NewMemoryStream()
	s.Write([]byte{1, 2, 3, 4})
	s.Seek(1, SeekSet)
	s.Write([]byte{9, 9})
	assert.Equal(t, []byte{1, 9, 9, 4}, s.Bytes())
}

func TestMemoryStreamSeek(t *testing.T) {
	s := NewMemoryStream()
	s.Write([]byte{1, 2, 3, 4})

	pos, res := s.Seek(-1, SeekEnd)
	require.True(t, res.OK())
	assert.Equal(t, int64(3), pos)

	pos, res = s.Seek(-1, SeekCur)
	require.True(t, res.OK())
	assert.Equal(t, int64(2), pos)

	// Seeking before zero clamps.
	pos, res = s.Seek(-100, SeekCur)
	require.True(t, res.OK())
	assert.Equal(t, int64(0), pos)

	_, res = s.Seek(0, 42)
	assert.Equal(t, InvalidArgument, res)

	tell, res := s.Tell()
	require.True(t, res.OK())
	assert.Equal(t, int64(0), tell)
}

func TestMemoryStreamFromCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	s := NewMemoryStreamFrom(src)
	src[0] = 99
	assert.Equal(t, []byte{1, 2, 3}, s.Bytes())
}
