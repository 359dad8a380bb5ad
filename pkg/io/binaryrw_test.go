package io

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mocks io.Writer to simulate failures.
type badRW struct{}

func (w *badRW) Write(p []byte) (int, error) {
	return 0, errors.New("it always fails")
}

func TestWriteU32BE(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteU32BE(0x01020304)
	require.NoError(t, bw.Err)
	buf := bw.Bytes()
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)

	br := NewBinReaderFromBuf(buf)
	assert.Equal(t, uint32(0x01020304), br.ReadU32BE())
	require.NoError(t, br.Err)
	assert.Equal(t, 0, br.Len())
}

func TestWriteU32LE(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteU32LE(0x01020304)
	buf := bw.Bytes()
	assert.Equal(t, []byte{4, 3, 2, 1}, buf)

	br := NewBinReaderFromBuf(buf)
	assert.Equal(t, uint32(0x01020304), br.ReadU32LE())
	require.NoError(t, br.Err)
}

func TestWriteBool(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteBool(true)
	bw.WriteBool(false)
	buf := bw.Bytes()
	assert.Equal(t, []byte{1, 0}, buf)

	br := NewBinReaderFromBuf(buf)
	assert.True(t, br.ReadBool())
	assert.False(t, br.ReadBool())
	require.NoError(t, br.Err)

	br = NewBinReaderFromBuf([]byte{2})
	br.ReadBool()
	require.Error(t, br.Err)
}

func TestU32BEBytes(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteU32BEBytes([]byte("abc"))
	buf := bw.Bytes()
	assert.Equal(t, []byte{0, 0, 0, 3, 'a', 'b', 'c'}, buf)

	t.Run("good", func(t *testing.T) {
		br := NewBinReaderFromBuf(buf)
		assert.Equal(t, []byte("abc"), br.ReadU32BEBytes())
		require.NoError(t, br.Err)
	})
	t.Run("empty", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0, 0, 0, 0})
		assert.Equal(t, []byte{}, br.ReadU32BEBytes())
		require.NoError(t, br.Err)
	})
	t.Run("declared length exceeds input", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0xff, 0xff, 0xff, 0xff, 'a'})
		assert.Nil(t, br.ReadU32BEBytes())
		require.ErrorIs(t, br.Err, io.ErrUnexpectedEOF)
	})
	t.Run("max size", func(t *testing.T) {
		br := NewBinReaderFromBuf(buf)
		assert.Nil(t, br.ReadU32BEBytes(2))
		require.Error(t, br.Err)
	})
	t.Run("short length", func(t *testing.T) {
		br := NewBinReaderFromBuf([]byte{0, 0})
		br.ReadU32BEBytes()
		require.ErrorIs(t, br.Err, io.ErrUnexpectedEOF)
	})
}

func TestReaderEOF(t *testing.T) {
	br := NewBinReaderFromBuf(nil)
	assert.Equal(t, byte(0), br.ReadB())
	require.ErrorIs(t, br.Err, io.EOF)

	// Errors are sticky.
	br = NewBinReaderFromBuf([]byte{1, 2})
	br.ReadU32BE()
	require.ErrorIs(t, br.Err, io.ErrUnexpectedEOF)
	assert.Equal(t, byte(0), br.ReadB())
	assert.Equal(t, 2, br.Len())
}

func TestReadBytes(t *testing.T) {
	br := NewBinReaderFromBuf([]byte{1, 2, 3})
	b := make([]byte, 2)
	br.ReadBytes(b)
	require.NoError(t, br.Err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, 1, br.Len())

	br.ReadBytes(b)
	require.ErrorIs(t, br.Err, io.ErrUnexpectedEOF)
}

func TestWriterErrHandling(t *testing.T) {
	var badio = &badRW{}
	bw := NewBinWriterFromIO(badio)
	bw.WriteB(0)
	assert.NotNil(t, bw.Err)
	// these should work (without panic), preserving the Err
	bw.WriteU32BE(0)
	bw.WriteU32LE(0)
	bw.WriteBool(false)
	bw.WriteBytes([]byte{0x55, 0xaa})
	bw.WriteU32BEBytes([]byte{0x55, 0xaa})
	assert.NotNil(t, bw.Err)
}

func TestBufBinWriter_Len(t *testing.T) {
	val := []byte{0xde}
	bw := NewBufBinWriter()
	bw.WriteBytes(val)
	require.Equal(t, 1, bw.Len())
}

func TestBufBinWriterErr(t *testing.T) {
	bw := NewBufBinWriter()
	bw.WriteB(1)
	// inject error
	bw.Err = errors.New("oopsie")
	res := bw.Bytes()
	assert.NotNil(t, bw.Err)
	assert.Nil(t, res)
}

func TestBufBinWriterReset(t *testing.T) {
	bw := NewBufBinWriter()
	for i := 0; i < 3; i++ {
		bw.WriteB(byte(i))
		assert.Nil(t, bw.Err)
		_ = bw.Bytes()
		require.ErrorIs(t, bw.Err, ErrDrained)
		bw.Reset()
		assert.Nil(t, bw.Err)
	}
}
