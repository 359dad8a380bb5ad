package io

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BinReader is a bounds-checked reader over a byte slice with a sticky
// error. Every read after the first failure is a no-op returning zero
// values, so a sequence of reads can be checked once at the end.
type BinReader struct {
	data []byte
	pos  int
	Err  error
}

// NewBinReaderFromBuf makes a BinReader from byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{data: b}
}

// Len returns the number of bytes not yet read.
func (r *BinReader) Len() int {
	return len(r.data) - r.pos
}

// ReadB reads a single byte.
func (r *BinReader) ReadB() byte {
	if r.Err != nil {
		return 0
	}
	if r.pos >= len(r.data) {
		r.Err = io.EOF
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

// ReadBool reads a byte and checks that it is a valid boolean (0 or 1).
func (r *BinReader) ReadBool() bool {
	b := r.ReadB()
	if r.Err == nil && b > 1 {
		r.Err = fmt.Errorf("invalid boolean value: %d", b)
	}
	return b == 1
}

// ReadU32BE reads a big-endian uint32.
func (r *BinReader) ReadU32BE() uint32 {
	if r.Err != nil {
		return 0
	}
	if r.Len() < 4 {
		r.setShort()
		return 0
	}
	u := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return u
}

// ReadU32LE reads a little-endian uint32.
func (r *BinReader) ReadU32LE() uint32 {
	if r.Err != nil {
		return 0
	}
	if r.Len() < 4 {
		r.setShort()
		return 0
	}
	u := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return u
}

// ReadBytes fills b from the underlying buffer. It fails without consuming
// anything if there are fewer than len(b) bytes left.
func (r *BinReader) ReadBytes(b []byte) {
	if r.Err != nil {
		return
	}
	if r.Len() < len(b) {
		r.setShort()
		return
	}
	r.pos += copy(b, r.data[r.pos:])
}

// ReadU32BEBytes reads a byte slice prefixed with its big-endian uint32
// length. The length is checked against the remaining input before any
// allocation happens, maxSize (if given) limits it further.
func (r *BinReader) ReadU32BEBytes(maxSize ...int) []byte {
	n := r.ReadU32BE()
	if r.Err != nil {
		return nil
	}
	if len(maxSize) != 0 && uint64(n) > uint64(maxSize[0]) {
		r.Err = fmt.Errorf("byte-slice is too big (%d)", n)
		return nil
	}
	if uint64(n) > uint64(r.Len()) {
		r.Err = fmt.Errorf("%w: %d bytes declared, %d left", io.ErrUnexpectedEOF, n, r.Len())
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	return b
}

func (r *BinReader) setShort() {
	if r.Len() == 0 {
		r.Err = io.EOF
	} else {
		r.Err = io.ErrUnexpectedEOF
	}
}
