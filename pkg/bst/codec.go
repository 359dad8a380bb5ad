package bst

import (
	"errors"
	"fmt"
	gio "io"
	"math"

	"github.com/nspcc-dev/bytetree/pkg/crypto/hash"
	"github.com/nspcc-dev/bytetree/pkg/io"
)

// Node presence markers.
const (
	markerAbsent  byte = 0
	markerPresent byte = 1
)

var (
	// ErrInvalidMarker is returned when a node presence marker is neither 0 nor 1.
	ErrInvalidMarker = errors.New("invalid node marker")
	// ErrTrailingData is returned when serialized tree is followed by extra bytes.
	ErrTrailingData = errors.New("trailing data after serialized tree")
	// ErrTooBig is returned on attempt to serialize an entry longer than
	// math.MaxUint32 bytes.
	ErrTooBig = errors.New("entry is too big")
)

// NewTreeFromBytes decodes serialized tree using the given digest function
// and digest size. Zero-length data is an empty tree.
func NewTreeFromBytes(digest hash.Func, size int, data []byte) (*Tree, error) {
	t := NewTree(digest, size)
	r := io.NewBinReaderFromBuf(data)
	t.DecodeBinary(r)
	if r.Err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", r.Err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Len())
	}
	return t, nil
}

// Bytes returns serialized t.
func (t *Tree) Bytes() ([]byte, error) {
	buf := io.NewBufBinWriter()
	t.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil, buf.Err
	}
	return buf.Bytes(), nil
}

// EncodeBinary implements io.Serializable interface.
func (t *Tree) EncodeBinary(w *io.BinWriter) {
	if t.root == nil {
		return
	}
	stack := []*node{t.root}
	for len(stack) > 0 && w.Err == nil {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			w.WriteB(markerAbsent)
			continue
		}
		if uint64(len(n.entry.value)) > math.MaxUint32 {
			w.Err = fmt.Errorf("%w: %d bytes", ErrTooBig, len(n.entry.value))
			return
		}
		w.WriteB(markerPresent)
		w.WriteB(byte(n.entry.typ))
		w.WriteU32BEBytes(n.entry.value)
		stack = append(stack, n.right, n.left)
	}
}

// DecodeBinary implements io.Serializable interface. It replaces contents of
// t with the decoded tree, no bytes left in r means an empty tree. t is not
// changed if decoding fails.
func (t *Tree) DecodeBinary(r *io.BinReader) {
	if r.Err != nil {
		return
	}
	var (
		root  *node
		count int
	)
	if r.Len() != 0 {
		stack := []**node{&root}
		for len(stack) > 0 && r.Err == nil {
			slot := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			m := r.ReadB()
			if r.Err != nil {
				break
			}
			switch m {
			case markerAbsent:
			case markerPresent:
				typ := Type(r.ReadB())
				value := r.ReadU32BEBytes()
				if r.Err != nil {
					break
				}
				if len(value) == 0 {
					value = nil
				}
				n := &node{entry: Entry{typ: typ, value: value}}
				*slot = n
				count++
				stack = append(stack, &n.right, &n.left)
			default:
				r.Err = fmt.Errorf("%w: %d", ErrInvalidMarker, m)
			}
		}
		// The first marker is there, so any EOF is a truncation.
		if r.Err == gio.EOF {
			r.Err = gio.ErrUnexpectedEOF
		}
		if r.Err == nil && root == nil {
			r.Err = fmt.Errorf("%w: absent root, empty tree is encoded as no data", ErrInvalidMarker)
		}
	}
	if r.Err != nil {
		return
	}
	t.root = root
	t.count = count
	t.updateRoot()
}
