package bst

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Type is a one-byte entry type tag. The tree doesn't interpret it beyond
// ordering and serialization, so any value is valid.
type Type byte

// This block defines well-known entry types.
const (
	AnyT       Type = 0x00
	BooleanT   Type = 0x20
	IntegerT   Type = 0x21
	ByteArrayT Type = 0x28
	BufferT    Type = 0x30
)

// String implements fmt.Stringer interface.
func (t Type) String() string {
	switch t {
	case AnyT:
		return "Any"
	case BooleanT:
		return "Boolean"
	case IntegerT:
		return "Integer"
	case ByteArrayT:
		return "ByteString"
	case BufferT:
		return "Buffer"
	default:
		return fmt.Sprintf("0x%02x", byte(t))
	}
}

// ParseType parses type name as returned by String (case-insensitive) or a
// 0x-prefixed hex byte.
func ParseType(s string) (Type, error) {
	for _, t := range []Type{AnyT, BooleanT, IntegerT, ByteArrayT, BufferT} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	if len(s) == 4 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		b, err := hex.DecodeString(s[2:])
		if err == nil {
			return Type(b[0]), nil
		}
	}
	return 0, fmt.Errorf("invalid entry type: %q", s)
}

// Entry is an immutable type-tagged byte sequence, it's both the key and the
// payload stored in the tree.
type Entry struct {
	typ   Type
	value []byte
}

// NewEntry creates an entry of the given type. The value is copied, empty
// values are stored as nil.
func NewEntry(typ Type, value []byte) Entry {
	return Entry{typ: typ, value: copySlice(value)}
}

// NewByteArray creates a ByteArrayT entry.
func NewByteArray(value []byte) Entry {
	return NewEntry(ByteArrayT, value)
}

// Type returns entry type.
func (e Entry) Type() Type {
	return e.typ
}

// Value returns a copy of entry contents.
func (e Entry) Value() []byte {
	return copySlice(e.value)
}

// Len returns the length of entry contents.
func (e Entry) Len() int {
	return len(e.value)
}

// Compare orders entries lexicographically by their contents with shorter
// prefixes first. Entries with equal contents are ordered by type.
func (e Entry) Compare(other Entry) int {
	if c := bytes.Compare(e.value, other.value); c != 0 {
		return c
	}
	switch {
	case e.typ < other.typ:
		return -1
	case e.typ > other.typ:
		return 1
	}
	return 0
}

// Equal checks whether entries have the same type and contents.
func (e Entry) Equal(other Entry) bool {
	return e.Compare(other) == 0
}

// String implements fmt.Stringer interface.
func (e Entry) String() string {
	return e.typ.String() + ":" + hex.EncodeToString(e.value)
}

func copySlice(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
