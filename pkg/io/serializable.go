package io

// Serializable defines the binary encoding/decoding interface. Errors
// encountered while encoding or decoding are set to the Err field of the
// writer or reader.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}
