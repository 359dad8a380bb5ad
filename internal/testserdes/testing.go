package testserdes

import (
	"fmt"

	"github.com/nspcc-dev/bytetree/pkg/io"
)

// EncodeBinary serializes a to a byte slice.
func EncodeBinary(a io.Serializable) ([]byte, error) {
	w := io.NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// DecodeBinary deserializes a from a byte slice. It fails if data is not
// consumed completely.
func DecodeBinary(data []byte, a io.Serializable) error {
	r := io.NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	if r.Err == nil && r.Len() != 0 {
		return fmt.Errorf("%d bytes left after decoding", r.Len())
	}
	return r.Err
}
