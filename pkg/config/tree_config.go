package config

import (
	"github.com/nspcc-dev/bytetree/pkg/crypto/hash"
)

// Default tree parameters.
const (
	DefaultHash       = hash.SHA256
	DefaultDigestSize = hash.DefaultSize
)

// TreeConfiguration describes parameters trees are built with. Trees
// serialized with one set of parameters can be decoded with any other, but
// their root digests will differ.
type TreeConfiguration struct {
	Hash       string `yaml:"Hash"`
	DigestSize int    `yaml:"DigestSize"`
}

// Validate checks that the digest function is known and supports the
// digest size.
func (t TreeConfiguration) Validate() error {
	_, err := t.DigestFunc()
	return err
}

// DigestFunc returns configured digest function.
func (t TreeConfiguration) DigestFunc() (hash.Func, error) {
	return hash.Get(t.Hash, t.DigestSize)
}
