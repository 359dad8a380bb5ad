/*
Package hash provides digest functions usable as tree hashers. Every function
produces a digest of the requested length, implementations are looked up by
name.
*/
package hash

import (
	"errors"
	"fmt"
	"sort"

	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Func is a deterministic digest function returning exactly length bytes
// of data digest. The length must be in the range supported by the function
// (see Get), Func panics otherwise.
type Func func(data []byte, length int) []byte

// Well-known digest function names.
const (
	SHA256  = "sha256"
	SHA3    = "sha3-256"
	Blake2b = "blake2b"
)

// DefaultSize is the default digest length in bytes.
const DefaultSize = 32

// ErrUnknown is returned for digest function names not registered.
var ErrUnknown = errors.New("unknown digest function")

type provider struct {
	fn      Func
	maxSize int
}

var providers = make(map[string]provider)

func init() {
	Register(SHA256, sha256.Size, Sha256)
	Register(SHA3, 1<<16, Shake256)
	Register(Blake2b, blake2b.Size, Blake2bSum)
}

// Register makes a digest function available under the given name. maxSize
// is the maximum digest length fn can produce. It panics if the name is
// already taken.
func Register(name string, maxSize int, fn Func) {
	if _, ok := providers[name]; ok {
		panic(fmt.Sprintf("digest function %q is already registered", name))
	}
	providers[name] = provider{fn: fn, maxSize: maxSize}
}

// Get returns digest function registered under the given name after checking
// that it can produce digests of the given size.
func Get(name string, size int) (Func, error) {
	p, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if size < 1 || size > p.maxSize {
		return nil, fmt.Errorf("invalid %s digest size %d, should be 1..%d", name, size, p.maxSize)
	}
	return p.fn, nil
}

// Names returns sorted names of all registered digest functions.
func Names() []string {
	res := make([]string, 0, len(providers))
	for name := range providers {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Sha256 hashes data with SHA-256 truncating the result to length bytes.
func Sha256(data []byte, length int) []byte {
	if length > sha256.Size {
		panic(fmt.Sprintf("sha256 can't produce %d bytes", length))
	}
	h := sha256.Sum256(data)
	return h[:length]
}

// Shake256 hashes data with SHA3 SHAKE256 extendable-output function.
func Shake256(data []byte, length int) []byte {
	res := make([]byte, length)
	sha3.ShakeSum256(res, data)
	return res
}

// Blake2bSum hashes data with BLAKE2b configured for length-byte output.
func Blake2bSum(data []byte, length int) []byte {
	h, err := blake2b.New(length, nil)
	if err != nil {
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum(nil)
}
