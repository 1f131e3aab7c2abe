package crypto

import (
	"crypto/sha256"

	"github.com/bwtcert/scwallet/pkg/encoding/rivbin"
)

const (
	// HashSize defines the size, in bytes, of a Hash.
	HashSize = sha256.Size
)

// Hash is a double SHA-256 digest, matching the hashing convention used
// throughout the backing blockchain for transaction and certificate
// identifiers.
type Hash [HashSize]byte

// nilHash is the zero value for Hash.
var nilHash = Hash{}

// IsNil returns true if the hash equals the zero hash.
func (h Hash) IsNil() bool {
	return h == nilHash
}

// String returns the hex representation of the hash.
func (h Hash) String() string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, HashSize*2)
	for i, b := range h {
		buf[i*2] = hextable[b>>4]
		buf[i*2+1] = hextable[b&0x0f]
	}
	return string(buf)
}

// sha256d computes the double SHA-256 digest of the input, the hashing
// scheme inherited from the underlying Bitcoin-derived chain.
func sha256d(data []byte) Hash {
	first := sha256.Sum256(data)
	return Hash(sha256.Sum256(first[:]))
}

// HashBytes returns the double SHA-256 hash of a raw byte slice.
func HashBytes(data []byte) Hash {
	return sha256d(data)
}

// HashObject encodes an object using the canonical binary codec and returns
// its double SHA-256 hash.
func HashObject(obj interface{}) Hash {
	b, err := rivbin.Marshal(obj)
	if err != nil {
		// marshaling failures indicate a programming error in the caller's
		// type, not a runtime condition.
		panic("crypto: HashObject: " + err.Error())
	}
	return sha256d(b)
}

// HashAll concatenates the canonical encoding of every argument and returns
// the double SHA-256 hash of the result.
func HashAll(objs ...interface{}) Hash {
	b, err := rivbin.MarshalAll(objs...)
	if err != nil {
		panic("crypto: HashAll: " + err.Error())
	}
	return sha256d(b)
}

// NewHash creates a Hash from a byte slice, truncating or zero-padding as
// needed to fit HashSize.
func NewHash(b []byte) (h Hash) {
	copy(h[:], b)
	return
}
