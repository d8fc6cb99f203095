package noise

import (
	"crypto/sha512"
	"hash"
)

type hashSHA512 struct{}

// SHA512 is the Noise "SHA512" hash capability.
var SHA512 Hash = hashSHA512{}

func (hashSHA512) Name() string   { return "SHA512" }
func (hashSHA512) HashLen() int   { return sha512.Size }
func (hashSHA512) BlockLen() int  { return sha512.BlockSize }
func (hashSHA512) New() hash.Hash { return sha512.New() }
func (hashSHA512) Sum(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}
