package noise

import (
	"crypto/sha256"
	"hash"
)

type hashSHA256 struct{}

// SHA256 is the Noise "SHA256" hash capability.
var SHA256 Hash = hashSHA256{}

func (hashSHA256) Name() string     { return "SHA256" }
func (hashSHA256) HashLen() int     { return sha256.Size }
func (hashSHA256) BlockLen() int    { return sha256.BlockSize }
func (hashSHA256) New() hash.Hash   { return sha256.New() }
func (hashSHA256) Sum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}
