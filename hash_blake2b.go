package noise

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

type hashBLAKE2b struct{}

// BLAKE2b is the Noise "BLAKE2b" hash capability.
var BLAKE2b Hash = hashBLAKE2b{}

func (hashBLAKE2b) Name() string  { return "BLAKE2b" }
func (hashBLAKE2b) HashLen() int  { return blake2b.Size }
func (hashBLAKE2b) BlockLen() int { return blake2b.BlockSize }

func (hashBLAKE2b) New() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic("noise: blake2b.New512 with nil key cannot fail")
	}
	return h
}

func (h hashBLAKE2b) Sum(data []byte) []byte {
	sum := blake2b.Sum512(data)
	return sum[:]
}
