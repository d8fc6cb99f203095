package noise

import (
	"hash"

	"golang.org/x/crypto/blake2s"
)

type hashBLAKE2s struct{}

// BLAKE2s is the Noise "BLAKE2s" hash capability.
var BLAKE2s Hash = hashBLAKE2s{}

func (hashBLAKE2s) Name() string  { return "BLAKE2s" }
func (hashBLAKE2s) HashLen() int  { return blake2s.Size }
func (hashBLAKE2s) BlockLen() int { return blake2s.BlockSize }

func (hashBLAKE2s) New() hash.Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic("noise: blake2s.New256 with nil key cannot fail")
	}
	return h
}

func (h hashBLAKE2s) Sum(data []byte) []byte {
	sum := blake2s.Sum256(data)
	return sum[:]
}
