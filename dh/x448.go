package dh

import (
	"crypto/rand"
	"io"

	"github.com/cloudflare/circl/dh/x448"
)

// X448Len is the length in bytes of an X448 private key, public key, and
// shared secret.
const X448Len = x448.Size

// GenerateX448 creates a new X448 keypair, reading entropy from random
// (crypto/rand.Reader if nil).
func GenerateX448(random io.Reader) (priv, pub []byte, err error) {
	if random == nil {
		random = rand.Reader
	}
	var key x448.Key
	if _, err := io.ReadFull(random, key[:]); err != nil {
		return nil, nil, err
	}
	var pubKey x448.Key
	x448.KeyGen(&pubKey, &key)
	return key[:], pubKey[:], nil
}

// X448 computes the X448 shared secret between priv and pub.
func X448(priv, pub []byte) ([]byte, error) {
	var privKey, pubKey, shared x448.Key
	copy(privKey[:], priv)
	copy(pubKey[:], pub)
	ok := x448.Shared(&shared, &privKey, &pubKey)
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	return shared[:], nil
}
