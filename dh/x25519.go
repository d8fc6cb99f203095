// Package dh implements the raw Diffie-Hellman primitives used by the
// noise package's DH capability. It knows nothing about Noise itself —
// it only generates keys and computes shared secrets.
package dh

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/curve25519"
)

// X25519Len is the length in bytes of an X25519 private key, public key,
// and shared secret.
const X25519Len = 32

// ErrInvalidPublicKey is returned when an X25519/X448 DH computation
// yields an all-zero shared secret, which happens only for a small set
// of non-contributory public keys.
var ErrInvalidPublicKey = errors.New("dh: invalid public key")

// GenerateX25519 creates a new X25519 keypair, reading entropy from
// random (crypto/rand.Reader if nil). The private scalar is returned as
// read; curve25519 clamps it whenever it is used.
func GenerateX25519(random io.Reader) (priv, pub []byte, err error) {
	if random == nil {
		random = rand.Reader
	}
	priv = make([]byte, X25519Len)
	if _, err := io.ReadFull(random, priv); err != nil {
		return nil, nil, err
	}
	pub, err = PublicX25519(priv)
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}

// PublicX25519 derives the public key for an existing private scalar.
func PublicX25519(priv []byte) ([]byte, error) {
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// X25519 computes the X25519 shared secret between priv and pub.
func X25519(priv, pub []byte) ([]byte, error) {
	secret, err := curve25519.X25519(priv, pub)
	if err != nil {
		return nil, err
	}
	var allZero byte
	for _, b := range secret {
		allZero |= b
	}
	if allZero == 0 {
		return nil, ErrInvalidPublicKey
	}
	return secret, nil
}
