package noise

import (
	"crypto/rand"
	"io"

	"github.com/mixmasala/noise/dh"
)

type dh25519 struct{}

// DH25519 is the Noise "25519" DH capability (Curve25519 / X25519).
var DH25519 DH = dh25519{}

func (dh25519) Name() string { return "25519" }

func (dh25519) DHLen() int { return dh.X25519Len }

func (dh25519) GenerateKeypair(random io.Reader) (KeyPair, error) {
	if random == nil {
		random = rand.Reader
	}
	priv, pub, err := dh.GenerateX25519(random)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Private: priv, Public: pub}, nil
}

func (dh25519) DH(privkey, pubkey []byte) ([]byte, error) {
	secret, err := dh.X25519(privkey, pubkey)
	if err != nil {
		return nil, newCryptoError("X25519 DH failed")
	}
	return secret, nil
}
