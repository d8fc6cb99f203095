package noise

import (
	"crypto/rand"
	"io"

	"github.com/mixmasala/noise/dh"
)

type dh448 struct{}

// DH448 is the Noise "448" DH capability (Curve448 / X448).
var DH448 DH = dh448{}

func (dh448) Name() string { return "448" }

func (dh448) DHLen() int { return dh.X448Len }

func (dh448) GenerateKeypair(random io.Reader) (KeyPair, error) {
	if random == nil {
		random = rand.Reader
	}
	priv, pub, err := dh.GenerateX448(random)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Private: priv, Public: pub}, nil
}

func (dh448) DH(privkey, pubkey []byte) ([]byte, error) {
	secret, err := dh.X448(privkey, pubkey)
	if err != nil {
		return nil, newCryptoError("X448 DH failed")
	}
	return secret, nil
}
