package noise

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"
)

// chachaPolyAEAD implements the ChaChaPoly AEAD capability: 4 zero
// bytes followed by a little-endian 64-bit counter nonce, per spec.md
// §4.1.
type chachaPolyAEAD struct{}

// ChaChaPoly is the Noise "ChaChaPoly" AEAD capability.
var ChaChaPoly AEAD = chachaPolyAEAD{}

func (chachaPolyAEAD) Name() string { return "ChaChaPoly" }

func (chachaPolyAEAD) nonce(n uint64) [chacha20poly1305.NonceSize]byte {
	var nonce [chacha20poly1305.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[4:], n)
	return nonce
}

func (c chachaPolyAEAD) Encrypt(dst, key []byte, n uint64, ad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, newCryptoError("failed to initialize ChaChaPoly")
	}
	nonce := c.nonce(n)
	return aead.Seal(dst, nonce[:], plaintext, ad), nil
}

func (c chachaPolyAEAD) Decrypt(dst, key []byte, n uint64, ad, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, newCryptoError("failed to initialize ChaChaPoly")
	}
	nonce := c.nonce(n)
	out, err := aead.Open(dst, nonce[:], ciphertext, ad)
	if err != nil {
		return nil, newCryptoError("ChaChaPoly authentication failed")
	}
	return out, nil
}
