package noise

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// aesGCMAEAD implements the AESGCM AEAD capability: 4 zero bytes
// followed by a big-endian 64-bit counter nonce, per spec.md §4.1. This
// differs from ChaChaPoly's little-endian encoding and is normative.
type aesGCMAEAD struct{}

// AESGCM is the Noise "AESGCM" AEAD capability.
var AESGCM AEAD = aesGCMAEAD{}

func (aesGCMAEAD) Name() string { return "AESGCM" }

const aesGCMNonceSize = 12

func (aesGCMAEAD) nonce(n uint64) [aesGCMNonceSize]byte {
	var nonce [aesGCMNonceSize]byte
	binary.BigEndian.PutUint64(nonce[4:], n)
	return nonce
}

func (a aesGCMAEAD) gcm(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newCryptoError("failed to initialize AES")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, newCryptoError("failed to initialize AES-GCM")
	}
	return gcm, nil
}

func (a aesGCMAEAD) Encrypt(dst, key []byte, n uint64, ad, plaintext []byte) ([]byte, error) {
	gcm, err := a.gcm(key)
	if err != nil {
		return nil, err
	}
	nonce := a.nonce(n)
	return gcm.Seal(dst, nonce[:], plaintext, ad), nil
}

func (a aesGCMAEAD) Decrypt(dst, key []byte, n uint64, ad, ciphertext []byte) ([]byte, error) {
	gcm, err := a.gcm(key)
	if err != nil {
		return nil, err
	}
	nonce := a.nonce(n)
	out, err := gcm.Open(dst, nonce[:], ciphertext, ad)
	if err != nil {
		return nil, newCryptoError("AES-GCM authentication failed")
	}
	return out, nil
}
