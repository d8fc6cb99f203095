package noise

import (
	"hash"
	"io"
)

// AEAD is the pluggable authenticated-encryption capability. Noise
// fixes a 32-byte key, 12-byte nonce, and 16-byte tag for every
// supported AEAD; only the nonce encoding (§4.1) varies between them.
type AEAD interface {
	// Name is the protocol-name token, e.g. "AESGCM" or "ChaChaPoly".
	Name() string

	// Encrypt seals plaintext with key and the given 64-bit counter
	// nonce and associated data, appending ciphertext||tag to dst.
	Encrypt(dst, key []byte, n uint64, ad, plaintext []byte) ([]byte, error)

	// Decrypt opens ciphertext||tag with key and the given 64-bit
	// counter nonce and associated data, appending plaintext to dst.
	Decrypt(dst, key []byte, n uint64, ad, ciphertext []byte) ([]byte, error)
}

// DH is the pluggable Diffie-Hellman capability.
type DH interface {
	// Name is the protocol-name token, e.g. "25519" or "448".
	Name() string

	// DHLen is the fixed length, in bytes, of a public key, a private
	// key, and a shared secret for this DH function.
	DHLen() int

	// GenerateKeypair produces a fresh keypair, reading entropy from
	// random (crypto/rand.Reader is used when random is nil).
	GenerateKeypair(random io.Reader) (KeyPair, error)

	// DH computes the shared secret between a local private key and a
	// remote public key.
	DH(privkey, pubkey []byte) ([]byte, error)
}

// Hash is the pluggable hash capability. HKDF is derived generically
// from any Hash via hkdf.go; implementations need only provide the
// block-level primitive.
type Hash interface {
	// Name is the protocol-name token, e.g. "SHA256" or "BLAKE2b".
	Name() string

	// HashLen is the fixed output length, in bytes, of this hash.
	HashLen() int

	// BlockLen is the hash's internal block size, used by HMAC/HKDF.
	BlockLen() int

	// Sum returns HASH(data).
	Sum(data []byte) []byte

	// New returns a fresh streaming hash.Hash instance, used by the
	// HKDF helper's HMAC construction.
	New() hash.Hash
}

// CipherSuite bundles one AEAD, one DH, and one Hash capability for
// construction convenience only. It is never passed through the core
// state machines as a single value — HandshakeState, SymmetricState,
// and CipherState each hold their own AEAD/DH/Hash field, per the
// "three orthogonal axes" design note.
type CipherSuite struct {
	DH    DH
	AEAD  AEAD
	Hash  Hash
}

// Name returns the Noise primitive-identifier triple, e.g.
// "25519_ChaChaPoly_SHA256".
func (c CipherSuite) Name() string {
	return c.DH.Name() + "_" + c.AEAD.Name() + "_" + c.Hash.Name()
}
