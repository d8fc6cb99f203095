package noise

// maxNonce is the nonce value that may never be used for encryption:
// the Noise spec reserves 2^64-1 as a sentinel for "no more messages
// may be sent," so n must always stay below it.
const maxNonce = ^uint64(0)

// CipherState is a one-shot AEAD keyed with a monotonically increasing
// 64-bit counter nonce, per spec.md §4.1. It is single-owner and not
// safe for concurrent use.
type CipherState struct {
	aead     AEAD
	k        [32]byte
	hasK     bool
	n        uint64
	disposed bool
}

func newCipherState(aead AEAD) *CipherState {
	return &CipherState{aead: aead}
}

// HasKey reports whether a key has been installed.
func (c *CipherState) HasKey() bool {
	return c.hasK
}

// InitializeKey installs k and resets the nonce to zero.
func (c *CipherState) InitializeKey(k []byte) {
	copy(c.k[:], k)
	c.hasK = true
	c.n = 0
}

// SetNonce overwrites the internal counter. Used by rekeying and test
// harnesses that need to reproduce fixed-nonce vectors.
func (c *CipherState) SetNonce(n uint64) {
	c.n = n
}

// Nonce returns the counter that the next in-order Encrypt/Decrypt
// call will use.
func (c *CipherState) Nonce() uint64 {
	return c.n
}

// EncryptWithAD encrypts plaintext in-order, appending ciphertext to
// dst. If no key has been installed, the plaintext is passed through
// unchanged and ad is ignored, per spec.md §4.1.
func (c *CipherState) EncryptWithAD(dst, ad, plaintext []byte) ([]byte, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	if !c.hasK {
		return append(dst, plaintext...), nil
	}
	if c.n >= maxNonce {
		return nil, newCryptoError("nonce exhausted")
	}
	out, err := c.aead.Encrypt(dst, c.k[:], c.n, ad, plaintext)
	if err != nil {
		return nil, err
	}
	c.n++
	return out, nil
}

// DecryptWithAD decrypts ciphertext in-order, appending plaintext to
// dst. On tag failure the counter is not advanced.
func (c *CipherState) DecryptWithAD(dst, ad, ciphertext []byte) ([]byte, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	if !c.hasK {
		return append(dst, ciphertext...), nil
	}
	if c.n >= maxNonce {
		return nil, newCryptoError("nonce exhausted")
	}
	out, err := c.aead.Decrypt(dst, c.k[:], c.n, ad, ciphertext)
	if err != nil {
		return nil, err
	}
	c.n++
	return out, nil
}

// ExplicitEncrypt encrypts plaintext using the current counter without
// requiring the caller to track it, returning the nonce that was used.
// It is the out-of-order producer primitive (spec.md §4.1/§4.5): the
// counter still advances exactly as in-order Encrypt does, so a
// producer that never calls the in-order API still gets sequential
// nonces for free.
func (c *CipherState) ExplicitEncrypt(dst, ad, plaintext []byte) (nonceUsed uint64, ciphertext []byte, err error) {
	if c.disposed {
		return 0, nil, ErrDisposed
	}
	n := c.n
	out, err := c.EncryptWithAD(dst, ad, plaintext)
	if err != nil {
		return 0, nil, err
	}
	return n, out, nil
}

// ExplicitDecrypt decrypts ciphertext using the caller-supplied nonce
// n, without touching the internal counter. It is the out-of-order
// consumer primitive: the caller is responsible for any replay-window
// policy (spec.md §4.5, Non-goals).
func (c *CipherState) ExplicitDecrypt(dst []byte, n uint64, ad, ciphertext []byte) ([]byte, error) {
	if c.disposed {
		return nil, ErrDisposed
	}
	if !c.hasK {
		return append(dst, ciphertext...), nil
	}
	out, err := c.aead.Decrypt(dst, c.k[:], n, ad, ciphertext)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Rekey replaces k with ENCRYPT(k, maxnonce, zerolen, zeros) truncated
// to 32 bytes, where zeros is 32 zero bytes of plaintext and the
// associated data is empty: Noise's optional rekey operation
// (spec.md §4.5/§9).
func (c *CipherState) Rekey() error {
	if c.disposed {
		return ErrDisposed
	}
	if !c.hasK {
		return nil
	}
	newKey, err := c.aead.Encrypt(nil, c.k[:], maxNonce, nil, make([]byte, 32))
	if err != nil {
		return err
	}
	copy(c.k[:], newKey[:32])
	return nil
}

// Dispose zeroes the cipher key.
func (c *CipherState) Dispose() {
	wipe(c.k[:])
	c.hasK = false
	c.disposed = true
}
