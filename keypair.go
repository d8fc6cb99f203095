package noise

// KeyPair is a DH keypair. Private is sensitive: Dispose zeroes it.
type KeyPair struct {
	Private []byte
	Public  []byte
}

// IsZero reports whether the keypair holds no material.
func (k KeyPair) IsZero() bool {
	return len(k.Private) == 0 && len(k.Public) == 0
}

// Dispose zeroes the private key bytes and clears both fields, leaving
// the keypair IsZero. Public key bytes are not sensitive; they are
// dropped here only so a disposed KeyPair reads as empty, not wiped.
func (k *KeyPair) Dispose() {
	wipe(k.Private)
	k.Private = nil
	k.Public = nil
}
