package noise

// symmetricState tracks the running transcript hash h, chaining key
// ck, and an inner CipherState, per spec.md §4.2. It is embedded in
// HandshakeState and never exposed directly.
type symmetricState struct {
	hash   Hash
	cipher *CipherState
	ck     []byte
	h      []byte
	hasPSK bool
}

// initializeSymmetric seeds ck and h from the protocol name, per
// spec.md §3: if the name fits in HASHLEN bytes it is zero-padded,
// otherwise it is hashed.
func (s *symmetricState) initializeSymmetric(h Hash, aead AEAD, protocolName []byte) {
	s.hash = h
	s.cipher = newCipherState(aead)

	hashLen := h.HashLen()
	if len(protocolName) <= hashLen {
		s.h = make([]byte, hashLen)
		copy(s.h, protocolName)
	} else {
		s.h = h.Sum(protocolName)
	}
	s.ck = make([]byte, hashLen)
	copy(s.ck, s.h)
}

// mixKey derives a new chaining key and cipher key from input via
// HKDF-2 and reinitializes the cipher with the truncated key.
func (s *symmetricState) mixKey(input []byte) {
	outputs := noiseHKDF(s.hash, s.ck, input, 2)
	s.ck = outputs[0]
	s.cipher.InitializeKey(outputs[1][:32])
}

// mixHash folds data into the running transcript hash.
func (s *symmetricState) mixHash(data []byte) {
	s.h = s.hash.Sum(append(append([]byte(nil), s.h...), data...))
}

// mixKeyAndHash derives ck, a transcript update, and a cipher key from
// input via HKDF-3, per spec.md §4.2.
func (s *symmetricState) mixKeyAndHash(input []byte) {
	outputs := noiseHKDF(s.hash, s.ck, input, 3)
	s.ck = outputs[0]
	s.mixHash(outputs[1])
	s.cipher.InitializeKey(outputs[2][:32])
}

// handshakeHash returns h, the channel-binding value.
func (s *symmetricState) handshakeHash() []byte {
	return s.h
}

// encryptAndHash encrypts plaintext under h as associated data and
// folds the ciphertext into the transcript. The transcript commits to
// the ciphertext, not the plaintext (spec.md §4.2 note).
func (s *symmetricState) encryptAndHash(dst []byte, plaintext []byte) ([]byte, error) {
	before := len(dst)
	out, err := s.cipher.EncryptWithAD(dst, s.h, plaintext)
	if err != nil {
		return nil, err
	}
	s.mixHash(out[before:])
	return out, nil
}

// decryptAndHash mirrors encryptAndHash.
func (s *symmetricState) decryptAndHash(dst []byte, ciphertext []byte) ([]byte, error) {
	out, err := s.cipher.DecryptWithAD(dst, s.h, ciphertext)
	if err != nil {
		return nil, err
	}
	s.mixHash(ciphertext)
	return out, nil
}

// split derives two fresh cipher states from the final chaining key.
func (s *symmetricState) split() (c1, c2 *CipherState) {
	outputs := noiseHKDF(s.hash, s.ck, nil, 2)
	c1 = newCipherState(s.cipher.aead)
	c1.InitializeKey(outputs[0][:32])
	c2 = newCipherState(s.cipher.aead)
	c2.InitializeKey(outputs[1][:32])
	return c1, c2
}
