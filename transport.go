package noise

// Transport provides bidirectional (or, for one-way patterns, strictly
// one-directional) secure communication after a successful handshake,
// per spec.md §4.5. It is single-owner for each of send and recv, but
// the two directions are independent and may be driven concurrently by
// different goroutines.
type Transport struct {
	initiator        bool
	send             *CipherState
	recv             *CipherState
	maxMessageLength int
}

func (t *Transport) maxLen() int {
	if t.maxMessageLength > 0 {
		return t.maxMessageLength
	}
	return DefaultMaxMessageLength
}

// IsOneWay reports whether this transport supports only one direction,
// per spec.md "One-way vs two-way transports": exactly one of send or
// recv is nil.
func (t *Transport) IsOneWay() bool {
	return t.send == nil || t.recv == nil
}

// IsInitiator reports whether this Transport was produced by the
// handshake's initiator side.
func (t *Transport) IsInitiator() bool {
	return t.initiator
}

// Write encrypts plaintext in-order using the sequential send counter,
// appending ciphertext||tag to dst.
func (t *Transport) Write(dst []byte, plaintext []byte) ([]byte, error) {
	if t.send == nil {
		return nil, ErrTransportDirectionUnavailable
	}
	if len(plaintext)+aeadTagLen > t.maxLen() {
		return nil, ErrMessageTooLong
	}
	return t.send.EncryptWithAD(dst, nil, plaintext)
}

// Read decrypts ciphertext in-order using the sequential recv counter,
// appending plaintext to dst. Messages must arrive in the order they
// were sent; see WriteOutOfOrder/ReadOutOfOrder for reordered delivery.
func (t *Transport) Read(dst []byte, ciphertext []byte) ([]byte, error) {
	if t.recv == nil {
		return nil, ErrTransportDirectionUnavailable
	}
	return t.recv.DecryptWithAD(dst, nil, ciphertext)
}

// WriteOutOfOrder encrypts plaintext using the next sequential nonce
// (which is also returned) without requiring the caller to track the
// counter itself, per spec.md §4.5. The nonce must be conveyed to the
// peer alongside the ciphertext so ReadOutOfOrder can use it.
func (t *Transport) WriteOutOfOrder(dst []byte, plaintext []byte) (nonce uint64, ciphertext []byte, err error) {
	if t.send == nil {
		return 0, nil, ErrTransportDirectionUnavailable
	}
	if len(plaintext)+aeadTagLen > t.maxLen() {
		return 0, nil, ErrMessageTooLong
	}
	return t.send.ExplicitEncrypt(dst, nil, plaintext)
}

// ReadOutOfOrder decrypts ciphertext using the caller-supplied nonce,
// without advancing (or even consulting) the recv counter. Callers are
// responsible for any replay-window policy; this API will happily
// decrypt the same nonce more than once (spec.md §4.5, Non-goals).
func (t *Transport) ReadOutOfOrder(dst []byte, nonce uint64, ciphertext []byte) ([]byte, error) {
	if t.recv == nil {
		return nil, ErrTransportDirectionUnavailable
	}
	return t.recv.ExplicitDecrypt(dst, nonce, nil, ciphertext)
}

// Rekey performs Noise's optional rekey operation on the requested
// directions.
func (t *Transport) Rekey(sender, receiver bool) error {
	if sender && t.send != nil {
		if err := t.send.Rekey(); err != nil {
			return err
		}
	}
	if receiver && t.recv != nil {
		if err := t.recv.Rekey(); err != nil {
			return err
		}
	}
	return nil
}

// Dispose zeroes both cipher keys.
func (t *Transport) Dispose() {
	if t.send != nil {
		t.send.Dispose()
	}
	if t.recv != nil {
		t.recv.Dispose()
	}
}
