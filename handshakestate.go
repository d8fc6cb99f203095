package noise

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Role identifies which side of a handshake a HandshakeState plays.
// For a party that has fallen back (see Fallback), the role used for
// turn-taking and pre-message interpretation can differ from the
// party's original network role; HandshakeState keeps only the role
// currently in effect, which Fallback flips.
type Role int

const (
	Initiator Role = iota
	Responder
)

const aeadTagLen = 16

// HandshakeState drives one Noise handshake to completion, per
// spec.md §3/§4.4. It is single-owner and not safe for concurrent use.
type HandshakeState struct {
	ss     symmetricState
	config Config

	role Role // mutable: the role used for turn/pre-message logic, flips on Fallback (spec.md's "perceived-initiator-role")

	turnToWrite bool
	e           KeyPair
	s           KeyPair
	re          []byte
	rs          []byte

	messages [][]Token
	cursor   int

	psks      [][]byte
	pskCursor int
	isPsk     bool
	isOneWay  bool

	done     bool
	failed   bool
	disposed bool

	messagesConsumed int // messages attempted (written or read, whether or not the read succeeded) across the lifetime of this state, including pre-fallback; used only by Fallback's eligibility check

	ephemeralRand io.Reader // test hook only; see setEphemeralSource
}

// NewHandshakeState constructs a HandshakeState for one side of a
// handshake described by config. s and rs may be zero-value when the
// pattern does not require them; providing one the pattern forbids, or
// omitting one it requires, is a construction error (spec.md §4.4).
func NewHandshakeState(config Config, role Role, prologue []byte, s KeyPair, rs []byte, psks [][]byte) (*HandshakeState, error) {
	if config.Modifiers&ModifierFallback != 0 {
		return nil, ErrForbiddenModifier
	}

	pattern, err := applyModifiers(config.Pattern, config.Modifiers)
	if err != nil {
		return nil, err
	}

	dhLen := config.DH.DHLen()
	if !s.IsZero() && (len(s.Private) != dhLen || len(s.Public) != dhLen) {
		return nil, ErrWrongKeySize
	}
	if len(rs) != 0 && len(rs) != dhLen {
		return nil, ErrWrongKeySize
	}

	needLocalS := patternRequiresLocalStatic(pattern, role)
	needRemoteS := patternRequiresRemoteStatic(pattern, role)
	if needLocalS && s.IsZero() {
		return nil, ErrMissingKey
	}
	if !needLocalS && !s.IsZero() {
		return nil, ErrSurplusKey
	}
	if needRemoteS && len(rs) == 0 {
		return nil, ErrMissingKey
	}
	if !needRemoteS && len(rs) != 0 {
		return nil, ErrSurplusKey
	}

	wantPsks := pskCount(config.Modifiers)
	if len(psks) != wantPsks {
		return nil, ErrPSKCountMismatch
	}
	for _, psk := range psks {
		if len(psk) != 32 {
			return nil, ErrInvalidPSKSize
		}
	}

	hs := &HandshakeState{
		config:      config,
		role:        role,
		turnToWrite: role == Initiator,
		s:           s,
		rs:          append([]byte(nil), rs...),
		messages:    pattern.Messages,
		psks:        append([][]byte(nil), psks...),
		isPsk:       wantPsks > 0,
		isOneWay:    len(pattern.Messages) == 1,
	}

	hs.ss.initializeSymmetric(config.Hash, config.AEAD, []byte(config.Name()))
	hs.ss.mixHash(prologue)
	hs.processPreMessages(pattern)

	return hs, nil
}

// setEphemeralSource overrides the source of entropy used to generate
// ephemeral keypairs. It exists only so tests can fix ephemerals and
// compare independently driven handshakes byte for byte; it is not part
// of the public API surface a library consumer should use.
func (hs *HandshakeState) setEphemeralSource(r io.Reader) {
	hs.ephemeralRand = r
}

func (hs *HandshakeState) randSource() io.Reader {
	if hs.ephemeralRand != nil {
		return hs.ephemeralRand
	}
	return rand.Reader
}

func (hs *HandshakeState) processPreMessages(pattern HandshakePattern) {
	for _, t := range pattern.InitiatorPreMessages {
		switch {
		case hs.role == Initiator && t == TokenS:
			hs.ss.mixHash(hs.s.Public)
		case hs.role == Initiator && t == TokenE:
			hs.ss.mixHash(hs.e.Public)
		case hs.role == Responder && t == TokenS:
			hs.ss.mixHash(hs.rs)
		case hs.role == Responder && t == TokenE:
			hs.ss.mixHash(hs.re)
		}
	}
	for _, t := range pattern.ResponderPreMessages {
		switch {
		case hs.role == Responder && t == TokenS:
			hs.ss.mixHash(hs.s.Public)
		case hs.role == Responder && t == TokenE:
			hs.ss.mixHash(hs.e.Public)
		case hs.role == Initiator && t == TokenS:
			hs.ss.mixHash(hs.rs)
		case hs.role == Initiator && t == TokenE:
			hs.ss.mixHash(hs.re)
		}
	}
}

// patternRequiresLocalStatic reports whether role must supply a local
// static keypair for pattern: either it is pre-known to the peer, or
// it is transmitted in one of role's own messages.
func patternRequiresLocalStatic(pattern HandshakePattern, role Role) bool {
	pre := pattern.InitiatorPreMessages
	if role == Responder {
		pre = pattern.ResponderPreMessages
	}
	for _, t := range pre {
		if t == TokenS {
			return true
		}
	}
	for i, m := range pattern.Messages {
		sender := Initiator
		if i%2 == 1 {
			sender = Responder
		}
		if sender != role {
			continue
		}
		for _, t := range m {
			if t == TokenS {
				return true
			}
		}
	}
	return false
}

// patternRequiresRemoteStatic reports whether role must already know
// the peer's static public key before the handshake begins.
func patternRequiresRemoteStatic(pattern HandshakePattern, role Role) bool {
	pre := pattern.ResponderPreMessages
	if role == Responder {
		pre = pattern.InitiatorPreMessages
	}
	for _, t := range pre {
		if t == TokenS {
			return true
		}
	}
	return false
}

// messageOverhead computes the number of wire bytes that tokens alone
// will contribute (excluding the trailing payload), and reports the
// has-key state that will hold once tokens have been processed. Per
// spec.md §4.4, the has-key state and isPsk together determine this:
// when isPsk is set, processing E also does mix_key(e.public) and so
// activates the cipher immediately, same as writeToken/readToken.
func messageOverhead(dhLen int, tokens []Token, hasKeyAtStart, isPsk bool) (overhead int, hasKeyAfter bool) {
	hasKey := hasKeyAtStart
	for _, t := range tokens {
		switch t {
		case TokenE:
			overhead += dhLen
			if isPsk {
				hasKey = true
			}
		case TokenS:
			overhead += dhLen
			if hasKey {
				overhead += aeadTagLen
			}
		case TokenEE, TokenES, TokenSE, TokenSS, TokenPSK:
			hasKey = true
		}
	}
	return overhead, hasKey
}

// IsInitiator reports the turn-taking role currently in effect (which,
// after a Fallback, may differ from the network role this side started
// with).
func (hs *HandshakeState) IsInitiator() bool {
	return hs.role == Initiator
}

// ChannelBinding returns the current transcript hash h, usable for
// channel binding once the handshake has completed (or, for debugging,
// at any earlier point).
func (hs *HandshakeState) ChannelBinding() []byte {
	return append([]byte(nil), hs.ss.handshakeHash()...)
}

// RemoteStatic returns the remote party's static public key, once
// learned.
func (hs *HandshakeState) RemoteStatic() []byte {
	return hs.rs
}

func (hs *HandshakeState) checkUsable() error {
	if hs.disposed {
		return ErrDisposed
	}
	if hs.failed {
		return ErrHandshakeDead
	}
	if hs.done {
		return ErrHandshakeComplete
	}
	return nil
}

// WriteMessage produces the next handshake message, appending it to
// dst, and encrypts payload into it. If this call completes the
// pattern, a non-nil Transport is returned.
func (hs *HandshakeState) WriteMessage(dst []byte, payload Segments) ([]byte, *Transport, error) {
	if err := hs.checkUsable(); err != nil {
		return nil, nil, err
	}
	if !hs.turnToWrite {
		return nil, nil, ErrOutOfTurn
	}

	tokens := hs.messages[hs.cursor]
	dhLen := hs.config.DH.DHLen()
	overhead, hasKeyAfterTokens := messageOverhead(dhLen, tokens, hs.ss.cipher.HasKey(), hs.isPsk)
	payloadLen := payload.Len()

	total := overhead + payloadLen
	if hasKeyAfterTokens {
		total += aeadTagLen
	}
	if total > hs.config.maxMessageLength() {
		return nil, nil, ErrMessageTooLong
	}

	hs.messagesConsumed = hs.cursor + 1

	out := dst
	var stage [256]byte

	for _, t := range tokens {
		var err error
		out, err = hs.writeToken(out, t)
		if err != nil {
			hs.failed = true
			return nil, nil, err
		}
	}

	pt := payload.Bytes(stage[:0])
	var err error
	out, err = hs.ss.encryptAndHash(out, pt)
	if err != nil {
		hs.failed = true
		return nil, nil, err
	}

	hs.turnToWrite = false
	hs.cursor++

	if hs.cursor >= len(hs.messages) {
		hs.done = true
		transport := hs.split()
		return out, transport, nil
	}
	return out, nil, nil
}

func (hs *HandshakeState) writeToken(out []byte, t Token) ([]byte, error) {
	switch t {
	case TokenE:
		if hs.e.IsZero() {
			kp, err := hs.config.DH.GenerateKeypair(hs.randSource())
			if err != nil {
				return nil, err
			}
			hs.e = kp
		}
		out = append(out, hs.e.Public...)
		hs.ss.mixHash(hs.e.Public)
		if hs.isPsk {
			hs.ss.mixKey(hs.e.Public)
		}
		return out, nil
	case TokenS:
		if hs.s.IsZero() {
			return nil, ErrMissingKey
		}
		return hs.ss.encryptAndHash(out, hs.s.Public)
	case TokenEE:
		secret, err := hs.config.DH.DH(hs.e.Private, hs.re)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return out, nil
	case TokenES:
		var priv, pub []byte
		if hs.role == Initiator {
			priv, pub = hs.e.Private, hs.rs
		} else {
			priv, pub = hs.s.Private, hs.re
		}
		secret, err := hs.config.DH.DH(priv, pub)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return out, nil
	case TokenSE:
		var priv, pub []byte
		if hs.role == Initiator {
			priv, pub = hs.s.Private, hs.re
		} else {
			priv, pub = hs.e.Private, hs.rs
		}
		secret, err := hs.config.DH.DH(priv, pub)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return out, nil
	case TokenSS:
		secret, err := hs.config.DH.DH(hs.s.Private, hs.rs)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return out, nil
	case TokenPSK:
		if hs.pskCursor >= len(hs.psks) {
			return nil, ErrPSKCountMismatch
		}
		psk := hs.psks[hs.pskCursor]
		hs.pskCursor++
		hs.ss.mixKeyAndHash(psk)
		wipe(psk)
		return out, nil
	default:
		return nil, fmt.Errorf("noise: unsupported token %d", t)
	}
}

// ReadMessage processes an incoming handshake message, appending the
// decrypted payload to dst. If this call completes the pattern, a
// non-nil Transport is returned.
func (hs *HandshakeState) ReadMessage(dst []byte, message []byte) ([]byte, *Transport, error) {
	if err := hs.checkUsable(); err != nil {
		return nil, nil, err
	}
	if hs.turnToWrite {
		return nil, nil, ErrOutOfTurn
	}
	if len(message) > hs.config.maxMessageLength() {
		return nil, nil, ErrMessageTooLong
	}

	tokens := hs.messages[hs.cursor]
	dhLen := hs.config.DH.DHLen()
	overhead, _ := messageOverhead(dhLen, tokens, hs.ss.cipher.HasKey(), hs.isPsk)
	if len(message) < overhead {
		return nil, nil, ErrMessageTooShort
	}

	hs.messagesConsumed = hs.cursor + 1

	rest := message
	for _, t := range tokens {
		var err error
		rest, err = hs.readToken(rest, t)
		if err != nil {
			hs.failed = true
			return nil, nil, err
		}
	}

	out, err := hs.ss.decryptAndHash(dst, rest)
	if err != nil {
		hs.failed = true
		return nil, nil, err
	}

	hs.turnToWrite = true
	hs.cursor++

	if hs.cursor >= len(hs.messages) {
		hs.done = true
		transport := hs.split()
		return out, transport, nil
	}
	return out, nil, nil
}

func (hs *HandshakeState) readToken(message []byte, t Token) ([]byte, error) {
	dhLen := hs.config.DH.DHLen()
	switch t {
	case TokenE:
		if len(message) < dhLen {
			return nil, ErrMessageTooShort
		}
		hs.re = append([]byte(nil), message[:dhLen]...)
		hs.ss.mixHash(hs.re)
		if hs.isPsk {
			hs.ss.mixKey(hs.re)
		}
		return message[dhLen:], nil
	case TokenS:
		want := dhLen
		if hs.ss.cipher.HasKey() {
			want += aeadTagLen
		}
		if len(message) < want {
			return nil, ErrMessageTooShort
		}
		rs, err := hs.ss.decryptAndHash(nil, message[:want])
		if err != nil {
			return nil, err
		}
		hs.rs = rs
		return message[want:], nil
	case TokenEE:
		secret, err := hs.config.DH.DH(hs.e.Private, hs.re)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return message, nil
	case TokenES:
		var priv, pub []byte
		if hs.role == Initiator {
			priv, pub = hs.e.Private, hs.rs
		} else {
			priv, pub = hs.s.Private, hs.re
		}
		secret, err := hs.config.DH.DH(priv, pub)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return message, nil
	case TokenSE:
		var priv, pub []byte
		if hs.role == Initiator {
			priv, pub = hs.s.Private, hs.re
		} else {
			priv, pub = hs.e.Private, hs.rs
		}
		secret, err := hs.config.DH.DH(priv, pub)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return message, nil
	case TokenSS:
		secret, err := hs.config.DH.DH(hs.s.Private, hs.rs)
		if err != nil {
			return nil, err
		}
		hs.ss.mixKey(secret)
		return message, nil
	case TokenPSK:
		if hs.pskCursor >= len(hs.psks) {
			return nil, ErrPSKCountMismatch
		}
		psk := hs.psks[hs.pskCursor]
		hs.pskCursor++
		hs.ss.mixKeyAndHash(psk)
		wipe(psk)
		return message, nil
	default:
		return nil, fmt.Errorf("noise: unsupported token %d", t)
	}
}

func (hs *HandshakeState) split() *Transport {
	c1, c2 := hs.ss.split()
	t := &Transport{initiator: hs.role == Initiator, maxMessageLength: hs.config.MaxMessageLength}
	switch hs.role {
	case Initiator:
		t.send, t.recv = c1, c2
	case Responder:
		t.send, t.recv = c2, c1
	}
	if hs.isOneWay {
		if hs.role == Initiator {
			t.recv.Dispose()
			t.recv = nil
		} else {
			t.send.Dispose()
			t.send = nil
		}
	}
	return t
}

// Dispose zeroes all sensitive material held by the handshake: the
// local static and ephemeral private keys and any un-consumed PSKs.
func (hs *HandshakeState) Dispose() {
	hs.e.Dispose()
	hs.s.Dispose()
	for _, psk := range hs.psks {
		wipe(psk)
	}
	hs.psks = nil
	if hs.ss.cipher != nil {
		hs.ss.cipher.Dispose()
	}
	hs.disposed = true
}
