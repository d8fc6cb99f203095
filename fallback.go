package noise

// FallbackConfig supplies the material needed to re-enter a handshake
// via Fallback: a (possibly new) prologue and a freshly supplied local
// static keypair, since the pattern being fallen back to (XXfallback)
// may require a static keypair that the original pattern did not
// (spec.md §4.4 "regenerate the local static keypair from config").
type FallbackConfig struct {
	Prologue      []byte
	StaticKeypair KeyPair
}

// Fallback aborts the current handshake and re-enters it using the
// XXfallback pattern, per spec.md §4.4. It is valid only when:
//   - newProtocol's pattern is XX with the Fallback modifier set, and
//   - exactly one message pattern of the original handshake has been
//     consumed so far (attempted, whether or not a ReadMessage of it
//     succeeded).
//
// Every pattern in this package's registry is initiator-originated
// (message 0 is always sent by the Initiator), so that requirement from
// spec.md §4.4 holds automatically for any handshake this package can
// construct; it is not checked per-instance, since either side of the
// same handshake is equally eligible to call its own Fallback once the
// first message has been exchanged.
//
// On success hs is mutated in place to reflect the new pattern; the
// caller resumes calling WriteMessage/ReadMessage as normal.
func (hs *HandshakeState) Fallback(newProtocol Config, cfg FallbackConfig) error {
	if newProtocol.Pattern.Name != "XX" || newProtocol.Modifiers&ModifierFallback == 0 {
		return ErrFallbackNotEligible
	}
	if hs.messagesConsumed != 1 {
		return ErrFallbackNotEligible
	}

	pattern, err := LookupPattern("XXfallback")
	if err != nil {
		return err
	}

	var retainedEphemeralPublic []byte
	switch hs.role {
	case Initiator:
		// The original initiator retains its own ephemeral keypair in
		// full; it becomes the new pattern's responder.
		retainedEphemeralPublic = hs.e.Public
		hs.re = nil
		hs.role = Responder
	case Responder:
		// The original responder retains only the peer's ephemeral
		// public key; it becomes the new pattern's initiator and will
		// generate a fresh local ephemeral when it processes the
		// first "e" token.
		retainedEphemeralPublic = hs.re
		hs.e.Dispose()
		hs.role = Initiator
	}

	for _, psk := range hs.psks {
		wipe(psk)
	}
	hs.psks = nil
	hs.pskCursor = 0
	hs.isPsk = false

	hs.s.Dispose()
	hs.s = cfg.StaticKeypair

	hs.config = newProtocol
	hs.ss = symmetricState{}
	hs.ss.initializeSymmetric(newProtocol.Hash, newProtocol.AEAD, []byte(newProtocol.Name()))
	hs.ss.mixHash(cfg.Prologue)
	hs.ss.mixHash(retainedEphemeralPublic)

	// The registry writes XXfallback from the original initiator's side;
	// roles are now swapped, so ES and SE are exchanged to pair the same keys.
	hs.messages = make([][]Token, len(pattern.Messages))
	for i, m := range pattern.Messages {
		swapped := make([]Token, len(m))
		for j, t := range m {
			switch t {
			case TokenES:
				t = TokenSE
			case TokenSE:
				t = TokenES
			}
			swapped[j] = t
		}
		hs.messages[i] = swapped
	}
	hs.cursor = 0
	hs.turnToWrite = hs.role == Initiator
	hs.isOneWay = len(pattern.Messages) == 1
	hs.done = false
	hs.failed = false

	return nil
}
