// Package noise implements the core of the Noise Protocol Framework
// (revision 33): symmetric-state/cipher-state key derivation, a
// declarative handshake-pattern state machine, the XXfallback recovery
// pattern, and a post-handshake transport supporting both in-order and
// out-of-order (explicit-nonce) delivery.
//
// A handshake is driven by constructing a HandshakeState for each side
// with NewHandshakeState and alternating WriteMessage/ReadMessage until
// both return a *Transport. See Config for how to select a handshake
// pattern and primitive set, and ParseProtocolName for building one
// from a canonical Noise protocol-name string.
package noise
