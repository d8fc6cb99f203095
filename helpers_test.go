package noise

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// ctrReader is a deterministic io.Reader for tests that need reproducible
// ephemeral keypairs (e.g. comparing two independently driven handshakes
// byte-for-byte). It is never used outside _test.go files.
type ctrReader struct {
	b byte
}

func newCtrReader(seed byte) *ctrReader {
	return &ctrReader{b: seed}
}

func (r *ctrReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}
	return len(p), nil
}

func genStaticKeypair(t *testing.T) KeyPair {
	t.Helper()
	kp, err := DH25519.GenerateKeypair(nil)
	require.NoError(t, err)
	return kp
}

func genPSK(t *testing.T) []byte {
	t.Helper()
	psk := make([]byte, 32)
	_, err := rand.Read(psk)
	require.NoError(t, err)
	return psk
}

func mustLookup(t *testing.T, name string) HandshakePattern {
	t.Helper()
	p, err := LookupPattern(name)
	require.NoError(t, err)
	return p
}
