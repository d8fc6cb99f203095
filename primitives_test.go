package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDH25519_SharedSecretAgrees(t *testing.T) {
	alice, err := DH25519.GenerateKeypair(nil)
	require.NoError(t, err)
	bob, err := DH25519.GenerateKeypair(nil)
	require.NoError(t, err)

	secretA, err := DH25519.DH(alice.Private, bob.Public)
	require.NoError(t, err)
	secretB, err := DH25519.DH(bob.Private, alice.Public)
	require.NoError(t, err)
	assert.Equal(t, secretA, secretB)
	assert.Len(t, secretA, DH25519.DHLen())
}

func TestDH25519_RejectsAllZeroPublicKey(t *testing.T) {
	alice, err := DH25519.GenerateKeypair(nil)
	require.NoError(t, err)

	zero := make([]byte, DH25519.DHLen())
	_, err = DH25519.DH(alice.Private, zero)
	assert.ErrorIs(t, err, ErrCrypto)
}

func TestDH448_SharedSecretAgrees(t *testing.T) {
	alice, err := DH448.GenerateKeypair(nil)
	require.NoError(t, err)
	bob, err := DH448.GenerateKeypair(nil)
	require.NoError(t, err)

	secretA, err := DH448.DH(alice.Private, bob.Public)
	require.NoError(t, err)
	secretB, err := DH448.DH(bob.Private, alice.Public)
	require.NoError(t, err)
	assert.Equal(t, secretA, secretB)
	assert.Len(t, secretA, DH448.DHLen())
}

func TestAEAD_ChaChaPoly_RoundTrip(t *testing.T) {
	testAEADRoundTrip(t, ChaChaPoly)
}

func TestAEAD_AESGCM_RoundTrip(t *testing.T) {
	testAEADRoundTrip(t, AESGCM)
}

func testAEADRoundTrip(t *testing.T, a AEAD) {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	ad := []byte("header")
	pt := []byte("a secret payload for testing")

	ct, err := a.Encrypt(nil, key, 42, ad, pt)
	require.NoError(t, err)

	got, err := a.Decrypt(nil, key, 42, ad, ct)
	require.NoError(t, err)
	assert.Equal(t, pt, got)

	_, err = a.Decrypt(nil, key, 41, ad, ct)
	assert.Error(t, err)
}

func TestAEAD_NonceEncodingDiffersByCipher(t *testing.T) {
	// AESGCM puts the counter big-endian and ChaChaPoly little-endian
	// into the last 8 bytes of the 96-bit nonce (spec.md §4.1).
	assert.Equal(t, [12]byte{11: 1}, aesGCMAEAD{}.nonce(1))
	assert.Equal(t, [12]byte{4: 1}, chachaPolyAEAD{}.nonce(1))

	key := make([]byte, 32)
	// The two ciphers also produce different ciphertext for the same
	// key, counter and plaintext.
	ct1, err := AESGCM.Encrypt(nil, key, 1, nil, []byte("same plaintext"))
	require.NoError(t, err)
	ct2, err := ChaChaPoly.Encrypt(nil, key, 1, nil, []byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, ct1, ct2)
}

func TestHash_SumIsConsistentWithStreamingNew(t *testing.T) {
	for _, h := range []Hash{SHA256, SHA512, BLAKE2s, BLAKE2b} {
		sum := h.Sum([]byte("abc"))
		streamer := h.New()
		_, err := streamer.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, sum, streamer.Sum(nil), h.Name())
		assert.Len(t, sum, h.HashLen(), h.Name())
	}
}
