package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymmetricState_InitializeSymmetric_ShortNamePadded(t *testing.T) {
	var ss symmetricState
	name := []byte("Noise_NN_25519_ChaChaPoly_SHA256")
	ss.initializeSymmetric(SHA256, ChaChaPoly, name)

	assert.Len(t, ss.h, SHA256.HashLen())
	assert.Equal(t, name, ss.h[:len(name)])
	assert.Equal(t, ss.h, ss.ck)
}

func TestSymmetricState_MixHash_ChangesTranscript(t *testing.T) {
	var ss symmetricState
	ss.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))
	before := append([]byte(nil), ss.h...)

	ss.mixHash([]byte("hello"))
	assert.NotEqual(t, before, ss.h)
}

func TestSymmetricState_MixKey_InitializesCipher(t *testing.T) {
	var ss symmetricState
	ss.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))
	assert.False(t, ss.cipher.HasKey())

	ss.mixKey([]byte("some shared secret"))
	assert.True(t, ss.cipher.HasKey())
}

func TestSymmetricState_EncryptAndHash_BeforeKeyIsPlaintext(t *testing.T) {
	var ss symmetricState
	ss.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))

	out, err := ss.encryptAndHash(nil, []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), out)
}

func TestSymmetricState_EncryptAndHash_CommitsToCiphertextNotPlaintext(t *testing.T) {
	newState := func() *symmetricState {
		ss := &symmetricState{}
		ss.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))
		ss.mixKey([]byte("shared secret"))
		return ss
	}

	a := newState()
	ctA, err := a.encryptAndHash(nil, []byte("same plaintext"))
	require.NoError(t, err)

	b := newState()
	ctB, err := b.encryptAndHash(nil, []byte("same plaintext"))
	require.NoError(t, err)

	// Same key, same plaintext, fresh nonce 0 each time: ciphertext is
	// deterministic, but the point is the transcript tracks it, not the
	// plaintext that produced it.
	assert.Equal(t, ctA, ctB)
	assert.Equal(t, a.h, b.h)

	hBefore := newState().h
	assert.Equal(t, SHA256.Sum(append(append([]byte(nil), hBefore...), ctA...)), a.h)
	assert.NotEqual(t, SHA256.Sum(append(append([]byte(nil), hBefore...), []byte("same plaintext")...)), a.h)
}

func TestSymmetricState_DecryptAndHash_RoundTrip(t *testing.T) {
	send := &symmetricState{}
	send.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))
	send.mixKey([]byte("shared"))

	recv := &symmetricState{}
	recv.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))
	recv.mixKey([]byte("shared"))

	ct, err := send.encryptAndHash(nil, []byte("payload"))
	require.NoError(t, err)

	pt, err := recv.decryptAndHash(nil, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), pt)
	assert.Equal(t, send.h, recv.h)
}

func TestSymmetricState_Split_ProducesIndependentCiphers(t *testing.T) {
	ss := &symmetricState{}
	ss.initializeSymmetric(SHA256, ChaChaPoly, []byte("Noise_NN_25519_ChaChaPoly_SHA256"))
	ss.mixKey([]byte("shared"))

	c1, c2 := ss.split()
	require.NotNil(t, c1)
	require.NotNil(t, c2)
	assert.True(t, c1.HasKey())
	assert.True(t, c2.HasKey())
	assert.NotEqual(t, c1.k, c2.k)
}
