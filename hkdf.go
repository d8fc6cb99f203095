package noise

import (
	"io"

	"golang.org/x/crypto/hkdf"
)

// noiseHKDF implements the HKDF construction from the Noise spec
// (section 4.3): HKDF(chaining_key, input_key_material, num_outputs)
// with an empty info string, returning 1, 2, or 3 chaining_key-length
// outputs. It is built on golang.org/x/crypto/hkdf's Extract/Expand
// rather than the teacher's hand-rolled HMAC loop.
func noiseHKDF(h Hash, chainingKey, inputKeyMaterial []byte, numOutputs int) [][]byte {
	prk := hkdf.Extract(h.New, inputKeyMaterial, chainingKey)
	reader := hkdf.Expand(h.New, prk, nil)

	outputs := make([][]byte, numOutputs)
	for i := range outputs {
		out := make([]byte, h.HashLen())
		if _, err := io.ReadFull(reader, out); err != nil {
			panic("noise: HKDF expand failed: " + err.Error())
		}
		outputs[i] = out
	}
	return outputs
}
