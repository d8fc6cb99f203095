package noise

import (
	"fmt"
	"strings"
)

// DefaultMaxMessageLength is the Noise spec's fixed 65535-byte message
// limit. It is the default for Config.MaxMessageLength, which remains
// caller-configurable per spec.md §9 "MaxMessageLength constancy".
const DefaultMaxMessageLength = 65535

// Config fully describes a Noise protocol instance: the handshake
// pattern, any modifiers, and the three orthogonal primitive
// capabilities. A Config is immutable once built and may be reused to
// start any number of handshakes.
type Config struct {
	Pattern   HandshakePattern
	Modifiers Modifier
	DH        DH
	AEAD      AEAD
	Hash      Hash

	// MaxMessageLength overrides DefaultMaxMessageLength when non-zero.
	MaxMessageLength int
}

func (c Config) maxMessageLength() int {
	if c.MaxMessageLength > 0 {
		return c.MaxMessageLength
	}
	return DefaultMaxMessageLength
}

// Name produces the canonical Noise protocol-name string (spec.md §6),
// e.g. "Noise_IKpsk2_25519_AESGCM_BLAKE2b".
func (c Config) Name() string {
	var mod strings.Builder
	if c.Modifiers&ModifierFallback != 0 {
		mod.WriteString("fallback")
	}
	for i, bit := range pskModifierBits {
		if c.Modifiers&bit != 0 {
			fmt.Fprintf(&mod, "psk%d", i)
		}
	}
	return "Noise_" + c.Pattern.Name + mod.String() + "_" + c.DH.Name() + "_" + c.AEAD.Name() + "_" + c.Hash.Name()
}

var dhByName = map[string]DH{
	DH25519.Name(): DH25519,
	DH448.Name():   DH448,
}

var aeadByName = map[string]AEAD{
	AESGCM.Name():     AESGCM,
	ChaChaPoly.Name(): ChaChaPoly,
}

var hashByName = map[string]Hash{
	SHA256.Name():  SHA256,
	SHA512.Name():  SHA512,
	BLAKE2s.Name(): BLAKE2s,
	BLAKE2b.Name(): BLAKE2b,
}

// ParseProtocolName parses a canonical protocol-name string, e.g.
// "Noise_XXpsk0_25519_ChaChaPoly_SHA256", into a Config. This is a
// convenience: the core itself never needs to parse the name at
// runtime (spec.md §6).
func ParseProtocolName(name string) (Config, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 5 || parts[0] != "Noise" {
		return Config{}, ErrInvalidProtocolName
	}

	patternAndMods := parts[1]
	baseName, mods, err := splitPatternModifiers(patternAndMods)
	if err != nil {
		return Config{}, err
	}
	base, err := LookupPattern(baseName)
	if err != nil {
		return Config{}, err
	}
	pattern, err := applyModifiers(base, mods)
	if err != nil {
		return Config{}, err
	}

	dh, ok := dhByName[parts[2]]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown DH %q", ErrInvalidProtocolName, parts[2])
	}
	aead, ok := aeadByName[parts[3]]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown AEAD %q", ErrInvalidProtocolName, parts[3])
	}
	hash, ok := hashByName[parts[4]]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown hash %q", ErrInvalidProtocolName, parts[4])
	}

	return Config{
		Pattern:   pattern,
		Modifiers: mods,
		DH:        dh,
		AEAD:      aead,
		Hash:      hash,
	}, nil
}

// splitPatternModifiers splits "XXpsk0" into base name "XX" and
// Modifier bits, or "XXfallback" into "XX" with ModifierFallback set.
func splitPatternModifiers(s string) (string, Modifier, error) {
	// The longest registered base name that prefixes s wins, so "X"
	// doesn't shadow a longer base sharing the prefix such as "XX".
	var longest string
	for name := range patterns {
		base := name
		if base == "XXfallback" {
			base = "XX"
		}
		if strings.HasPrefix(s, base) && len(base) > len(longest) {
			longest = base
		}
	}
	if longest == "" {
		return "", 0, fmt.Errorf("%w: unrecognized pattern in %q", ErrInvalidProtocolName, s)
	}
	suffix := s[len(longest):]
	var mods Modifier
	switch {
	case suffix == "":
	case suffix == "fallback":
		mods |= ModifierFallback
	default:
		for len(suffix) > 0 {
			if !strings.HasPrefix(suffix, "psk") || len(suffix) < 4 {
				return "", 0, fmt.Errorf("%w: unrecognized modifier in %q", ErrInvalidProtocolName, s)
			}
			switch suffix[3] {
			case '0':
				mods |= ModifierPsk0
			case '1':
				mods |= ModifierPsk1
			case '2':
				mods |= ModifierPsk2
			case '3':
				mods |= ModifierPsk3
			default:
				return "", 0, fmt.Errorf("%w: unrecognized PSK index in %q", ErrInvalidProtocolName, s)
			}
			suffix = suffix[4:]
		}
	}
	return longest, mods, nil
}
