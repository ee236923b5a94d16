// Package encoding provides low-level, dependency-free ID encoding shared
// by the shard writer and streaming symbol index.
//
// Base-63 alphabet: A-Z (0-25), a-z (26-51), 0-9 (52-61), _ (62). This gives
// ~11-character encodings for a full uint64 versus 16 hex digits, which
// matters for the token-frugal TOON and symbol_index.jsonl formats.
package encoding

import "errors"

const (
	base63    = 63
	alphabet63 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
)

var (
	ErrEmptyString = errors.New("encoding: empty encoded string")
	ErrInvalidChar = errors.New("encoding: invalid character in encoded string")
	ErrOverflow    = errors.New("encoding: decoded value overflow")
)

// Base63Encode encodes a uint64 to a base-63 string. Zero encodes as "A".
func Base63Encode(value uint64) string {
	if value == 0 {
		return "A"
	}

	var buf [11]byte
	pos := len(buf)
	for value > 0 {
		pos--
		buf[pos] = alphabet63[value%base63]
		value /= base63
	}
	return string(buf[pos:])
}

// Base63Decode decodes a base-63 string to a uint64.
func Base63Decode(encoded string) (uint64, error) {
	if encoded == "" {
		return 0, ErrEmptyString
	}

	var value uint64
	for _, c := range encoded {
		charVal, err := base63CharToValue(c)
		if err != nil {
			return 0, err
		}
		if value > (^uint64(0))/base63 {
			return 0, ErrOverflow
		}
		value = value*base63 + charVal
	}
	return value, nil
}

func base63CharToValue(c rune) (uint64, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return uint64(c - 'A'), nil
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 26, nil
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 52, nil
	case c == '_':
		return 62, nil
	default:
		return 0, ErrInvalidChar
	}
}

// Base63IsValid reports whether encoded consists only of base-63 alphabet
// characters.
func Base63IsValid(encoded string) bool {
	if encoded == "" {
		return false
	}
	for _, c := range encoded {
		if _, err := base63CharToValue(c); err != nil {
			return false
		}
	}
	return true
}
