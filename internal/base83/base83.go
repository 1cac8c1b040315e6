// Package base83 implements the fixed-width base-83 numeral system used by
// blurhash strings.
//
// Numbers are written most-significant digit first, always using exactly
// the requested number of digits.  Digit lookup in both directions goes
// through static tables built at init.
package base83

import (
	"errors"
	"fmt"
)

// Alphabet lists the 83 symbols in digit order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

// Base is the radix of the numeral system.
const Base = 83

// MaxLength is the widest field the codec handles.  83^9 still fits in
// an int64.
const MaxLength = 9

var (
	// ErrUnexpectedEnd is returned when the input holds fewer symbols than
	// the requested digit count.
	ErrUnexpectedEnd = errors.New("base83: unexpected end of input")

	// ErrInvalidDigit is returned for a symbol outside the alphabet.
	ErrInvalidDigit = errors.New("base83: invalid digit")

	// ErrValueOutOfRange is returned when a value does not fit in the
	// requested number of digits.
	ErrValueOutOfRange = errors.New("base83: value out of range")
)

var (
	encodeTable [Base]byte
	decodeTable [256]int8 // -1 marks symbols outside the alphabet
	powers      [MaxLength + 1]int
)

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < Base; i++ {
		encodeTable[i] = Alphabet[i]
		decodeTable[Alphabet[i]] = int8(i)
	}
	powers[0] = 1
	for i := 1; i <= MaxLength; i++ {
		powers[i] = powers[i-1] * Base
	}
}

// EncodeChar returns the symbol for a digit value.  It panics if value is
// outside 0..82, like any out-of-bounds array access.
func EncodeChar(value int) byte {
	return encodeTable[value]
}

// DecodeChar returns the digit value of a symbol and whether the symbol
// belongs to the alphabet.
func DecodeChar(c byte) (int, bool) {
	v := decodeTable[c]
	if v < 0 {
		return 0, false
	}
	return int(v), true
}

// IsValid reports whether every byte of s is a base-83 symbol.
func IsValid(s string) bool {
	for i := 0; i < len(s); i++ {
		if decodeTable[s[i]] < 0 {
			return false
		}
	}
	return true
}

// EncodeNumber writes value as exactly length base-83 digits.
//
// The caller must keep 0 <= value < 83^length; anything else returns
// ErrValueOutOfRange rather than an overflowed leading digit.
func EncodeNumber(value, length int) (string, error) {
	buf, err := AppendNumber(make([]byte, 0, max(length, 0)), value, length)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// AppendNumber is EncodeNumber appending to dst.  On error dst is returned
// unchanged.
func AppendNumber(dst []byte, value, length int) ([]byte, error) {
	if length < 0 || length > MaxLength {
		return dst, fmt.Errorf("%w: length %d", ErrValueOutOfRange, length)
	}
	if value < 0 || value >= powers[length] {
		return dst, fmt.Errorf("%w: %d does not fit in %d digits", ErrValueOutOfRange, value, length)
	}
	for i := length; i > 0; i-- {
		divisor := powers[i-1]
		dst = append(dst, encodeTable[value/divisor])
		value %= divisor
	}
	return dst, nil
}

// DecodeNumber reads exactly length digits from the front of s and
// returns the value together with the unconsumed remainder.
func DecodeNumber(s string, length int) (int, string, error) {
	if length < 0 || length > MaxLength {
		return 0, s, fmt.Errorf("%w: length %d", ErrValueOutOfRange, length)
	}
	value := 0
	for i := 0; i < length; i++ {
		if i >= len(s) {
			return 0, s, fmt.Errorf("%w: need %d symbols, have %d", ErrUnexpectedEnd, length, len(s))
		}
		d := decodeTable[s[i]]
		if d < 0 {
			return 0, s, fmt.Errorf("%w: %q at offset %d", ErrInvalidDigit, s[i], i)
		}
		value = value*Base + int(d)
	}
	return value, s[length:], nil
}
