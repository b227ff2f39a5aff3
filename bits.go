package dawg

import (
	"strings"

	"github.com/pkg/errors"
)

// Alphabet is the fixed set of printable characters a packed DAWG's labels
// and reference numbers are drawn from. It is URL-safe (no '/', '+', or
// whitespace) so a packed string can be embedded directly in a query string
// or a source file literal.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Reserved characters. None of them appear in Alphabet, so a scanner can
// tell a label/digit byte apart from structural punctuation with a single
// comparison.
const (
	nodeSeparator  = ','
	terminalMark   = '$'
	refIntroducer  = '#'
	valueSeparator = '~'
)

const alphabetSize = len(Alphabet)

// Each symbol carries a continuation bit plus 5 payload bits, so a run of
// digits is self-terminating: the last digit of a number is always the one
// whose continuation bit is clear. This generalizes the teacher package's
// bitWriter/bitSeeker pair (bits.go) and its 7-bit varint scheme in
// dawg-dict/disk.go's readUnsigned/writeUnsigned from single continuation
// bits packed into bytes to continuation bits packed into printable base-64
// symbols, so numbers packed back to back with labels never need an extra
// delimiter character.
const (
	digitContBit = 1 << 5 // 0x20
	digitPayload = digitContBit - 1
)

var alphabetIndex [256]int8

func init() {
	for i := range alphabetIndex {
		alphabetIndex[i] = -1
	}
	for i := 0; i < alphabetSize; i++ {
		alphabetIndex[Alphabet[i]] = int8(i)
	}
}

// ValidateWord reports ErrInvalidInput if word contains a character outside
// Alphabet, including any of the reserved structural characters.
func ValidateWord(word string) error {
	for i := 0; i < len(word); i++ {
		if alphabetIndex[word[i]] < 0 {
			return errors.Wrapf(ErrInvalidInput, "character %q at offset %d of %q", word[i], i, word)
		}
	}
	return nil
}

// encodeNumber appends the self-terminating base-32 big-endian encoding of n
// (one continuation-flagged Alphabet symbol per digit) to buf. n must be
// non-negative.
func encodeNumber(buf *strings.Builder, n int) {
	if n < 0 {
		panic("dawg: encodeNumber: negative number")
	}

	var digits [13]byte // enough digits for any non-negative 64-bit value in base 32
	count := 0
	for {
		digits[count] = byte(n & digitPayload)
		n >>= 5
		count++
		if n == 0 {
			break
		}
	}

	// emit big-endian: most significant digit first, continuation bit set
	// on every digit but the last one produced (digits[0]).
	for i := count - 1; i >= 0; i-- {
		d := digits[i]
		if i != 0 {
			d |= digitContBit
		}
		buf.WriteByte(Alphabet[d])
	}
}

// decodeNumber reads a self-terminating base-32 number starting at s[pos]
// and returns its value along with the offset of the first byte after it.
func decodeNumber(s string, pos int) (int, int, error) {
	start := pos
	value := 0
	for {
		if pos >= len(s) {
			return 0, 0, errors.Wrapf(ErrMalformedPacked, "truncated reference number at offset %d", start)
		}
		idx := alphabetIndex[s[pos]]
		if idx < 0 {
			return 0, 0, errors.Wrapf(ErrMalformedPacked, "non-digit character %q in reference number at offset %d", s[pos], pos)
		}
		value = (value << 5) | int(idx&digitPayload)
		cont := idx&digitContBit != 0
		pos++
		if !cont {
			break
		}
	}
	return value, pos, nil
}
