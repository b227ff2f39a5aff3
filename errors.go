package dawg

import "github.com/pkg/errors"

// Sentinel error kinds, matched with errors.Is after being wrapped with
// context by errors.Wrapf at the call site (github.com/pkg/errors preserves
// both the wrapped sentinel for comparison and a stack trace for logging,
// the same idiom used throughout the logic packages of go-arcade-arcade).
var (
	// ErrInvalidInput is returned by Insert when a word contains a
	// character outside Alphabet, including any reserved structural
	// character.
	ErrInvalidInput = errors.New("dawg: invalid input")

	// ErrMalformedPacked is returned when the unpacker encounters a
	// packed string that cannot be a valid encoding of any DAWG: a bad
	// character, a truncated reference number, or a reference to a node
	// number that was never indexed.
	ErrMalformedPacked = errors.New("dawg: malformed packed string")

	// ErrNotFound is returned by Lookup when the key is absent. Membership
	// queries (IsWord) report absence as a plain false instead.
	ErrNotFound = errors.New("dawg: key not found")
)
