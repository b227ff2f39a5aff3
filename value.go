package dawg

import (
	"strings"

	"github.com/pkg/errors"
)

// The key/value hook described in spec.md §4.5 is deliberately underspecified
// ("internals are out of scope beyond the contract"); this is one concrete,
// best-effort reading of it. A value is attached to a word by inserting an
// ordinary key built from the word, a reserved separator byte, and the
// value's self-terminating digit encoding (the same continuation-bit scheme
// encodeNumber uses for reference distances in the packed grammar). The
// DAWG's own suffix sharing then applies to encoded values exactly as it does
// to words: two keys with the same trailing digits share structure for free.

// encodeValue returns the raw insertion key for (word, value): word,
// followed by valueSeparator, followed by value's digit encoding. word must
// already be Alphabet-validated; value must be non-negative.
func encodeValue(word string, value int) string {
	var buf strings.Builder
	buf.WriteString(word)
	buf.WriteByte(valueSeparator)
	encodeNumber(&buf, value)
	return buf.String()
}

// InsertValue inserts word associated with value. A later Unpacker.Lookup of
// word returns value. Inserting the same word twice with different values
// leaves both reachable only by coincidence of the packed representation;
// callers that need update semantics should not rely on it.
func (b *Builder) InsertValue(word string, value int) error {
	if err := ValidateWord(word); err != nil {
		return err
	}
	if value < 0 {
		return errors.Wrap(ErrInvalidInput, "value must be non-negative")
	}
	return b.insertValidated(encodeValue(word, value))
}

// Lookup returns the value associated with word. It returns ErrNotFound if
// word was never inserted via InsertValue (including if it is only a plain
// word with no attached value), and ErrMalformedPacked if the packed string
// is corrupt.
//
// Unlike IsWord, Lookup cannot assume "word" ends exactly on a node
// boundary: the chain collapse (§4.3) may have fused the byte that follows
// "word" -- valueSeparator -- into the same edge label as the tail of
// "word" itself, since the node that would otherwise mark that boundary is
// never terminal and never branches on its own. So each step either
// consumes a whole edge and continues, or finds "word" ending partway
// through one, in which case whatever follows valueSeparator inside that
// same label is the start of the value's digit run.
func (u *Unpacker) Lookup(word string) (int, error) {
	if err := ValidateWord(word); err != nil {
		return 0, err
	}

	idx := 0
	rest := word
	var digits []byte

	for {
		n, err := u.parseNode(idx)
		if err != nil {
			return 0, err
		}

		if rest == "" {
			found := false
			for _, e := range n.edges {
				if e.label[0] == valueSeparator {
					digits = append(digits, e.label[1:]...)
					idx = e.next
					found = true
					break
				}
			}
			if !found {
				return 0, errors.Wrapf(ErrNotFound, "%q has no associated value", word)
			}
			break
		}

		var e *parsedEdge
		for i := range n.edges {
			if n.edges[i].label[0] == rest[0] {
				e = &n.edges[i]
				break
			}
		}
		if e == nil {
			return 0, errors.Wrapf(ErrNotFound, "%q", word)
		}

		p := commonPrefixLen(e.label, rest)
		switch {
		case p == len(e.label):
			// Whole edge consumed; word may or may not be finished.
			idx = e.next
			rest = rest[p:]
		case p == len(rest):
			// word ends partway through this edge's label; whatever
			// follows must be valueSeparator plus however much of the
			// digit run this fused label happened to carry along.
			if e.label[p] != valueSeparator {
				return 0, errors.Wrapf(ErrNotFound, "%q has no associated value", word)
			}
			digits = append(digits, e.label[p+1:]...)
			idx = e.next
			goto digits
		default:
			return 0, errors.Wrapf(ErrNotFound, "%q", word)
		}
	}

digits:
	for len(digits) == 0 || alphabetIndex[digits[len(digits)-1]]&digitContBit != 0 {
		n, err := u.parseNode(idx)
		if err != nil {
			return 0, err
		}
		switch {
		case len(n.inline) > 0:
			// The run's final digit is stored as an inline terminal.
			d := n.inline[0]
			digits = append(digits, d)
			if alphabetIndex[d] < 0 || alphabetIndex[d]&digitContBit != 0 {
				return 0, errors.Wrapf(ErrMalformedPacked, "%q: truncated value digits", word)
			}
		case len(n.edges) > 0:
			e := n.edges[0]
			digits = append(digits, e.label...)
			idx = e.next
		default:
			return 0, errors.Wrapf(ErrMalformedPacked, "%q: truncated value digits", word)
		}
	}

	value, _, err := decodeNumber(string(digits), 0)
	if err != nil {
		return 0, err
	}
	return value, nil
}
