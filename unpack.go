package dawg

import "github.com/pkg/errors"

// Unpacker answers membership and lookup queries against a packed string
// without ever materializing it back into a Node graph (§4.5): it indexes
// each node's byte offset once, up front, and then re-parses a node's entry
// directly out of the packed string on every descent.
type Unpacker struct {
	packed  string
	offsets []int // offsets[i] is the byte offset of node i's entry
}

// NewUnpacker indexes packed, a string produced by Builder.Pack. It returns
// ErrMalformedPacked if packed is empty or contains a byte that is neither in
// Alphabet nor one of the reserved structural characters.
func NewUnpacker(packed string) (*Unpacker, error) {
	if packed == "" {
		return nil, errors.Wrap(ErrMalformedPacked, "empty packed string")
	}

	offsets := []int{0}
	for i := 0; i < len(packed); i++ {
		c := packed[i]
		if c == nodeSeparator {
			offsets = append(offsets, i+1)
			continue
		}
		if alphabetIndex[c] < 0 && c != terminalMark && c != refIntroducer && c != valueSeparator {
			return nil, errors.Wrapf(ErrMalformedPacked, "unexpected character %q at offset %d", c, i)
		}
	}

	u := &Unpacker{packed: packed, offsets: offsets}
	return u, nil
}

// parsedNode is the result of decoding one node's entry.
type parsedNode struct {
	terminal bool
	inline   []byte
	edges    []parsedEdge
}

type parsedEdge struct {
	label string
	next  int // absolute node index of the child
}

// parseNode decodes the entry for node index idx: an optional terminal
// marker, a self-terminating count of inline-terminal characters, then zero
// or more label+R+distance edges running to the next nodeSeparator or end of
// string.
func (u *Unpacker) parseNode(idx int) (parsedNode, error) {
	if idx < 0 || idx >= len(u.offsets) {
		return parsedNode{}, errors.Wrapf(ErrMalformedPacked, "reference to unknown node %d", idx)
	}

	pos := u.offsets[idx]
	end := len(u.packed)
	if idx+1 < len(u.offsets) {
		end = u.offsets[idx+1] - 1 // back up over the separator itself
	}
	s := u.packed

	var n parsedNode
	if pos < end && s[pos] == terminalMark {
		n.terminal = true
		pos++
	}

	count, next, err := decodeNumber(s, pos)
	if err != nil {
		return parsedNode{}, err
	}
	pos = next

	for i := 0; i < count; i++ {
		if pos >= end {
			return parsedNode{}, errors.Wrapf(ErrMalformedPacked, "node %d: truncated inline terminal list", idx)
		}
		n.inline = append(n.inline, s[pos])
		pos++
	}

	for pos < end {
		start := pos
		for pos < end && s[pos] != refIntroducer {
			pos++
		}
		if pos >= end {
			return parsedNode{}, errors.Wrapf(ErrMalformedPacked, "node %d: edge label missing %q introducer", idx, refIntroducer)
		}
		label := s[start:pos]
		pos++ // skip refIntroducer

		dist, next, err := decodeNumber(s, pos)
		if err != nil {
			return parsedNode{}, err
		}
		pos = next

		n.edges = append(n.edges, parsedEdge{label: label, next: idx + dist})
	}

	return n, nil
}

// IsWord reports whether word was present in the dictionary that produced
// the packed string, per invariant 7 (round-trip fidelity). It returns
// ErrInvalidInput if word contains a character outside Alphabet, and
// ErrMalformedPacked if the packed string is corrupt.
func (u *Unpacker) IsWord(word string) (bool, error) {
	if err := ValidateWord(word); err != nil {
		return false, err
	}

	idx := 0
	rest := word
	for {
		n, err := u.parseNode(idx)
		if err != nil {
			return false, err
		}

		if rest == "" {
			return n.terminal, nil
		}

		c := rest[0]
		for _, t := range n.inline {
			if t == c {
				return rest == string(c), nil
			}
		}

		matched := false
		for _, e := range n.edges {
			if len(e.label) <= len(rest) && e.label == rest[:len(e.label)] {
				idx = e.next
				rest = rest[len(e.label):]
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
}

// Enumerate walks every word in the dictionary in lexicographic order,
// calling fn for each one. Enumerate stops early and returns nil if fn
// returns false. It generalizes the teacher package's Enumerate (dawg.go) to
// the text grammar: since node 0's reachable set is a DAG, not a tree, the
// same node can be visited along more than one path, so unlike a plain tree
// walk, no per-node visited marker is needed or wanted here -- every path
// starting at the root genuinely is a distinct word.
func (u *Unpacker) Enumerate(fn func(word string) bool) error {
	_, err := u.enumerate(0, nil, fn)
	return err
}

func (u *Unpacker) enumerate(idx int, prefix []byte, fn func(string) bool) (bool, error) {
	n, err := u.parseNode(idx)
	if err != nil {
		return false, err
	}

	if n.terminal {
		if !fn(string(prefix)) {
			return false, nil
		}
	}

	// Inline terminals and edges share one first-character namespace
	// (invariant 1), so a plain "all inline, then all edges" walk would
	// not visit them in lexicographic order whenever an edge's label
	// sorts before an inline terminal. Merge the two already-sorted lists
	// by their leading byte instead.
	i, j := 0, 0
	for i < len(n.inline) || j < len(n.edges) {
		useInline := j >= len(n.edges) || (i < len(n.inline) && n.inline[i] < n.edges[j].label[0])
		if useInline {
			if !fn(string(append(prefix, n.inline[i]))) {
				return false, nil
			}
			i++
			continue
		}

		e := n.edges[j]
		cont, err := u.enumerate(e.next, append(prefix, e.label...), fn)
		if err != nil {
			return false, err
		}
		if !cont {
			return false, nil
		}
		j++
	}

	return true, nil
}
