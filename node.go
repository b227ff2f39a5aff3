package dawg

import "sort"

// edge is an outgoing transition: label is a non-empty string over Alphabet,
// child is the node reached by consuming it.
type edge struct {
	label string
	child *Node
}

// Node is one state of the trie/DAWG. During construction it is a mutable,
// owner-private value; once the canonicalizer freezes it, it becomes
// immutable and may be shared by any number of parents (data model in
// SPEC_FULL.md §3). A tagged struct with explicit fields replaces the
// dynamic property bag the distilled spec describes, per its own design
// note on representing that state in a systems language.
type Node struct {
	terminal bool
	edges    []edge   // kept sorted by label
	inline   []string // kept sorted; every entry has length 1

	frozen      bool
	canonicalID int
	inDegree    int
	preorder    int // assigned by the packer in topological order, not discovery order (pack.go)
	epoch       int // visit marker, compared against the owning Builder's current epoch
}

func newNode() *Node {
	return &Node{}
}

// clone returns a fresh, unfrozen, unregistered copy of n, used when an
// insert needs to mutate a node that canonicalization has already frozen.
// This keeps construction correct for arbitrary (not just sorted) insertion
// order: a frozen node is never mutated in place, so every other reference
// to it remains valid, and the clone is free to be merged back into the
// signature registry (or into some other canonical node) during the later
// full canonicalization pass, exactly as an ordinary not-yet-frozen node
// would be.
func (n *Node) clone() *Node {
	c := &Node{
		terminal: n.terminal,
		edges:    append([]edge(nil), n.edges...),
		inline:   append([]string(nil), n.inline...),
	}
	return c
}

// findEdge returns the index of the edge whose label begins with c, if any.
// Invariant 1 (prefix-free by first character) guarantees at most one match.
func (n *Node) findEdge(c byte) (int, bool) {
	for i := range n.edges {
		if n.edges[i].label[0] == c {
			return i, true
		}
	}
	return -1, false
}

// findInline returns the index of the inline terminal beginning with c, if
// any.
func (n *Node) findInline(c byte) (int, bool) {
	for i := range n.inline {
		if n.inline[i][0] == c {
			return i, true
		}
	}
	return -1, false
}

func (n *Node) addEdge(label string, child *Node) {
	n.edges = append(n.edges, edge{label: label, child: child})
	sort.Slice(n.edges, func(i, j int) bool { return n.edges[i].label < n.edges[j].label })
}

func (n *Node) addInline(label string) {
	n.inline = append(n.inline, label)
	sort.Strings(n.inline)
}

func (n *Node) removeInline(i int) {
	n.inline = append(n.inline[:i], n.inline[i+1:]...)
}

// isSingleton reports whether n has exactly one outgoing edge and is
// otherwise empty: no terminal flag, no inline terminals. Such a node is a
// candidate for chain collapsing (§4.3).
func (n *Node) isSingleton() bool {
	return len(n.edges) == 1 && !n.terminal && len(n.inline) == 0
}

// signature builds the structural-equality key used by the canonicalizer:
// a marker for the terminal flag, then for each label in sorted order
// either the bare label (inline terminal) or the label followed by the
// child's canonical id (edge). Equal signatures imply identical node
// structure, per data-model invariant 3.
func (n *Node) signature() string {
	var buf []byte
	if n.terminal {
		buf = append(buf, terminalMark)
	}

	type entry struct {
		label string
		cid   int
		isEd  bool
	}
	entries := make([]entry, 0, len(n.edges)+len(n.inline))
	for _, t := range n.inline {
		entries = append(entries, entry{label: t})
	}
	for _, e := range n.edges {
		entries = append(entries, entry{label: e.label, cid: e.child.canonicalID, isEd: true})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].label < entries[j].label })

	for _, e := range entries {
		buf = append(buf, e.label...)
		if e.isEd {
			buf = append(buf, refIntroducer)
			buf = appendInt(buf, e.cid)
		}
		buf = append(buf, nodeSeparator)
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(buf, tmp[i:]...)
}
