package dawg

import "go.uber.org/zap"

// pendingEntry is one link on the insertion path of the most recently added
// word that has not yet been frozen into the DAWG. It generalizes the
// teacher package's uncheckedNode (dawg.go) from single-rune edges to
// arbitrary string labels: parent/label identify the edge to repair if
// canonicalization merges node into a previously-seen structure.
type pendingEntry struct {
	parent   *Node
	label    string
	node     *Node
	consumed int
}

// BuilderOption configures a Builder constructed with NewBuilder.
type BuilderOption func(*Builder)

// Builder maintains the mutable trie during construction and performs the
// streaming freeze described in SPEC_FULL.md §4.1. All of its bookkeeping
// (signature registry, canonical id counter, visit epoch) is owner-scoped
// state dropped once Pack returns, per the design note in spec.md §9.
type Builder struct {
	root *Node

	hasLast bool
	last    string
	pending []pendingEntry

	registry      map[string]*Node
	nextID        int
	epoch         int
	numAdded      int
	canonicalHits int // number of times canonicalize found an existing signature instead of freezing a new node
	finished      bool

	log *zap.Logger
}

// NewBuilder returns an empty Builder ready to accept words in any order.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		root:     newNode(),
		registry: make(map[string]*Node),
		log:      nopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Insert adds word to the dictionary. The empty string is accepted and
// marks the root terminal. Re-inserting a word already present is a no-op.
// Insert returns ErrInvalidInput if word contains a character outside
// Alphabet.
func (b *Builder) Insert(word string) error {
	if err := ValidateWord(word); err != nil {
		return err
	}
	return b.insertValidated(word)
}

// InsertAll is a convenience bulk Insert; duplicates are silently dropped.
func (b *Builder) InsertAll(words []string) error {
	for _, w := range words {
		if err := b.Insert(w); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) insertValidated(word string) error {
	if b.finished {
		panic("dawg: Insert called on a Builder that has already been packed")
	}
	if b.hasLast && word == b.last {
		return nil
	}

	prefix := 0
	if b.hasLast {
		prefix = commonPrefixLen(word, b.last)
	}
	b.freeze(prefix)

	// node is the deepest real Node still shared with the previous word.
	// This can be shallower than prefix: an inline terminal matches bytes
	// of the word without a Node of its own ever existing for them, so the
	// walk must resume from the last real node and let insertAt re-examine
	// whatever inline terminal or edge sits at that depth.
	node := b.root
	nodeDepth := 0
	if n := len(b.pending); n > 0 {
		node = b.pending[n-1].node
		nodeDepth = b.pending[n-1].consumed
	}
	start := prefix
	if start > nodeDepth {
		start = nodeDepth
	}

	b.insertAt(node, word[start:], start)

	b.last = word
	b.hasLast = true
	b.numAdded++
	return nil
}

// insertAt descends from node inserting the remaining suffix rest, per the
// algorithm in SPEC_FULL.md §4.1. consumed is the number of bytes of the
// current word already consumed to reach node, used to keep pendingEntry's
// freeze horizon accounting correct.
func (b *Builder) insertAt(node *Node, rest string, consumed int) {
	if rest == "" {
		node.terminal = true
		return
	}
	c := rest[0]

	if i, ok := node.findInline(c); ok {
		t := node.inline[i]
		if t == rest {
			return // already present
		}
		// The inline terminal and rest diverge beyond their shared first
		// character; promote it to a real edge and keep inserting.
		node.removeInline(i)
		child := newNode()
		child.terminal = true
		node.addEdge(t, child)
		b.recordPending(node, t, child, consumed+len(t))
		b.insertAt(child, rest[len(t):], consumed+len(t))
		return
	}

	if i, ok := node.findEdge(c); ok {
		e := node.edges[i]
		p := commonPrefixLen(e.label, rest)
		if p == len(e.label) {
			child := e.child
			if child.frozen {
				// Never mutate a frozen node; give this branch its own
				// unfrozen copy so every other parent's reference to the
				// original stays valid (see Node.clone).
				child = child.clone()
				node.edges[i].child = child
			}
			b.recordPending(node, e.label, child, consumed+p)
			b.insertAt(child, rest[p:], consumed+p)
			return
		}

		// Strict partial match: split the edge at the shared prefix.
		mid := newNode()
		mid.addEdge(e.label[p:], e.child)
		node.edges[i] = edge{label: e.label[:p], child: mid}
		b.recordPending(node, e.label[:p], mid, consumed+p)
		b.insertAt(mid, rest[p:], consumed+p)
		return
	}

	if len(rest) <= 1 {
		node.addInline(rest)
		return
	}

	child := newNode()
	node.addEdge(rest[:1], child)
	b.recordPending(node, rest[:1], child, consumed+1)
	b.insertAt(child, rest[1:], consumed+1)
}

func (b *Builder) recordPending(parent *Node, label string, node *Node, consumed int) {
	b.pending = append(b.pending, pendingEntry{parent: parent, label: label, node: node, consumed: consumed})
}

// freeze canonicalizes every pending node whose path is entirely beyond
// downTo -- the part of the previous word's path that can never be
// revisited once the dictionary continues past their common prefix with
// the current word -- then drops them from b.pending. This is the
// streaming-freeze optimization of SPEC_FULL.md §4.1: it is what gives
// sorted input its early, incremental canonicalization, but an unsorted
// insertion order is still correct, since optimize's own canonicalize(root)
// pass revisits anything this loop left pending.
func (b *Builder) freeze(downTo int) {
	keep := 0
	for keep < len(b.pending) && b.pending[keep].consumed <= downTo {
		keep++
	}

	for i := len(b.pending) - 1; i >= keep; i-- {
		pe := b.pending[i]
		replacement := b.canonicalize(pe.node)
		if replacement != pe.node {
			if idx, ok := pe.parent.findEdge(pe.label[0]); ok {
				pe.parent.edges[idx].child = replacement
			}
		}
	}

	b.pending = b.pending[:keep]
	b.log.Debug("froze trie nodes", zap.Int("downTo", downTo), zap.Int("registrySize", len(b.registry)))
}
