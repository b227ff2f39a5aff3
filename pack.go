package dawg

import (
	"strings"

	"go.uber.org/zap"
)

// packer assigns numbers to the optimized DAWG's nodes and serializes it
// into the textual grammar in SPEC_FULL.md §6. It is single-use: its order
// slice only makes sense for the epoch it was built under.
type packer struct {
	epoch int
	order []*Node
}

// pack numbers root's reachable nodes and renders every one of them into the
// packed string grammar: `packed := node (S node)*`.
func pack(root *Node, epoch int) string {
	p := &packer{epoch: epoch}
	p.postorder(root)

	// p.order is now in DFS postorder: a node is appended only after every
	// node reachable from it has already been appended. Reversing it gives
	// a topological order in which a node always comes after every parent
	// that reaches it -- not just the parent that happens to discover it
	// first during the walk. A node shared by more than one parent (the
	// whole point of a DAG) can be reached by one parent early in the walk
	// and by another, later one; plain pre-order numbering assigns the
	// node a number the first time it's found, so a later-discovered
	// parent's edge to it computes a zero or negative distance, which
	// encodeNumber rejects and the grammar can't represent (SPEC_FULL.md
	// §6: a child must be numbered after every parent that references it,
	// not just the first one found).
	for i, j := 0, len(p.order)-1; i < j; i, j = i+1, j-1 {
		p.order[i], p.order[j] = p.order[j], p.order[i]
	}
	for i, n := range p.order {
		n.preorder = i
	}

	var buf strings.Builder
	for i, n := range p.order {
		if i > 0 {
			buf.WriteByte(nodeSeparator)
		}
		p.writeNode(&buf, n)
	}
	return buf.String()
}

// postorder visits every node reachable from n exactly once (epoch as visit
// marker) and appends it to p.order after all of its children. Since the
// graph is acyclic, this holds regardless of how many parents a node has:
// whichever parent reaches it first, its whole subtree finishes -- and so
// the node itself is appended -- before that parent returns to its caller.
func (p *packer) postorder(n *Node) {
	if n.epoch == p.epoch {
		return
	}
	n.epoch = p.epoch
	for _, e := range n.edges {
		p.postorder(e.child)
	}
	p.order = append(p.order, n)
}

// writeNode emits one node's entries: an optional terminal marker, then the
// self-terminating count of inline terminals followed by their bare
// characters (resolving the grammar's otherwise-unparseable ambiguity
// between concatenated bare labels -- see DESIGN.md), then each edge as
// label + R + the relative distance to its child's number.
func (p *packer) writeNode(buf *strings.Builder, n *Node) {
	if n.terminal {
		buf.WriteByte(terminalMark)
	}

	encodeNumber(buf, len(n.inline))
	for _, t := range n.inline {
		buf.WriteString(t)
	}

	for _, e := range n.edges {
		buf.WriteString(e.label)
		buf.WriteByte(refIntroducer)
		encodeNumber(buf, e.child.preorder-n.preorder)
	}
}

// Pack runs the graph optimizer (§4.3) to completion and then serializes the
// result (§4.4). After Pack returns, the Builder is finished: the mutable
// trie and the signature registry are dropped, matching §5's memory
// contract that construction state does not outlive packing.
func (b *Builder) Pack() string {
	if b.finished {
		panic("dawg: Pack called twice on the same Builder")
	}

	b.optimize()

	epoch := b.nextEpoch()
	out := pack(b.root, epoch)

	b.log.Info("packed dictionary",
		zap.Int("words", b.numAdded),
		zap.Int("bytes", len(out)),
	)

	b.finished = true
	b.root = nil
	b.registry = nil
	b.pending = nil

	return out
}
