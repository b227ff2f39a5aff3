package dawg

import "go.uber.org/zap"

// optimize runs the graph optimizer (§4.3) once, after every word has been
// inserted: finish canonicalizing anything the streaming freeze left
// mutable, count in-degrees, then collapse singleton chains into their
// parents' labels.
func (b *Builder) optimize() {
	b.root = b.canonicalize(b.root)

	epoch := b.nextEpoch()
	nodeCount := countDegree(b.root, epoch)
	b.root.inDegree = 1 // invariant 4: root has in-degree 1

	epoch = b.nextEpoch()
	collapsed := collapseChains(b.root, epoch)

	b.log.Debug("optimized trie",
		zap.Int("nodes", nodeCount),
		zap.Int("canonicalHits", b.canonicalHits),
		zap.Int("chainsCollapsed", collapsed),
	)
}

// countDegree is a DFS with a visit marker (epoch): the first visit to a
// node sets its in-degree to 1, recurses into its edge children, and counts
// toward the total; every later visit just increments the in-degree and
// stops, so each edge in the DAWG is counted exactly once regardless of how
// many times its target is shared. It returns the number of distinct nodes
// reachable from n.
func countDegree(n *Node, epoch int) int {
	if n.epoch == epoch {
		n.inDegree++
		return 0
	}
	n.epoch = epoch
	n.inDegree = 1
	count := 1
	for _, e := range n.edges {
		count += countDegree(e.child, epoch)
	}
	return count
}

// collapseChains is a second DFS, with its own fresh epoch, that fuses
// singleton children into their parent's edge label wherever doing so loses
// no structural sharing (in-degree 1) or costs nothing even when it does
// (a one-character label, per the open question resolved in SPEC_FULL.md
// §9: collapse fires whenever inDegree == 1 || len(label) == 1, matching
// the teacher package's dawg-dict/disk.go isFallthrough special case,
// generalized from "next node in address order" to "fused into the label
// itself"). It returns the number of fusions performed.
func collapseChains(n *Node, epoch int) int {
	if n.epoch == epoch {
		return 0
	}
	n.epoch = epoch

	fused := 0
	for i := range n.edges {
		child := n.edges[i].child
		fused += collapseChains(child, epoch)

		for child.isSingleton() && (child.inDegree == 1 || len(child.edges[0].label) == 1) {
			fusedLabel := n.edges[i].label + child.edges[0].label
			grandchild := child.edges[0].child
			n.edges[i] = edge{label: fusedLabel, child: grandchild}
			child = grandchild
			fused++
		}
	}
	return fused
}
