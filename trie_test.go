package dawg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineTerminalPromotedToEdgeOnDivergence(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert("a"))
	// "a" starts out as an inline terminal on the root (length 1, no further
	// structure needed). Inserting "ab" must promote it to a real edge.
	require.NoError(t, b.Insert("ab"))

	_, isInline := b.root.findInline('a')
	assert.False(t, isInline, "inline terminal should have been promoted")

	i, ok := b.root.findEdge('a')
	require.True(t, ok)
	assert.True(t, b.root.edges[i].child.terminal)
}

func TestInsertAtSplitsEdgeOnStrictPartialPrefix(t *testing.T) {
	// Edges created by ordinary insertion are always a single character (see
	// insertAt's fallback branch), so the strict-partial-prefix split only
	// ever fires on a longer label such as the ones collapseChains produces.
	// Exercise it directly against a hand-built multi-character edge.
	b := NewBuilder()
	child := newNode()
	child.terminal = true
	b.root.addEdge("cart", child)

	b.insertAt(b.root, "cast", 0)

	i, ok := b.root.findEdge('c')
	require.True(t, ok)
	assert.Equal(t, "ca", b.root.edges[i].label)

	mid := b.root.edges[i].child
	ri, ok := mid.findEdge('r')
	require.True(t, ok)
	assert.Equal(t, "rt", mid.edges[ri].label)
	assert.True(t, mid.edges[ri].child.terminal)

	si, ok := mid.findEdge('s')
	require.True(t, ok)
	assert.Equal(t, "s", mid.edges[si].label)
	_, hasT := mid.edges[si].child.findInline('t')
	assert.True(t, hasT)
}

func TestFreezeDoesNotMutateAlreadyFrozenNode(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert("aa"))
	require.NoError(t, b.Insert("ab"))
	// Moving on to a word sharing no prefix with "ab" forces everything
	// under "a" to freeze.
	require.NoError(t, b.Insert("zz"))

	i, ok := b.root.findEdge('a')
	require.True(t, ok)
	assert.True(t, b.root.edges[i].child.frozen)
}

func TestUnsortedInsertCloneOnWriteKeepsFrozenSiblingValid(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert("ax"))
	require.NoError(t, b.Insert("zz")) // freezes the "a" branch
	// Now, out of order, add another word down the frozen "a" branch; the
	// builder must clone rather than mutate it in place.
	require.NoError(t, b.Insert("ay"))

	packed := b.Pack()
	u, err := NewUnpacker(packed)
	require.NoError(t, err)

	for _, w := range []string{"ax", "zz", "ay"} {
		ok, err := u.IsWord(w)
		require.NoError(t, err)
		assert.True(t, ok, w)
	}
	ok, err := u.IsWord("az")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommonPrefixLen(t *testing.T) {
	assert.Equal(t, 0, commonPrefixLen("abc", "xyz"))
	assert.Equal(t, 3, commonPrefixLen("abc", "abc"))
	assert.Equal(t, 2, commonPrefixLen("abcd", "abxy"))
	assert.Equal(t, 0, commonPrefixLen("", "abc"))
}
