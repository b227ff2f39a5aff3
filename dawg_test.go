package dawg

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packWords(t *testing.T, words []string) *Unpacker {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.InsertAll(words))
	packed := b.Pack()
	require.NotEmpty(t, packed)

	u, err := NewUnpacker(packed)
	require.NoError(t, err)
	return u
}

func TestZeroLengthWord(t *testing.T) {
	u := packWords(t, []string{""})
	ok, err := u.IsWord("")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = u.IsWord("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSingleEntry(t *testing.T) {
	u := packWords(t, []string{"hello"})
	ok, err := u.IsWord("hello")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = u.IsWord("hell")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrefixesAreIndependentlyTerminal(t *testing.T) {
	u := packWords(t, []string{"a", "ab", "abc"})
	for _, w := range []string{"a", "ab", "abc"} {
		ok, err := u.IsWord(w)
		require.NoError(t, err)
		assert.True(t, ok, w)
	}
	ok, err := u.IsWord("abcd")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSharedSuffixes(t *testing.T) {
	// "tap" and "top" share the suffix "p" off of different second letters;
	// the packed representation must still answer both membership queries
	// correctly regardless of whatever node sharing the optimizer performs.
	u := packWords(t, []string{"tap", "top", "tape", "tope"})
	for _, w := range []string{"tap", "top", "tape", "tope"} {
		ok, err := u.IsWord(w)
		require.NoError(t, err)
		assert.True(t, ok, w)
	}
	for _, w := range []string{"ta", "to", "taper", "tan"} {
		ok, err := u.IsWord(w)
		require.NoError(t, err)
		assert.False(t, ok, w)
	}
}

func TestInsertionOrderDoesNotAffectResult(t *testing.T) {
	words := []string{"zebra", "apple", "zeal", "app", "application", "ant", "z"}

	sorted := append([]string(nil), words...)
	sort.Strings(sorted)

	uSorted := packWords(t, sorted)
	uShuffled := packWords(t, words)

	for _, w := range words {
		okS, err := uSorted.IsWord(w)
		require.NoError(t, err)
		okU, err := uShuffled.IsWord(w)
		require.NoError(t, err)
		assert.Equal(t, okS, okU, w)
		assert.True(t, okU, w)
	}
}

func TestDuplicateInsertIsNoOp(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert("repeat"))
	require.NoError(t, b.Insert("repeat"))
	require.NoError(t, b.Insert("repeat"))
	packed := b.Pack()

	u, err := NewUnpacker(packed)
	require.NoError(t, err)
	ok, err := u.IsWord("repeat")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidCharacterRejected(t *testing.T) {
	b := NewBuilder()
	err := b.Insert("bad word")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInsertAfterPackPanics(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert("a"))
	b.Pack()

	assert.Panics(t, func() {
		b.Insert("b")
	})
}

func TestFullDict(t *testing.T) {
	words := []string{
		"cwm", "fjord", "bank", "vex", "quiz", "glyph", "work",
		"the", "there", "their", "they", "them", "theme", "then",
		"a", "an", "and", "ant", "ante", "anti",
	}
	sort.Strings(words)

	u := packWords(t, words)
	for _, w := range words {
		ok, err := u.IsWord(w)
		require.NoError(t, err)
		assert.True(t, ok, w)
	}

	for _, w := range []string{"th", "thei", "theyre", "anteater", ""} {
		ok, err := u.IsWord(w)
		require.NoError(t, err)
		assert.False(t, ok, w)
	}
}

func TestEnumerateReturnsExactWordSet(t *testing.T) {
	words := []string{"bat", "bath", "bats", "cat", "cats", "catalog"}
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)

	u := packWords(t, words)

	var got []string
	err := u.Enumerate(func(w string) bool {
		got = append(got, w)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, sorted, got)
}

func TestEnumerateStopsEarly(t *testing.T) {
	u := packWords(t, []string{"aa", "ab", "ac", "ad"})

	var got []string
	err := u.Enumerate(func(w string) bool {
		got = append(got, w)
		return len(got) < 2
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNewUnpackerRejectsEmptyString(t *testing.T) {
	_, err := NewUnpacker("")
	assert.ErrorIs(t, err, ErrMalformedPacked)
}

func TestIsWordRejectsInvalidCharacter(t *testing.T) {
	u := packWords(t, []string{"a"})
	_, err := u.IsWord("bad word")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValueHookRoundTrip(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.InsertValue("one", 1))
	require.NoError(t, b.InsertValue("two", 2))
	require.NoError(t, b.InsertValue("three", 300))
	require.NoError(t, b.InsertValue("ten", 10))
	packed := b.Pack()

	u, err := NewUnpacker(packed)
	require.NoError(t, err)

	v, err := u.Lookup("one")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = u.Lookup("three")
	require.NoError(t, err)
	assert.Equal(t, 300, v)

	v, err = u.Lookup("ten")
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	_, err = u.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestValueHookLookupAcrossCollapsedChain isolates a single value-bearing
// key with no sibling words, so every node between the root and its digit
// run is a non-branching, non-terminal singleton and gets fused by chain
// collapsing into one edge. The boundary between "cat" and its value's
// valueSeparator then sits strictly inside that edge's label, not on a
// node boundary.
func TestValueHookLookupAcrossCollapsedChain(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.InsertValue("cat", 42))
	packed := b.Pack()

	u, err := NewUnpacker(packed)
	require.NoError(t, err)

	v, err := u.Lookup("cat")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = u.Lookup("ca")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = u.Lookup("cats")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestPackHandlesNodeSharedByLaterNumberedSibling targets a DAG shape a
// plain pre-order DFS numbers wrong: the node holding inline terminal "c" is
// canonicalized into one shared node reachable from both the "a" and "b"
// branches off the root. A DFS visiting "a" before "b" (label order) numbers
// that shared node while still under "a"; "b"'s own edge to the very same
// node must still compute a positive distance to it, even though "b" itself
// is numbered after the shared node was first discovered.
func TestPackHandlesNodeSharedByLaterNumberedSibling(t *testing.T) {
	words := []string{"aqc", "ay", "bqc", "bz"}

	require.NotPanics(t, func() {
		u := packWords(t, words)
		for _, w := range words {
			ok, err := u.IsWord(w)
			require.NoError(t, err)
			assert.True(t, ok, w)
		}
		for _, w := range []string{"a", "b", "aq", "bq", "aqd"} {
			ok, err := u.IsWord(w)
			require.NoError(t, err)
			assert.False(t, ok, w)
		}
	})
}

func TestBuildPackedConvenience(t *testing.T) {
	packed, err := BuildPacked([]string{"alpha", "beta", "gamma"})
	require.NoError(t, err)

	u, err := NewUnpacker(packed)
	require.NoError(t, err)
	ok, err := u.IsWord("beta")
	require.NoError(t, err)
	assert.True(t, ok)
}
