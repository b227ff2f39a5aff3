package dawg

// commonPrefixLen returns the length in bytes of the longest shared prefix
// of a and b, comparing byte-for-byte (code units, not runes or grapheme
// clusters) per the package's no-normalization contract.
func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
