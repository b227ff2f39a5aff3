package dawg

import "github.com/pkg/errors"

// BuildPacked is a convenience wrapper around NewBuilder/Insert/Pack for the
// common case of packing a fixed, in-memory word list in one call.
func BuildPacked(words []string, opts ...BuilderOption) (string, error) {
	b := NewBuilder(opts...)
	if err := b.InsertAll(words); err != nil {
		return "", errors.Wrap(err, "BuildPacked")
	}
	return b.Pack(), nil
}
