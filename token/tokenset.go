package token

// Set is a bitset over Kind, used for `at_ts` any-of lookahead tests and
// for recovery/sync sets. Every token kind is below 64, so a single-word
// bitset covers all sync sets; node kinds from 64 up (UNKNOWN_MEMBER) are
// not members: With panics on them and Contains reports false. There is
// no third-party bitset
// dependency anywhere in the retrieval pack, so this is a deliberate
// stdlib choice rather than an oversight (see DESIGN.md).
type Set uint64

// NewSet builds a Set from the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns a copy of s with k added.
func (s Set) With(k Kind) Set {
	if k >= 64 {
		panic("token: Set only supports kinds below 64; widen token.Set if the grammar grows")
	}
	return s | (1 << uint(k))
}

// Union returns the set containing every kind in either s or other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Contains reports whether k is a member of s.
func (s Set) Contains(k Kind) bool {
	if k >= 64 {
		return false
	}
	return s&(1<<uint(k)) != 0
}
