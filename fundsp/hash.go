package fundsp

// splitmix64 is the 64-bit mix function combinators use to derive
// distinct child hashes from a parent hash plus structural identity
// (child index, combinator kind tag). It is a bijective permutation of
// uint64, so no structural information is lost, only scrambled.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// combKind tags a combinator's operator identity into the hash mix so
// that e.g. `a >> b` and `a & b` built from the same children still
// diverge.
type combKind uint64

const (
	kindNegate combKind = iota + 1
	kindThru
	kindProduct
	kindSum
	kindDiff
	kindPipe
	kindBus
	kindBranch
	kindStack
	kindFeedback
)

// mixChild derives the hash handed down to the i-th child of a
// combinator of the given kind, from the combinator's own inbound
// hash. Two structurally identical subgraphs nested under different
// parents (or at different positions) receive different hashes; two
// identical subgraphs nested at the very same position receive the
// same one, giving the decorrelation/reproducibility split this seeding scheme aims for.
func mixChild(parent uint64, kind combKind, childIndex int) uint64 {
	h := splitmix64(parent ^ uint64(kind))
	h = splitmix64(h ^ uint64(childIndex)*0xD6E8FEB86659FD93)
	return h
}

// combineHash folds a combinator's own derived value and its
// children's returned hashes into the value passed back to its own
// parent.
func combineHash(kind combKind, childHashes ...uint64) uint64 {
	h := splitmix64(uint64(kind) * 0x2545F4914F6CDD1D)
	for _, c := range childHashes {
		h = splitmix64(h ^ c)
	}
	return h
}
