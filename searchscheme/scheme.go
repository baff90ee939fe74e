// Package searchscheme implements the search-scheme data model of
// spec.md §4.F: the Search/Scheme types, validity and completeness
// predicates, expansion to a target pattern length, and the two
// node-count estimators generators are ranked by.
package searchscheme

import "github.com/SGSSGene/fmindex-collection-sub003/fmerr"

// Search is the (π, l, u) triple of spec.md §3: π a permutation of
// [0,p), l/u non-decreasing bound sequences of length p with
// l[k] <= u[k].
type Search struct {
	Pi []int
	L  []int
	U  []int
}

// Scheme is a non-empty list of searches, all sharing the same p.
type Scheme []Search

// IsValid checks spec.md §3/§4.F's validity predicate: π a permutation
// of [0,p); every prefix π[0..k] forms a contiguous interval in [0,p)
// ("connected"); l, u non-decreasing with l[k] <= u[k].
func IsValid(s Search) bool {
	p := len(s.Pi)
	if len(s.L) != p || len(s.U) != p || p == 0 {
		return false
	}

	seen := make([]bool, p)
	for _, v := range s.Pi {
		if v < 0 || v >= p || seen[v] {
			return false
		}
		seen[v] = true
	}

	lo, hi := s.Pi[0], s.Pi[0]
	for k := 1; k < p; k++ {
		v := s.Pi[k]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		if hi-lo+1 != k+1 {
			return false
		}
	}

	for k := 0; k < p; k++ {
		if s.L[k] > s.U[k] {
			return false
		}
		if k > 0 && (s.L[k] < s.L[k-1] || s.U[k] < s.U[k-1]) {
			return false
		}
	}
	return true
}

// IsComplete checks, by brute force over every error pattern in
// [0,maxK]^p, that spec.md §3's completeness predicate holds: every
// pattern e with minK <= sum(e) <= maxK is covered by at least one
// search in scheme. Brute force is exponential in p and only practical
// for the small p search schemes actually use (single digits).
func IsComplete(scheme Scheme, minK, maxK int) bool {
	if len(scheme) == 0 {
		return false
	}
	p := len(scheme[0].Pi)

	e := make([]int, p)
	var walk func(pos int) bool
	walk = func(pos int) bool {
		if pos == p {
			sum := 0
			for _, v := range e {
				sum += v
			}
			if sum < minK || sum > maxK {
				return true
			}
			return coveredByAny(scheme, e)
		}
		for v := 0; v <= maxK; v++ {
			e[pos] = v
			if !walk(pos + 1) {
				return false
			}
		}
		return true
	}
	return walk(0)
}

func coveredByAny(scheme Scheme, e []int) bool {
	for _, s := range scheme {
		if covers(s, e) {
			return true
		}
	}
	return false
}

func covers(s Search, e []int) bool {
	cum := 0
	for k, piece := range s.Pi {
		cum += e[piece]
		if cum < s.L[k] || cum > s.U[k] {
			return false
		}
	}
	return true
}

// Expand produces a scheme over N pieces (N >= p) by subdividing each
// original piece into a contiguous run of new pieces, distributing the
// N-p extra pieces evenly across the p originals with front pieces
// absorbing the remainder; each new piece inherits its parent's u bound,
// while the parent's l bound applies only at its last sub-piece (earlier
// sub-pieces carry the l of the previously visited piece). Preserves
// isValid and the set of error patterns reachable per
// spec.md §4.F.
func Expand(scheme Scheme, N int) (Scheme, error) {
	out := make(Scheme, len(scheme))
	for i, s := range scheme {
		expanded, err := ExpandSearch(s, N)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}

// ExpandSearch is Expand for a single search.
func ExpandSearch(s Search, N int) (Search, error) {
	p := len(s.Pi)
	if N < p {
		return Search{}, fmerr.Wrapf(fmerr.Precondition, "searchscheme: expand target %d smaller than pattern length %d", N, p)
	}
	if N == p {
		return s, nil
	}

	base := N / p
	rem := N % p
	sizes := make([]int, p)
	starts := make([]int, p)
	offset := 0
	for o := 0; o < p; o++ {
		sizes[o] = base
		if o < rem {
			sizes[o]++
		}
		starts[o] = offset
		offset += sizes[o]
	}

	newPi := make([]int, 0, N)
	newL := make([]int, 0, N)
	newU := make([]int, 0, N)
	prevL := 0
	for j, o := range s.Pi {
		last := starts[o] + sizes[o] - 1
		for k := starts[o]; k < starts[o]+sizes[o]; k++ {
			newPi = append(newPi, k)
			// U is a ceiling on cumulative error and cum is non-decreasing,
			// so broadcasting piece j's U to every one of its sub-positions
			// never rejects a prefix that would otherwise pass. L has no
			// such monotonicity in reverse: only the sub-position where
			// piece j actually finishes may demand piece j's bound, earlier
			// sub-positions still only owe what was already true when piece
			// j-1 finished.
			if k == last {
				newL = append(newL, s.L[j])
			} else {
				newL = append(newL, prevL)
			}
			newU = append(newU, s.U[j])
		}
		prevL = s.L[j]
	}

	return Search{Pi: newPi, L: newL, U: newU}, nil
}
