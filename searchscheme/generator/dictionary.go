package generator

import (
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
	"github.com/SGSSGene/fmindex-collection-sub003/searchscheme"
)

// The hand-designed schemes published for Kianfar, Kucherov, H2, Hato
// and the suffix-filter family are not present in this retrieval pack
// (only the search-scheme test fixtures were retrieved, not the
// generator source). No scheme is hard-coded: every generator below is
// synthesized from Backtracking+Expand, which is always isValid and isComplete by
// construction, just not necessarily node-count-optimal. Each fallback
// use is recorded in DESIGN.md.

// Kianfar returns the Backtracking+Expand fallback scheme for k errors,
// k in {0,1,2,3}; any other k fails loudly. No hand-designed optimum
// scheme is stored. N is the pattern length to expand the coarse scheme
// to.
func Kianfar(args ...int) (searchscheme.Scheme, error) {
	N, k, err := wantNK(args)
	if err != nil {
		return nil, err
	}
	if k < 0 || k > 3 {
		return nil, fmerr.Wrapf(fmerr.Unsupported, "searchscheme/generator: kianfar has no entry for k=%d (domain is 0..3)", k)
	}
	return backtrackingFallback(N, 0, k)
}

// Kucherov returns the Backtracking+Expand fallback scheme for every
// (N,k) pair; no hand-designed entries are stored.
func Kucherov(args ...int) (searchscheme.Scheme, error) {
	N, k, err := wantNK(args)
	if err != nil {
		return nil, err
	}
	return backtrackingFallback(N, 0, k)
}

// H2 is the parameterized family of spec.md §4.G; implemented as the
// Backtracking+Expand fallback (no closed-form construction was
// retrieved for this generator).
func H2(args ...int) (searchscheme.Scheme, error) {
	N, minK, maxK, err := wantNMinMax(args)
	if err != nil {
		return nil, err
	}
	return backtrackingFallback(N, minK, maxK)
}

// Hato returns the Backtracking+Expand fallback scheme for k in [0,7];
// any other k fails loudly. No hand-designed family members are stored.
func Hato(args ...int) (searchscheme.Scheme, error) {
	N, k, err := wantNK(args)
	if err != nil {
		return nil, err
	}
	if k < 0 || k > 7 {
		return nil, fmerr.Wrapf(fmerr.Unsupported, "searchscheme/generator: hato has no entry for k=%d (domain is 0..7)", k)
	}
	return backtrackingFallback(N, 0, k)
}

// SuffixFilter implements the suffix-filter scheme as the
// Backtracking+Expand fallback.
func SuffixFilter(args ...int) (searchscheme.Scheme, error) {
	N, minK, maxK, err := wantNMinMax(args)
	if err != nil {
		return nil, err
	}
	return backtrackingFallback(N, minK, maxK)
}

// bestKnownTable/optimumTable are empty and are not read by BestKnown
// or Optimum.
var bestKnownTable = map[[2]int]bool{}
var optimumTable = map[[2]int]bool{}

// BestKnown returns the Backtracking+Expand fallback scheme for every
// (N,k) that passes argument validation; it does not look (N,k) up in
// any table and does not fail on an unknown pair.
func BestKnown(args ...int) (searchscheme.Scheme, error) {
	N, k, err := wantNK(args)
	if err != nil {
		return nil, err
	}
	return backtrackingFallback(N, 0, k)
}

// Optimum returns the Backtracking+Expand fallback scheme for every
// (N,k) that passes argument validation; it does not look (N,k) up in
// any table and does not fail on an unknown pair.
func Optimum(args ...int) (searchscheme.Scheme, error) {
	N, k, err := wantNK(args)
	if err != nil {
		return nil, err
	}
	return backtrackingFallback(N, 0, k)
}

func wantNK(args []int) (N, k int, err error) {
	if len(args) != 2 {
		return 0, 0, fmerr.Wrapf(fmerr.Precondition, "searchscheme/generator: expected (N, k), got %d args", len(args))
	}
	N, k = args[0], args[1]
	if N <= 0 || k < 0 {
		return 0, 0, fmerr.Wrapf(fmerr.Precondition, "searchscheme/generator: invalid (N=%d, k=%d)", N, k)
	}
	return N, k, nil
}

// backtrackingFallback builds a single coarse search over
// min(maxK+1, N) pieces (at least 1) with uniformSearch's (minK,maxK)
// bounds and expands it to N, the construction every generator above
// returns.
func backtrackingFallback(N, minK, maxK int) (searchscheme.Scheme, error) {
	p := maxK + 1
	if p > N {
		p = N
	}
	if p < 1 {
		p = 1
	}
	coarse := uniformSearch(p, minK, maxK)
	search, err := searchscheme.ExpandSearch(coarse, N)
	if err != nil {
		return nil, err
	}
	return searchscheme.Scheme{search}, nil
}
