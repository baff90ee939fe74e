// Package generator implements the search-scheme generator registry of
// spec.md §4.G: a name -> generator function map producing schemes for
// a given (N, minK, maxK) (or (N,k), or k alone, depending on the
// generator's own parameterization).
package generator

import (
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
	"github.com/SGSSGene/fmindex-collection-sub003/searchscheme"
)

// Func is a generator entry point. args is interpreted positionally
// per-generator (N,minK,maxK / N,k / k), matching Registry's recorded
// arity for that name.
type Func func(args ...int) (searchscheme.Scheme, error)

// Registry maps a generator name to its function. Callers should use
// Generate rather than indexing this map directly, so an unknown name
// produces a structured error instead of a nil-map panic.
var Registry = map[string]Func{
	"backtracking":  Backtracking,
	"pigeon_trivial": PigeonTrivial,
	"pigeon_opt":    PigeonOpt,
	"zeroOnesZero":  ZeroOnesZero,
	"kianfar":       Kianfar,
	"kucherov":      Kucherov,
	"h2":            H2,
	"hato":          Hato,
	"suffixFilter":  SuffixFilter,
	"bestKnown":     BestKnown,
	"optimum":       Optimum,
}

// Generate looks up name in Registry and invokes it with args.
func Generate(name string, args ...int) (searchscheme.Scheme, error) {
	fn, ok := Registry[name]
	if !ok {
		return nil, fmerr.Wrapf(fmerr.Unsupported, "searchscheme/generator: unknown generator %q", name)
	}
	return fn(args...)
}

// Backtracking is the trivial single-search generator of spec.md
// §4.G: a single search over pi=[0..N), l=0 on every piece except the
// last, which carries minK, and u=maxK repeated N times.
func Backtracking(args ...int) (searchscheme.Scheme, error) {
	N, minK, maxK, err := wantNMinMax(args)
	if err != nil {
		return nil, err
	}
	return searchscheme.Scheme{uniformSearch(N, minK, maxK)}, nil
}

func uniformSearch(N, minK, maxK int) searchscheme.Search {
	pi := make([]int, N)
	l := make([]int, N)
	u := make([]int, N)
	for k := 0; k < N; k++ {
		pi[k] = k
		// l is non-decreasing and must reach minK only once every piece
		// has been consumed; holding it at minK from k=0 would reject
		// any error pattern that places its error on a later piece.
		if k == N-1 {
			l[k] = minK
		}
		u[k] = maxK
	}
	return searchscheme.Search{Pi: pi, L: l, U: u}
}

func wantNMinMax(args []int) (N, minK, maxK int, err error) {
	if len(args) != 3 {
		return 0, 0, 0, fmerr.Wrapf(fmerr.Precondition, "searchscheme/generator: expected (N, minK, maxK), got %d args", len(args))
	}
	N, minK, maxK = args[0], args[1], args[2]
	if N <= 0 || minK < 0 || maxK < minK {
		return 0, 0, 0, fmerr.Wrapf(fmerr.Precondition, "searchscheme/generator: invalid (N=%d, minK=%d, maxK=%d)", N, minK, maxK)
	}
	return N, minK, maxK, nil
}
