package generator

import "github.com/SGSSGene/fmindex-collection-sub003/searchscheme"

// PigeonTrivial builds the classic pigeonhole scheme: split the
// pattern into maxK+1 pieces and, for each piece, one search that
// requires that piece to match exactly (the pigeonhole principle
// guarantees at least one piece is error-free for any match with at
// most maxK total errors) while leaving every other piece unrestricted
// up to maxK. Search i visits piece i first, then expands outward to
// keep pi's prefixes contiguous (isValid's connectivity requirement).
func PigeonTrivial(args ...int) (searchscheme.Scheme, error) {
	N, minK, maxK, err := wantNMinMax(args)
	if err != nil {
		return nil, err
	}
	p := maxK + 1
	if p > N {
		p = N
	}
	scheme := make(searchscheme.Scheme, 0, p)
	for i := 0; i < p; i++ {
		pi := expandOutward(i, p)
		l := make([]int, p)
		u := make([]int, p)
		for k := 0; k < p; k++ {
			if k == 0 {
				l[k] = 0
				u[k] = 0
			} else {
				if k == p-1 {
					l[k] = minK
				}
				u[k] = maxK
			}
		}
		search, err := searchscheme.ExpandSearch(searchscheme.Search{Pi: pi, L: l, U: u}, N)
		if err != nil {
			return nil, err
		}
		scheme = append(scheme, search)
	}
	return scheme, nil
}

// PigeonOpt is PigeonTrivial with a tighter lower bound: once j pieces
// have been visited, at least j-(p-1-i) of them must already carry an
// error if i's piece turns out not to be the free one, so l can rise
// earlier than plain pigeonhole allows instead of staying flat at
// minK until the last piece.
func PigeonOpt(args ...int) (searchscheme.Scheme, error) {
	N, minK, maxK, err := wantNMinMax(args)
	if err != nil {
		return nil, err
	}
	p := maxK + 1
	if p > N {
		p = N
	}
	scheme := make(searchscheme.Scheme, 0, p)
	for i := 0; i < p; i++ {
		pi := expandOutward(i, p)
		l := make([]int, p)
		u := make([]int, p)
		for k := 0; k < p; k++ {
			if k == 0 {
				l[k] = minK
			} else {
				tight := minK + k - (p - 1 - i)
				if tight < minK {
					tight = minK
				}
				l[k] = tight
			}
			u[k] = maxK
			if u[k] < l[k] {
				u[k] = l[k]
			}
		}
		search, err := searchscheme.ExpandSearch(searchscheme.Search{Pi: pi, L: l, U: u}, N)
		if err != nil {
			return nil, err
		}
		scheme = append(scheme, search)
	}
	return scheme, nil
}

// expandOutward returns a permutation of [0,p) that starts at start
// and alternately grows the visited contiguous block to the right and
// to the left, so every prefix is a contiguous interval.
func expandOutward(start, p int) []int {
	order := make([]int, 0, p)
	order = append(order, start)
	lo, hi := start, start
	goRight := true
	for len(order) < p {
		if goRight && hi+1 < p {
			hi++
			order = append(order, hi)
		} else if !goRight && lo-1 >= 0 {
			lo--
			order = append(order, lo)
		} else if hi+1 < p {
			hi++
			order = append(order, hi)
		} else if lo-1 >= 0 {
			lo--
			order = append(order, lo)
		}
		goRight = !goRight
	}
	return order
}

// ZeroOnesZero builds a single search over the pattern's N pieces in
// left-to-right order whose lower bound only rises once too few pieces
// remain to still reach minK: l[k] is 0 for as long as the N-1-k pieces
// still ahead of k could alone supply the rest of minK, and only climbs
// toward minK once that slack runs out, reaching minK exactly at the
// final piece. Holding l at minK any earlier than that would reject a
// pattern that legitimately defers its errors to the tail.
func ZeroOnesZero(args ...int) (searchscheme.Scheme, error) {
	N, minK, maxK, err := wantNMinMax(args)
	if err != nil {
		return nil, err
	}
	pi := make([]int, N)
	l := make([]int, N)
	u := make([]int, N)
	for k := 0; k < N; k++ {
		pi[k] = k
		remaining := N - 1 - k
		need := minK - remaining
		if need < 0 {
			need = 0
		}
		l[k] = need
		u[k] = maxK
	}
	return searchscheme.Scheme{{Pi: pi, L: l, U: u}}, nil
}
