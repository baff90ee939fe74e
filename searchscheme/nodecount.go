package searchscheme

import "math"

// NodeCount returns the exact number of search-tree nodes a scheme
// visits over an alphabet of size sigma (spec.md §4.F). Edit selects
// between Hamming-distance branching (one matching child, sigma-1
// mismatching children per piece) and edit-distance branching (the
// Hamming children plus one insertion child).
func NodeCount(scheme Scheme, sigma int, edit bool) int {
	total := 0
	for _, s := range scheme {
		total += nodeCountSearch(s, sigma, edit)
	}
	return total
}

func nodeCountSearch(s Search, sigma int, edit bool) int {
	p := len(s.Pi)
	var f func(k, e int) int
	f = func(k, e int) int {
		count := 0
		// Hamming branching: 1 matching child (e'=e), sigma-1 mismatching
		// children (e'=e+1).
		branch := func(eNext int) {
			if eNext < s.L[k] || eNext > s.U[k] {
				return
			}
			count++
			if k+1 < p {
				count += f(k+1, eNext)
			}
		}
		branch(e)
		for c := 1; c < sigma; c++ {
			branch(e + 1)
		}
		if edit {
			// one extra insertion/deletion branch beyond the sigma
			// substitution attempts already counted above.
			branch(e + 1)
		}
		return count
	}
	return f(0, 0)
}

// WeightedNodeCount estimates the node count the way NodeCount does,
// but damps branching once it would explore more nodes than the text
// could possibly contain: past the depth at which sigma^depth exceeds
// textLen, the recursion simply stops descending rather than
// continuing to enumerate an exponential tree the text is too short to
// realize. Used only to rank candidate schemes against each other, not
// for an exact count.
func WeightedNodeCount(scheme Scheme, sigma, textLen int, edit bool) int {
	total := 0
	for _, s := range scheme {
		total += weightedNodeCountSearch(s, sigma, textLen, edit)
	}
	return total
}

func weightedNodeCountSearch(s Search, sigma, textLen int, edit bool) int {
	p := len(s.Pi)
	depthBudget := maxAffordableDepth(sigma, textLen)
	if depthBudget > p {
		depthBudget = p
	}

	var f func(k, e int) int
	f = func(k, e int) int {
		if k >= depthBudget {
			return 0
		}
		count := 0
		branch := func(eNext int) {
			if eNext < s.L[k] || eNext > s.U[k] {
				return
			}
			count++
			if k+1 < p {
				count += f(k+1, eNext)
			}
		}
		branch(e)
		for c := 1; c < sigma; c++ {
			branch(e + 1)
		}
		if edit {
			branch(e + 1)
		}
		return count
	}
	return f(0, 0)
}

// maxAffordableDepth returns the largest d with sigma^d <= textLen, at
// least 1.
func maxAffordableDepth(sigma, textLen int) int {
	if sigma <= 1 || textLen <= 1 {
		return 1
	}
	d := int(math.Log(float64(textLen)) / math.Log(float64(sigma)))
	for d > 0 && intPow(sigma, d) > textLen {
		d--
	}
	for intPow(sigma, d+1) <= textLen {
		d++
	}
	if d < 1 {
		d = 1
	}
	return d
}

func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
		if result < 0 { // overflow guard; textLen comparisons saturate
			return math.MaxInt
		}
	}
	return result
}
