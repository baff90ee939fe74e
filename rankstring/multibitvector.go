package rankstring

import "github.com/SGSSGene/fmindex-collection-sub003/bitvector"

// MultiBitvector is rank-string family member 1: one dense bitvector per
// symbol. Rank(i,c) is a single Rank1 call on bitvector c; PrefixRank and
// the bulk variants fall back to sigma Rank1 calls each, since there is no
// shared layout to amortize across symbols.
type MultiBitvector struct {
	n      int
	sigma  int
	planes []*bitvector.Dense
}

// NewMultiBitvector builds one bitvector per symbol from s (each element
// in [0,sigma)).
func NewMultiBitvector(s []uint8, sigma int) *MultiBitvector {
	m := &MultiBitvector{n: len(s), sigma: sigma, planes: make([]*bitvector.Dense, sigma)}
	for c := 0; c < sigma; c++ {
		c := c
		m.planes[c] = bitvector.NewDense(len(s), func(i int) bool { return int(s[i]) == c })
	}
	return m
}

func (m *MultiBitvector) Size() int  { return m.n }
func (m *MultiBitvector) Sigma() int { return m.sigma }

func (m *MultiBitvector) Symbol(i int) int {
	for c := 0; c < m.sigma; c++ {
		if m.planes[c].Symbol(i) == 1 {
			return c
		}
	}
	panic("rankstring: MultiBitvector position not covered by any plane")
}

func (m *MultiBitvector) Rank(i, c int) int {
	return m.planes[c].Rank1(i)
}

func (m *MultiBitvector) PrefixRank(i, c int) int {
	sum := 0
	for cc := 0; cc < c; cc++ {
		sum += m.planes[cc].Rank1(i)
	}
	return sum
}

func (m *MultiBitvector) AllRanks(i int) []int {
	out := make([]int, m.sigma)
	for c := 0; c < m.sigma; c++ {
		out[c] = m.planes[c].Rank1(i)
	}
	return out
}

func (m *MultiBitvector) AllRanksAndPrefixRanks(i int) ([]int, []int) {
	return naiveAllRanksAndPrefixRanks(m, i)
}

func (m *MultiBitvector) Prefetch(i int) {
	for _, p := range m.planes {
		p.Prefetch(i)
	}
}
