// Package fmindex implements the FM-index core (§4.D), bidirectional
// extension, locate (linear and LocateFMTree, §4.E), and index
// serialization (§6), built atop rankstring, csa, and suffixarray.
package fmindex

import (
	"github.com/SGSSGene/fmindex-collection-sub003/csa"
	"github.com/SGSSGene/fmindex-collection-sub003/rankstring"
)

// RankStringBuilder constructs a rank-supporting string over s (each
// element in [0,sigma)); callers pick one of rankstring's five family
// members (or a custom one) and pass its constructor here, keeping
// fmindex generic over the encoding per spec.md §9's "trait-style
// polymorphism over rank strings" note.
type RankStringBuilder func(s []uint8, sigma int) rankstring.RankString

// CompressedSuffixArray is the capability fmindex needs from a
// compressed suffix array; both csa.CSA and csa.DenseCSA satisfy it.
type CompressedSuffixArray interface {
	Value(i int) (csa.Location, bool)
	Len() int
}

// side bundles the count array, rank-string, and CSA that together
// answer LF-mapping and locate for one direction (forward text, or
// per-sequence-reversed text for the bidirectional index's other half).
// Grounded on spec.md §4.D's "State: count array C[0..σ]; rank-string
// over BWT; CSA; total length n."
type side struct {
	sigma int
	n     int
	count []int
	rank  rankstring.RankString
	sa    CompressedSuffixArray
}

func newSide(bwt []uint8, sigma int, builder RankStringBuilder, sa CompressedSuffixArray) *side {
	count := make([]int, sigma+1)
	for _, c := range bwt {
		count[c+1]++
	}
	for c := 1; c <= sigma; c++ {
		count[c] += count[c-1]
	}
	return &side{
		sigma: sigma,
		n:     len(bwt),
		count: count,
		rank:  builder(bwt, sigma),
		sa:    sa,
	}
}

// lf applies the LF-mapping to position i: the BWT symbol at i
// determines which count-array bucket the step lands in.
func (s *side) lf(i int) int {
	c := s.rank.Symbol(i)
	return s.count[c] + s.rank.Rank(i, c)
}

// backwardSearch performs unidirectional backward search (spec.md
// §4.D): starting from the full range, shrinks it using LF on
// successive characters of query scanned right-to-left.
func (s *side) backwardSearch(query []uint8) (lb, length int) {
	lb, length = 0, s.n
	for k := len(query) - 1; k >= 0; k-- {
		if length == 0 {
			return 0, 0
		}
		c := int(query[k])
		newLb := s.count[c] + s.rank.Rank(lb, c)
		newUb := s.count[c] + s.rank.Rank(lb+length, c)
		lb, length = newLb, newUb-newLb
		if length < 0 {
			length = 0
		}
	}
	return lb, length
}
