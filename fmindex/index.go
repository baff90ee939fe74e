package fmindex

import (
	"golang.org/x/exp/slices"

	"github.com/SGSSGene/fmindex-collection-sub003/csa"
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
	"github.com/SGSSGene/fmindex-collection-sub003/sequence"
	"github.com/SGSSGene/fmindex-collection-sub003/suffixarray"
)

// Index is the unidirectional FM-index: count array, rank-string over
// BWT, and CSA, supporting count and locate but not bidirectional
// extension (see BiFMIndex for that).
type Index struct {
	fwd *side
}

// NewIndex builds a unidirectional Index over coll's concatenated text,
// sampling the suffix array at rate r under policy, and encoding the BWT
// with the rank-string family member builder produces.
func NewIndex(coll *sequence.Collection, builder RankStringBuilder, r int, policy csa.Policy) (*Index, error) {
	if coll.Len() == 0 {
		return nil, fmerr.Wrap(fmerr.Precondition, "fmindex: empty input text")
	}

	text := coll.Concat()
	sa := suffixarray.Build(text)
	bwt := suffixarray.BWT(text, sa)

	seqStarts := make([]int, coll.SeqCount())
	seqEnds := make([]int, coll.SeqCount())
	for i := 0; i < coll.SeqCount(); i++ {
		seqStarts[i] = coll.SeqStart(i)
		seqEnds[i] = coll.SeqEnd(i)
	}

	c, err := csa.Build(sa, r, policy, seqStarts, seqEnds)
	if err != nil {
		return nil, err
	}

	return &Index{fwd: newSide(bwt, coll.Sigma(), builder, c)}, nil
}

// Count returns the number of occurrences of query in the indexed text.
func (idx *Index) Count(query []uint8) int {
	_, length := idx.fwd.backwardSearch(query)
	return length
}

// Locate returns every occurrence of query as a (seqId, offset) pair,
// via the linear strategy of spec.md §4.D: repeated LF stepping from
// each position in the match range until a sampled position is found.
func (idx *Index) Locate(query []uint8) []csa.Location {
	lb, length := idx.fwd.backwardSearch(query)
	return locateRangeLinear(idx.fwd, lb, length)
}

func locateRangeLinear(s *side, lb, length int) []csa.Location {
	out := make([]csa.Location, 0, length)
	for i := lb; i < lb+length; i++ {
		pos, k := i, 0
		for {
			if loc, ok := s.sa.Value(pos); ok {
				out = append(out, csa.Location{SeqID: loc.SeqID, Offset: loc.Offset + k})
				break
			}
			pos = s.lf(pos)
			k++
		}
	}
	sortLocations(out)
	return out
}

// compareLocations orders locations by sequence then offset, giving both
// locate strategies a reproducible output order regardless of which
// occurrence position happened to resolve first.
func compareLocations(a, b csa.Location) int {
	if a.SeqID != b.SeqID {
		return a.SeqID - b.SeqID
	}
	return a.Offset - b.Offset
}

func sortLocations(locs []csa.Location) {
	slices.SortFunc(locs, compareLocations)
}

// LocateFMTree is the batched locate strategy of spec.md §4.E,
// accelerating the linear strategy by grouping positions that share a
// current BWT symbol into one recursive step instead of resolving each
// position's LF chain independently. depthBound caps how many levels of
// symbol-grouping are attempted before falling back to per-position LF
// stepping for whatever remains unsampled; the fallback preserves the
// "output multiset equals linear locate" guarantee regardless of the
// bound chosen.
func (idx *Index) LocateFMTree(query []uint8, depthBound int) []csa.Location {
	lb, length := idx.fwd.backwardSearch(query)
	return locateFMTree(idx.fwd, lb, length, depthBound)
}

type fmTreeEntry struct {
	pos   int
	depth int
}

func locateFMTree(s *side, lb, length, depthBound int) []csa.Location {
	entries := make([]fmTreeEntry, length)
	for i := 0; i < length; i++ {
		entries[i] = fmTreeEntry{pos: lb + i, depth: 0}
	}
	out := make([]csa.Location, 0, length)
	walkFMTree(s, entries, depthBound, &out)
	sortLocations(out)
	return out
}

func walkFMTree(s *side, entries []fmTreeEntry, depthBound int, out *[]csa.Location) {
	if len(entries) == 0 {
		return
	}

	remaining := entries[:0:0]
	for _, e := range entries {
		if loc, ok := s.sa.Value(e.pos); ok {
			*out = append(*out, csa.Location{SeqID: loc.SeqID, Offset: loc.Offset + e.depth})
		} else {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		return
	}

	if remaining[0].depth >= depthBound {
		for _, e := range remaining {
			pos, depth := e.pos, e.depth
			for {
				pos = s.lf(pos)
				depth++
				if loc, ok := s.sa.Value(pos); ok {
					*out = append(*out, csa.Location{SeqID: loc.SeqID, Offset: loc.Offset + depth})
					break
				}
			}
		}
		return
	}

	groups := make(map[int][]fmTreeEntry, s.sigma)
	for _, e := range remaining {
		c := s.rank.Symbol(e.pos)
		groups[c] = append(groups[c], e)
	}
	for _, grp := range groups {
		next := make([]fmTreeEntry, len(grp))
		for i, e := range grp {
			next[i] = fmTreeEntry{pos: s.lf(e.pos), depth: e.depth + 1}
		}
		walkFMTree(s, next, depthBound, out)
	}
}
