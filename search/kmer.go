package search

import (
	"github.com/SGSSGene/fmindex-collection-sub003/csa"
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
	"github.com/SGSSGene/fmindex-collection-sub003/fmindex"
)

// KMerAccelerator precomputes, for every k-mer over the index's
// alphabet, the cursor reached after extending the full cursor right
// by that k-mer's symbols (spec.md §4.I). Queries of length >= k begin
// with one table fetch instead of k individual ExtendRight calls.
type KMerAccelerator struct {
	idx   *fmindex.BiFMIndex
	k     int
	sigma int
	table []fmindex.Cursor
}

// NewKMerAccelerator builds the table for the given k. Table size is
// sigma^k cursors; k is expected to be a small, fixed constant chosen
// by the caller.
func NewKMerAccelerator(idx *fmindex.BiFMIndex, k int) (*KMerAccelerator, error) {
	if k <= 0 {
		return nil, fmerr.Wrapf(fmerr.Precondition, "search: kmer accelerator requires k > 0, got %d", k)
	}
	sigma := idx.Sigma()
	size := intPow(sigma, k)
	table := make([]fmindex.Cursor, size)

	symbols := make([]uint8, k)
	var fill func(pos int)
	fill = func(pos int) {
		if pos == k {
			cur := idx.FullCursor()
			for i := 0; i < k && !cur.Empty(); i++ {
				cur = idx.ExtendRight(cur, int(symbols[i]))
			}
			table[packKMer(symbols, sigma)] = cur
			return
		}
		for c := 0; c < sigma; c++ {
			symbols[pos] = uint8(c)
			fill(pos + 1)
		}
	}
	fill(0)

	return &KMerAccelerator{idx: idx, k: k, sigma: sigma, table: table}, nil
}

func packKMer(symbols []uint8, sigma int) int {
	idx := 0
	for _, c := range symbols {
		idx = idx*sigma + int(c)
	}
	return idx
}

func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// cursorFor extends query's result beyond the first k symbols (looked
// up in the table) by continuing ExtendRight over the remainder.
func (a *KMerAccelerator) cursorFor(query []uint8) fmindex.Cursor {
	if len(query) < a.k {
		cur := a.idx.FullCursor()
		for i := 0; i < len(query) && !cur.Empty(); i++ {
			cur = a.idx.ExtendRight(cur, int(query[i]))
		}
		return cur
	}

	cur := a.table[packKMer(query[:a.k], a.sigma)]
	for i := a.k; i < len(query) && !cur.Empty(); i++ {
		cur = a.idx.ExtendRight(cur, int(query[i]))
	}
	return cur
}

// Count returns the number of occurrences of query, accelerated by
// the k-mer table. Identical to the non-accelerated idx.Count applied
// to the reverse-complement-free forward extension of query.
func (a *KMerAccelerator) Count(query []uint8) int {
	return a.cursorFor(query).Count()
}

// Locate resolves every occurrence of query, accelerated by the k-mer
// table.
func (a *KMerAccelerator) Locate(query []uint8) []csa.Location {
	return a.idx.Locate(a.cursorFor(query))
}
