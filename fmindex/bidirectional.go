package fmindex

import (
	"github.com/SGSSGene/fmindex-collection-sub003/csa"
	"github.com/SGSSGene/fmindex-collection-sub003/flog"
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
	"github.com/SGSSGene/fmindex-collection-sub003/sequence"
	"github.com/SGSSGene/fmindex-collection-sub003/suffixarray"
	"github.com/SGSSGene/fmindex-collection-sub003/workerpool"
)

// Cursor is the bidirectional occurrence interval of spec.md §3: a value
// type cheap to copy, carrying no pointers into index internals (spec.md
// §9 "Cursors as value types").
type Cursor struct {
	lb, lbRev, len int
}

// Count returns the number of occurrences the cursor currently covers.
func (c Cursor) Count() int { return c.len }

// Empty reports whether the cursor is the sentinel empty cursor.
func (c Cursor) Empty() bool { return c.len == 0 }

// ID returns the cursor's raw (lb, lbRev, len) triple: two cursors
// with equal IDs cover the same occurrence interval. Exposed for
// callers (package search's hit dedup) that need cursor identity
// without reaching into index internals.
func (c Cursor) ID() (lb, lbRev, len int) { return c.lb, c.lbRev, c.len }

// BiFMIndex is the bidirectional FM-index: a forward side over the
// concatenated text and a reverse side over each sequence reversed, per
// spec.md §4.D.
type BiFMIndex struct {
	fwd, rev *side
}

// NewBiFMIndex builds both directions of coll's text, sampling each
// side's CSA at rate r under policy. Construction runs sequentially with
// progress events discarded; see NewBiFMIndexWithPool for
// direction-parallel construction and progress reporting.
func NewBiFMIndex(coll *sequence.Collection, builder RankStringBuilder, r int, policy csa.Policy) (*BiFMIndex, error) {
	return NewBiFMIndexWithPool(coll, builder, r, policy, workerpool.New(1), flog.NullListener{})
}

// NewBiFMIndexWithPool builds both directions of coll's text as
// NewBiFMIndex does, but runs the forward and reverse side builds as up
// to two concurrent jobs under pool (spec.md §5's "construction
// parallelism"), and reports progress through listener at each
// construction milestone (spec.md §9's event stages).
func NewBiFMIndexWithPool(coll *sequence.Collection, builder RankStringBuilder, r int, policy csa.Policy, pool workerpool.Pool, listener flog.Listener) (*BiFMIndex, error) {
	if coll.Len() == 0 {
		return nil, fmerr.Wrap(fmerr.Precondition, "fmindex: empty input text")
	}
	flog.Emit(listener, flog.NewEvent(flog.StageCollectionBuilt, int64(coll.Len()), ""))

	seqStarts := make([]int, coll.SeqCount())
	seqEnds := make([]int, coll.SeqCount())
	for i := 0; i < coll.SeqCount(); i++ {
		seqStarts[i] = coll.SeqStart(i)
		seqEnds[i] = coll.SeqEnd(i)
	}

	var fwd, rev *side
	err := pool.Run(2, func(i int) error {
		if i == 0 {
			s, err := buildSide(coll.Concat(), coll.Sigma(), builder, r, policy, seqStarts, seqEnds, listener)
			if err != nil {
				return err
			}
			fwd = s
			return nil
		}
		s, err := buildSide(reverseEachSequence(coll), coll.Sigma(), builder, r, policy, seqStarts, seqEnds, listener)
		if err != nil {
			return err
		}
		rev = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	flog.Emit(listener, flog.NewEvent(flog.StageIndexBuilt, int64(coll.Len()), ""))
	return &BiFMIndex{fwd: fwd, rev: rev}, nil
}

// buildSide builds one direction's side (suffix array, BWT, CSA, rank
// string), emitting a progress event after each milestone.
func buildSide(text []uint8, sigma int, builder RankStringBuilder, r int, policy csa.Policy, seqStarts, seqEnds []int, listener flog.Listener) (*side, error) {
	sa := suffixarray.Build(text)
	flog.Emit(listener, flog.NewEvent(flog.StageSuffixArrayBuilt, int64(len(sa)), ""))

	bwt := suffixarray.BWT(text, sa)
	flog.Emit(listener, flog.NewEvent(flog.StageBWTBuilt, int64(len(bwt)), ""))

	c, err := csa.Build(sa, r, policy, seqStarts, seqEnds)
	if err != nil {
		return nil, err
	}
	flog.Emit(listener, flog.NewEvent(flog.StageCSABuilt, int64(c.Len()), ""))

	s := newSide(bwt, sigma, builder, c)
	flog.Emit(listener, flog.NewEvent(flog.StageRankStringBuilt, int64(len(bwt)), ""))
	return s, nil
}

// reverseEachSequence builds the text used by the reverse side: every
// sequence reversed in place, its sentinel left at the end, so sequence
// boundaries (and hence CSA sampling/resolution) line up identically
// between the forward and reverse texts.
func reverseEachSequence(coll *sequence.Collection) []uint8 {
	src := coll.Concat()
	out := make([]uint8, len(src))
	for i := 0; i < coll.SeqCount(); i++ {
		start, end := coll.SeqStart(i), coll.SeqEnd(i)
		seqLen := coll.SeqLen(i)
		for j := 0; j < seqLen; j++ {
			out[start+j] = src[end-2-j]
		}
		out[end-1] = src[end-1] // sentinel
	}
	return out
}

// FullCursor returns the cursor covering the entire indexed text.
func (idx *BiFMIndex) FullCursor() Cursor {
	return Cursor{lb: 0, lbRev: 0, len: idx.fwd.n}
}

// Sigma returns the alphabet size the index was built over.
func (idx *BiFMIndex) Sigma() int { return idx.fwd.sigma }

// ExtendLeft extends cur by symbol c on the left: the new forward range
// is one LF step on the forward rank-string, and lbRev is adjusted by the
// difference of forward prefix-ranks at the cursor's two endpoints.
func (idx *BiFMIndex) ExtendLeft(cur Cursor, c int) Cursor {
	if cur.len == 0 {
		return Cursor{}
	}
	ranksLo, prefixLo := idx.fwd.rank.AllRanksAndPrefixRanks(cur.lb)
	ranksHi, prefixHi := idx.fwd.rank.AllRanksAndPrefixRanks(cur.lb + cur.len)

	newLen := ranksHi[c] - ranksLo[c]
	if newLen <= 0 {
		return Cursor{}
	}
	return Cursor{
		lb:    idx.fwd.count[c] + ranksLo[c],
		lbRev: cur.lbRev + (prefixHi[c] - prefixLo[c]),
		len:   newLen,
	}
}

// ExtendRight is ExtendLeft's mirror, extending cur by symbol c on the
// right: the new reverse range comes from the reverse rank-string, and lb
// is adjusted by the difference of reverse prefix-ranks.
func (idx *BiFMIndex) ExtendRight(cur Cursor, c int) Cursor {
	if cur.len == 0 {
		return Cursor{}
	}
	ranksLo, prefixLo := idx.rev.rank.AllRanksAndPrefixRanks(cur.lbRev)
	ranksHi, prefixHi := idx.rev.rank.AllRanksAndPrefixRanks(cur.lbRev + cur.len)

	newLen := ranksHi[c] - ranksLo[c]
	if newLen <= 0 {
		return Cursor{}
	}
	return Cursor{
		lb:    cur.lb + (prefixHi[c] - prefixLo[c]),
		lbRev: idx.rev.count[c] + ranksLo[c],
		len:   newLen,
	}
}

// Count backward-searches query (right-to-left) from the full cursor and
// returns the resulting occurrence count.
func (idx *BiFMIndex) Count(query []uint8) int {
	cur := idx.FullCursor()
	for k := len(query) - 1; k >= 0; k-- {
		if cur.Empty() {
			return 0
		}
		cur = idx.ExtendLeft(cur, int(query[k]))
	}
	return cur.len
}

// Locate resolves every occurrence a cursor covers via linear LF
// stepping on the forward side.
func (idx *BiFMIndex) Locate(cur Cursor) []csa.Location {
	return locateRangeLinear(idx.fwd, cur.lb, cur.len)
}

// LocateFMTree resolves every occurrence a cursor covers via the batched
// tree-walk strategy of spec.md §4.E.
func (idx *BiFMIndex) LocateFMTree(cur Cursor, depthBound int) []csa.Location {
	return locateFMTree(idx.fwd, cur.lb, cur.len, depthBound)
}
