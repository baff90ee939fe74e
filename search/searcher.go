package search

import (
	"github.com/SGSSGene/fmindex-collection-sub003/flog"
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
	"github.com/SGSSGene/fmindex-collection-sub003/fmindex"
	"github.com/SGSSGene/fmindex-collection-sub003/searchscheme"
)

// Searcher executes a search scheme against a bidirectional index per
// spec.md §4.H.
type Searcher struct {
	idx      *fmindex.BiFMIndex
	sigma    int
	mode     Mode
	matrix   ScoringMatrix
	listener flog.Listener
}

// NewSearcher builds a Searcher for idx under mode. matrix is only
// consulted when mode is ScoringMatrixMode; pass the zero value otherwise.
// Search progress events are discarded; see NewSearcherWithListener to
// receive them.
func NewSearcher(idx *fmindex.BiFMIndex, mode Mode, matrix ScoringMatrix) *Searcher {
	return NewSearcherWithListener(idx, mode, matrix, flog.NullListener{})
}

// NewSearcherWithListener is NewSearcher plus a flog.Listener that
// receives a StageSearchStart/StageSearchEnd pair around each Search
// call (spec.md §9's event stages, generalized from construction to
// search).
func NewSearcherWithListener(idx *fmindex.BiFMIndex, mode Mode, matrix ScoringMatrix, listener flog.Listener) *Searcher {
	return &Searcher{idx: idx, sigma: idx.Sigma(), mode: mode, matrix: matrix, listener: listener}
}

// Search runs scheme, expanded to each query's own length, against
// every query and invokes cb for each accepted hit. Callback
// invocations are serial within one Search call, per spec.md §5.
func (s *Searcher) Search(queries [][]uint8, scheme searchscheme.Scheme, cb Callback) error {
	flog.Emit(s.listener, flog.NewEvent(flog.StageSearchStart, int64(len(queries)), ""))
	hits := 0
	countingCB := func(queryIndex int, cur fmindex.Cursor, errors int) {
		hits++
		cb(queryIndex, cur, errors)
	}

	for qi, query := range queries {
		expanded, err := searchscheme.Expand(scheme, len(query))
		if err != nil {
			flog.Emit(s.listener, flog.NewEvent(flog.StageSearchEnd, int64(hits), err.Error()))
			return fmerr.Wrapf(fmerr.Precondition, "search: expanding scheme for query %d: %v", qi, err)
		}
		if s.mode == Edit {
			s.searchQueryDedup(qi, query, expanded, countingCB)
			continue
		}
		for _, srch := range expanded {
			s.runSearch(qi, query, srch, countingCB)
		}
	}

	flog.Emit(s.listener, flog.NewEvent(flog.StageSearchEnd, int64(hits), ""))
	return nil
}

// cursorKey identifies a cursor's occurrence interval for dedup
// purposes: two cursors with the same key cover the same occurrences.
type cursorKey struct {
	lb, lbRev, len int
}

// searchQueryDedup runs every search in scheme against query and
// deduplicates hits that land on the same occurrence interval,
// keeping the minimum-error representative -- the practical form of
// spec.md §4.H's "canonicalize to earliest/shortest representative"
// rule available without a positional locate at search time.
func (s *Searcher) searchQueryDedup(qi int, query []uint8, scheme searchscheme.Scheme, cb Callback) {
	best := map[cursorKey]Hit{}
	collect := func(queryIndex int, cur fmindex.Cursor, errors int) {
		lb, lbRev, length := cur.ID()
		key := cursorKey{lb: lb, lbRev: lbRev, len: length}
		if existing, ok := best[key]; !ok || errors < existing.Errors {
			best[key] = Hit{QueryIndex: queryIndex, Cursor: cur, Errors: errors}
		}
	}
	for _, srch := range scheme {
		s.runSearch(qi, query, srch, collect)
	}
	for _, hit := range best {
		cb(hit.QueryIndex, hit.Cursor, hit.Errors)
	}
}

func (s *Searcher) runSearch(queryIndex int, query []uint8, srch searchscheme.Search, cb Callback) {
	if len(srch.Pi) != len(query) {
		return
	}

	var step func(k, loPos, hiPos, errors int, cur fmindex.Cursor)
	step = func(k, loPos, hiPos, errors int, cur fmindex.Cursor) {
		if cur.Empty() {
			return
		}
		if k == len(srch.Pi) {
			cb(queryIndex, cur, errors)
			return
		}

		pos := srch.Pi[k]
		dirRight := true
		newLo, newHi := loPos, hiPos
		switch {
		case k == 0:
			newLo, newHi = pos, pos
		case pos == hiPos+1:
			newHi = pos
		case pos == loPos-1:
			dirRight = false
			newLo = pos
		default:
			return // invalid scheme geometry
		}

		// Symbol 0 is the sentinel and never matched or substituted.
		for c := 1; c < s.sigma; c++ {
			cost := s.substCost(int(query[pos]), c)
			newErrors := errors + cost
			if newErrors < srch.L[k] || newErrors > srch.U[k] {
				continue
			}
			var next fmindex.Cursor
			if dirRight {
				next = s.idx.ExtendRight(cur, c)
			} else {
				next = s.idx.ExtendLeft(cur, c)
			}
			if next.Empty() {
				continue
			}
			step(k+1, newLo, newHi, newErrors, next)
		}

		if s.mode != Edit {
			return
		}

		// insertion: one extra text symbol not matched to any query
		// position; recurse at the same k with the cursor grown on the
		// current direction and no query position consumed. Bounded by
		// the remaining error budget so the recursion always terminates.
		if errors+1 <= srch.U[len(srch.U)-1] {
			for c := 1; c < s.sigma; c++ {
				var next fmindex.Cursor
				if dirRight {
					next = s.idx.ExtendRight(cur, c)
				} else {
					next = s.idx.ExtendLeft(cur, c)
				}
				if next.Empty() {
					continue
				}
				step(k, loPos, hiPos, errors+1, next)
			}
		}

		// deletion: skip this query position without consuming a text
		// symbol.
		if newErrors := errors + 1; newErrors <= srch.U[k] {
			step(k+1, newLo, newHi, newErrors, cur)
		}
	}

	step(0, 0, 0, 0, s.idx.FullCursor())
}

func (s *Searcher) substCost(q, c int) int {
	if s.mode == ScoringMatrixMode {
		return s.matrix.Cost(q, c)
	}
	if q == c {
		return 0
	}
	return 1
}
