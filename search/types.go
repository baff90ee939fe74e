// Package search implements the backtracking searcher of spec.md
// §4.H: it executes a search scheme against a bidirectional index
// under Hamming, edit, or scoring-matrix distance, plus the k-mer
// accelerator of §4.I.
package search

import "github.com/SGSSGene/fmindex-collection-sub003/fmindex"

// Mode selects the distance the backtracking driver enforces.
type Mode int

const (
	// Hamming allows only substitutions.
	Hamming Mode = iota
	// Edit allows substitution, insertion (text-only advance), and
	// deletion (query-only advance).
	Edit
	// ScoringMatrixMode allows only substitutions, costed by a caller
	// supplied Q x sigma table instead of a flat 0/1 mismatch cost.
	ScoringMatrixMode
)

// ScoringMatrix is the Q x sigma substitution-cost table of spec.md
// §4.H: Q may exceed sigma so a query symbol can match several
// reference symbols at cost 0 (e.g. IUPAC ambiguity codes).
type ScoringMatrix struct {
	q, sigma int
	cost     []int
}

// NewScoringMatrix builds the cost table by evaluating cost(q,c) for
// every (q,c) in [0,q) x [0,sigma).
func NewScoringMatrix(q, sigma int, cost func(q, c int) int) ScoringMatrix {
	table := make([]int, q*sigma)
	for i := 0; i < q; i++ {
		for j := 0; j < sigma; j++ {
			table[i*sigma+j] = cost(i, j)
		}
	}
	return ScoringMatrix{q: q, sigma: sigma, cost: table}
}

// Cost returns the substitution cost of reference symbol c against
// query symbol q.
func (m ScoringMatrix) Cost(q, c int) int {
	return m.cost[q*m.sigma+c]
}

// Hit is what Callback receives for each search-tree path that
// reaches the end of its search within its error budget.
type Hit struct {
	QueryIndex int
	Cursor     fmindex.Cursor
	Errors     int
}

// Callback is invoked once per accepted hit. cursor is only valid for
// the duration of the call.
type Callback func(queryIndex int, cursor fmindex.Cursor, errors int)
