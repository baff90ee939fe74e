// Package csa implements the compressed suffix array: a sampled SA plus
// an indicator bitvector sufficient to recover any BWT position's
// (sequence, offset) either directly (sampled) or after a bounded number
// of LF steps (unsampled), per spec.md §4.C.
package csa

import (
	"github.com/SGSSGene/fmindex-collection-sub003/bitvector"
	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
)

// Policy selects which SA positions get sampled at construction time.
type Policy int

const (
	// SampleByTextPosition samples i whenever SA[i] mod r == 0 (an
	// every-r-th text position).
	SampleByTextPosition Policy = iota
	// SampleBySAIndex samples i whenever i mod r == 0 (an every-r-th SA
	// index), regardless of what text position it names.
	SampleBySAIndex
)

// Location is the resolved (sequence, offset) pair CSA.Value returns for
// a sampled position.
type Location struct {
	SeqID  int
	Offset int
}

// CSA is the baseline compressed suffix array: one bitvector.Dense
// indicator plus a flat sample array in i-order, grounded on
// bitvector.Dense for the indicator (the same rank-supporting structure
// used throughout the module) and on spec.md §4.C's (indicatorBV,
// samplesArray, perSeqSizes) triple.
type CSA struct {
	n          int
	indicator  *bitvector.Dense
	samples    []int32 // samples[rank1(i)] = SA[i], only valid where indicator.Symbol(i)==1
	seqStarts  []int
	seqEnds    []int
}

// Build constructs a CSA from the full suffix array sa (over a
// concatenated, sentinel-delimited text of length n=len(sa)) using
// sampling rate r and the given policy. Each sequence's sentinel (text
// position seqEnds[i]-1) and first position (seqStarts[i]) are always
// sampled regardless of rate. seqStarts/seqEnds give, for each sequence
// id, its [start,end) offsets into the concatenated text.
func Build(sa []int32, r int, policy Policy, seqStarts, seqEnds []int) (*CSA, error) {
	if r <= 0 {
		return nil, fmerr.Wrap(fmerr.Precondition, "csa: sampling rate must be >= 1")
	}
	n := len(sa)

	// seqEnds is the exclusive end offset of each sequence (one past its
	// sentinel); the sentinel itself, always sampled, sits at seqEnds[i]-1.
	// Each sequence's first position is always sampled too, so an LF walk
	// never steps from a sequence start into the previous sentinel.
	alwaysSampled := make(map[int32]bool, len(seqEnds)+len(seqStarts))
	for _, e := range seqEnds {
		alwaysSampled[int32(e-1)] = true
	}
	for _, s := range seqStarts {
		alwaysSampled[int32(s)] = true
	}

	sampled := make([]bool, n)
	for i, textPos := range sa {
		if alwaysSampled[textPos] {
			sampled[i] = true
			continue
		}
		switch policy {
		case SampleBySAIndex:
			sampled[i] = i%r == 0
		default:
			sampled[i] = int(textPos)%r == 0
		}
	}

	indicator := bitvector.NewDense(n, func(i int) bool { return sampled[i] })

	samples := make([]int32, 0, n/r+len(seqEnds)+1)
	for i, textPos := range sa {
		if sampled[i] {
			samples = append(samples, textPos)
		}
	}

	return &CSA{
		n:         n,
		indicator: indicator,
		samples:   samples,
		seqStarts: append([]int(nil), seqStarts...),
		seqEnds:   append([]int(nil), seqEnds...),
	}, nil
}

// Len reports n, the total text length the CSA was built over.
func (c *CSA) Len() int { return c.n }

// IsSampled reports whether SA position i was retained at construction.
func (c *CSA) IsSampled(i int) bool {
	return c.indicator.Symbol(i) == 1
}

// Value resolves SA position i to (seqId, offsetInSeq) when i is
// sampled; ok is false ("unsampled") otherwise, per spec.md §4.C's
// value(i) -> optional<(seqId, offsetInSeq)>.
func (c *CSA) Value(i int) (loc Location, ok bool) {
	if i < 0 || i >= c.n || !c.IsSampled(i) {
		return Location{}, false
	}
	rank := c.indicator.Rank1(i)
	textPos := int(c.samples[rank])
	return c.resolve(textPos), true
}

func (c *CSA) resolve(textPos int) Location {
	lo, hi := 0, len(c.seqStarts)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.seqStarts[mid] <= textPos {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	seqID := lo - 1
	if seqID < 0 {
		seqID = 0
	}
	return Location{SeqID: seqID, Offset: textPos - c.seqStarts[seqID]}
}

// Serialize writes the CSA's triple (indicator bitvector words, sample
// array, per-sequence length table) via the given sink, matching the
// layout spec.md §7 calls out for the core's own serialize operation.
func (c *CSA) Serialize(w Sink) error {
	if err := w.WriteInt(c.n); err != nil {
		return err
	}
	if err := w.WriteInt(len(c.samples)); err != nil {
		return err
	}
	for _, s := range c.samples {
		if err := w.WriteInt(int(s)); err != nil {
			return err
		}
	}
	if err := w.WriteInt(len(c.seqStarts)); err != nil {
		return err
	}
	for i := range c.seqStarts {
		if err := w.WriteInt(c.seqStarts[i]); err != nil {
			return err
		}
		if err := w.WriteInt(c.seqEnds[i]); err != nil {
			return err
		}
	}
	bits := make([]bool, c.n)
	for i := 0; i < c.n; i++ {
		bits[i] = c.IsSampled(i)
	}
	return w.WriteBits(bits)
}

// Sink is the minimal write surface csa.Serialize needs; archive.Writer
// satisfies it.
type Sink interface {
	WriteInt(v int) error
	WriteBits(bits []bool) error
}

// Source is the minimal read surface Load needs; archive.Reader
// satisfies it.
type Source interface {
	ReadInt() (int, error)
	ReadBits(n int) ([]bool, error)
}

// Load reconstructs a CSA previously written by Serialize.
func Load(r Source) (*CSA, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	numSamples, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	samples := make([]int32, numSamples)
	for i := range samples {
		v, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		samples[i] = int32(v)
	}
	numSeqs, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	seqStarts := make([]int, numSeqs)
	seqEnds := make([]int, numSeqs)
	for i := 0; i < numSeqs; i++ {
		s, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		e, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		seqStarts[i] = s
		seqEnds[i] = e
	}
	bits, err := r.ReadBits(n)
	if err != nil {
		return nil, err
	}
	indicator := bitvector.NewDense(n, func(i int) bool { return bits[i] })

	return &CSA{
		n:         n,
		indicator: indicator,
		samples:   samples,
		seqStarts: seqStarts,
		seqEnds:   seqEnds,
	}, nil
}
