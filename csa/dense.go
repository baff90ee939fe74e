package csa

import "github.com/SGSSGene/fmindex-collection-sub003/bitvector"

// DenseCSA is the space-optimized CSA variant spec.md §4.C calls out:
// same (indicator, sample) structure as CSA, but samples are stored as
// bit-packed (seqId, offsetInSeq) pairs instead of raw int32 text
// positions, with the offset field sized to bitWidth(maxSeqLen+1) bits
// rather than a full machine word. Grounded on rankstring.EPR's packed
// bit-lane layout (same "bitsFor(n) per lane packed into 64-bit words"
// technique, reused here for SA samples instead of rank-string symbols).
type DenseCSA struct {
	n           int
	indicator   *bitvector.Dense
	seqStarts   []int
	seqEnds     []int
	seqBits     int
	offBits     int
	perWord     int
	packedWords []uint64
	numSamples  int
}

// BuildDense is Build's space-optimized counterpart: identical sampling
// policy, but packs each sample as (seqId, offset) at
// bitWidth(len(seqStarts)) + bitWidth(maxSeqLen+1) bits instead of one
// int32 text position.
func BuildDense(sa []int32, r int, policy Policy, seqStarts, seqEnds []int) (*DenseCSA, error) {
	c, err := Build(sa, r, policy, seqStarts, seqEnds)
	if err != nil {
		return nil, err
	}

	maxSeqLen := 1
	for i := range seqStarts {
		if l := seqEnds[i] - seqStarts[i]; l > maxSeqLen {
			maxSeqLen = l
		}
	}
	numSeqs := len(seqStarts)
	if numSeqs < 1 {
		numSeqs = 1
	}

	seqBits := bitWidth(numSeqs)
	offBits := bitWidth(maxSeqLen + 1)
	width := seqBits + offBits
	perWord := 64 / width
	if perWord == 0 {
		perWord = 1
	}

	numSamples := len(c.samples)
	numWords := (numSamples + perWord - 1) / perWord
	if numWords == 0 {
		numWords = 1
	}
	packed := make([]uint64, numWords)

	for idx, textPos := range c.samples {
		loc := c.resolve(int(textPos))
		val := uint64(loc.SeqID)<<uint(offBits) | uint64(loc.Offset)
		w := idx / perWord
		off := uint(idx%perWord) * uint(width)
		packed[w] |= val << off
	}

	return &DenseCSA{
		n:           c.n,
		indicator:   c.indicator,
		seqStarts:   c.seqStarts,
		seqEnds:     c.seqEnds,
		seqBits:     seqBits,
		offBits:     offBits,
		perWord:     perWord,
		packedWords: packed,
		numSamples:  numSamples,
	}, nil
}

func bitWidth(n int) int {
	b := 0
	for (1 << uint(b)) < n {
		b++
	}
	if b == 0 {
		b = 1
	}
	return b
}

func (d *DenseCSA) Len() int { return d.n }

func (d *DenseCSA) IsSampled(i int) bool { return d.indicator.Symbol(i) == 1 }

// Value resolves SA position i exactly as CSA.Value does, decoding the
// packed (seqId, offset) pair instead of resolving a raw text position.
func (d *DenseCSA) Value(i int) (Location, bool) {
	if i < 0 || i >= d.n || !d.IsSampled(i) {
		return Location{}, false
	}
	rank := d.indicator.Rank1(i)
	width := d.seqBits + d.offBits
	w := rank / d.perWord
	off := uint(rank%d.perWord) * uint(width)
	val := d.packedWords[w] >> off
	offMask := uint64(1)<<uint(d.offBits) - 1
	offset := int(val & offMask)
	seqID := int(val >> uint(d.offBits))
	return Location{SeqID: seqID, Offset: offset}, true
}
