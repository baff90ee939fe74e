// Package bitvector implements the cache-friendly rank/select bit sequence
// that every rank-string encoding in package rankstring is built from. The
// layout mirrors the word-at-a-time buffering the teacher's bitstream
// reader/writer use (64-bit cached words, a running "consumed" counter)
// but adds the cumulative block/superblock counters needed for O(1) rank1.
package bitvector

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// hasPopcnt gates Select1's in-word search between a popcount-based
// binary narrowing (cheap when the hardware has a fast popcount) and a
// plain linear bit scan, the same capability-gate pattern
// coregx-coregex's SIMD matchers use for their own cpu.X86.Has* flags.
var hasPopcnt = cpu.X86.HasPOPCNT

const (
	_WORD_BITS       = 64
	_BLOCK_WORDS     = 8           // one rank block = 8 words = 512 bits
	_BLOCK_BITS      = _BLOCK_WORDS * _WORD_BITS
	_SUPERBLOCK_BITS = _BLOCK_BITS * 64 // one superblock = 64 blocks
)

// Dense is a bitvector of fixed length n supporting O(1) rank1/symbol and
// O(log n) select1 (binary search over superblock counters, refined by a
// linear scan over blocks and words).
type Dense struct {
	n           int
	words       []uint64
	blockRank   []uint32 // cumulative count of set bits before each block, relative to its superblock
	superRank   []uint64 // cumulative count of set bits before each superblock
	onesTotal   int
}

// NewDense builds a Dense bitvector of length n from bits, where bits[i]
// indicates whether position i is set. Construction is O(n); large buffers
// are allocated exactly once here and never grown afterwards.
func NewDense(n int, bits_ func(i int) bool) *Dense {
	d := &Dense{n: n}
	d.words = make([]uint64, (n+_WORD_BITS-1)/_WORD_BITS)

	for i := 0; i < n; i++ {
		if bits_(i) {
			d.words[i/_WORD_BITS] |= 1 << uint(i%_WORD_BITS)
		}
	}

	d.buildRankIndex()
	return d
}

// NewDenseFromWords builds a Dense bitvector directly from a packed word
// slice (length n bits, ceil(n/64) words). The slice is taken by reference.
func NewDenseFromWords(n int, words []uint64) *Dense {
	d := &Dense{n: n, words: words}
	d.buildRankIndex()
	return d
}

func (d *Dense) buildRankIndex() {
	numBlocks := (d.n + _BLOCK_BITS - 1) / _BLOCK_BITS
	if numBlocks == 0 {
		numBlocks = 1
	}
	d.blockRank = make([]uint32, numBlocks+1)
	numSuper := numBlocks/64 + 1
	d.superRank = make([]uint64, numSuper+1)

	var superCount uint64
	var blockCount uint32
	total := 0

	for b := 0; b < numBlocks; b++ {
		if b%64 == 0 {
			d.superRank[b/64] = superCount
			blockCount = 0
		}
		d.blockRank[b] = blockCount

		wstart := b * _BLOCK_WORDS
		wend := wstart + _BLOCK_WORDS
		if wend > len(d.words) {
			wend = len(d.words)
		}
		c := uint32(0)
		for w := wstart; w < wend; w++ {
			c += uint32(bits.OnesCount64(d.words[w]))
		}
		blockCount += c
		superCount += uint64(c)
		total += int(c)
	}

	d.blockRank[numBlocks] = blockCount
	for s := (numBlocks + 63) / 64; s < numSuper; s++ {
		d.superRank[s] = superCount
	}
	d.superRank[numSuper] = superCount
	d.onesTotal = total
}

// Len returns n.
func (d *Dense) Len() int { return d.n }

// Symbol returns the bit at position i (0 or 1).
func (d *Dense) Symbol(i int) int {
	return int((d.words[i/_WORD_BITS] >> uint(i%_WORD_BITS)) & 1)
}

// Rank1 returns the number of set bits in [0,i).
func (d *Dense) Rank1(i int) int {
	if i <= 0 {
		return 0
	}
	if i >= d.n {
		return d.onesTotal
	}

	block := i / _BLOCK_BITS
	super := block / 64
	count := d.superRank[super] + uint64(d.blockRank[block])

	wstart := block * _BLOCK_WORDS
	wend := i / _WORD_BITS
	for w := wstart; w < wend; w++ {
		count += uint64(bits.OnesCount64(d.words[w]))
	}

	rem := i % _WORD_BITS
	if rem > 0 {
		mask := uint64(1)<<uint(rem) - 1
		count += uint64(bits.OnesCount64(d.words[wend] & mask))
	}

	return int(count)
}

// Rank0 returns the number of unset bits in [0,i).
func (d *Dense) Rank0(i int) int {
	if i < 0 {
		i = 0
	}
	if i > d.n {
		i = d.n
	}
	return i - d.Rank1(i)
}

// Select1 returns the position of the (rank+1)-th set bit (0-indexed
// rank), or -1 if there is no such bit.
func (d *Dense) Select1(rank int) int {
	if rank < 0 || rank >= d.onesTotal {
		return -1
	}

	// Binary search over superblocks, then a linear scan over blocks and
	// words.
	numSuper := len(d.superRank) - 1
	lo, hi := 0, numSuper-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.superRank[mid] <= uint64(rank) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	super := lo
	remaining := rank - int(d.superRank[super])

	numBlocksTotal := len(d.blockRank) - 1
	blo, bhi := super*64, min(numBlocksTotal, (super+1)*64)-1
	if bhi < blo {
		bhi = blo
	}
	block := blo
	for b := blo; b <= bhi; b++ {
		if int(d.blockRank[b]) <= remaining {
			block = b
		} else {
			break
		}
	}
	remaining -= int(d.blockRank[block])

	wstart := block * _BLOCK_WORDS
	wend := min(wstart+_BLOCK_WORDS, len(d.words))

	for w := wstart; w < wend; w++ {
		c := bits.OnesCount64(d.words[w])
		if remaining < c {
			return w*_WORD_BITS + selectInWord(d.words[w], remaining)
		}
		remaining -= c
	}

	return -1
}

func selectInWord(word uint64, rank int) int {
	if hasPopcnt {
		return selectInWordPopcnt(word, rank)
	}
	return selectInWordLinear(word, rank)
}

func selectInWordLinear(word uint64, rank int) int {
	for i := 0; i < _WORD_BITS; i++ {
		if word&(1<<uint(i)) != 0 {
			if rank == 0 {
				return i
			}
			rank--
		}
	}
	return -1
}

// selectInWordPopcnt narrows the search range by halves, using one
// OnesCount64 per level instead of scanning bit by bit; cheaper when the
// hardware popcount makes each OnesCount64 call effectively O(1).
func selectInWordPopcnt(word uint64, rank int) int {
	pos := 0
	width := uint(_WORD_BITS)
	for width > 1 {
		half := width / 2
		lowMask := uint64(1)<<half - 1
		lowCount := bits.OnesCount64((word >> uint(pos)) & lowMask)
		if rank < lowCount {
			width = half
		} else {
			rank -= lowCount
			pos += int(half)
			width -= half
		}
	}
	if word&(1<<uint(pos)) == 0 {
		return -1
	}
	return pos
}

// Prefetch is a no-effect hint callers may issue speculatively before
// calling Rank1 at i; it touches the relevant cache line.
func (d *Dense) Prefetch(i int) {
	if i < 0 || i >= d.n {
		return
	}
	_ = d.words[i/_WORD_BITS]
}

