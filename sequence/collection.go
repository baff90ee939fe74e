// Package sequence models the ordered collection of symbol sequences an
// index is built over: validating the small-integer alphabet, concatenating
// sequences with per-sequence sentinels, and mapping a position in the
// concatenation back to (sequence id, offset).
package sequence

import (
	"fmt"

	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
)

// Sentinel is the reserved end-of-sequence symbol. It must not appear
// anywhere in caller-supplied sequences.
const Sentinel = uint8(0)

// Collection is the concatenated text T built from an ordered list of
// sequences, each followed by Sentinel. It is immutable once built.
type Collection struct {
	sigma  int
	text   []uint8
	starts []int // starts[i] = offset of sequence i's first symbol in text
	ends   []int // ends[i] = offset just past sequence i's sentinel
}

// NewCollection validates that every symbol lies in [1,sigma-1] and builds
// the concatenated text. sigma must be in (1,256]; an empty seqs list or a
// symbol outside the alphabet is a precondition violation.
func NewCollection(seqs [][]uint8, sigma int) (*Collection, error) {
	if sigma <= 1 || sigma > 256 {
		return nil, fmerr.Wrapf(fmerr.Precondition, "alphabet size %d out of range (1,256]", sigma)
	}
	if len(seqs) == 0 {
		return nil, fmerr.Wrap(fmerr.Precondition, "empty sequence collection")
	}

	n := 0
	for _, s := range seqs {
		n += len(s) + 1
	}

	c := &Collection{
		sigma:  sigma,
		text:   make([]uint8, 0, n),
		starts: make([]int, len(seqs)),
		ends:   make([]int, len(seqs)),
	}

	for i, s := range seqs {
		c.starts[i] = len(c.text)
		for _, sym := range s {
			if int(sym) >= sigma {
				return nil, fmerr.Wrapf(fmerr.Precondition, "symbol %d in sequence %d exceeds alphabet size %d", sym, i, sigma)
			}
			if sym == Sentinel {
				return nil, fmerr.Wrapf(fmerr.Precondition, "sequence %d contains reserved sentinel symbol", i)
			}
			c.text = append(c.text, sym)
		}
		c.text = append(c.text, Sentinel)
		c.ends[i] = len(c.text)
	}

	return c, nil
}

// Sigma returns the alphabet size, including the sentinel.
func (c *Collection) Sigma() int { return c.sigma }

// Concat returns the concatenated text T (including sentinels). Callers
// must not mutate the returned slice.
func (c *Collection) Concat() []uint8 { return c.text }

// Len returns len(T).
func (c *Collection) Len() int { return len(c.text) }

// SeqCount returns the number of sequences in the collection.
func (c *Collection) SeqCount() int { return len(c.starts) }

// SeqLen returns the length of sequence i, excluding its sentinel.
func (c *Collection) SeqLen(i int) int { return c.ends[i] - c.starts[i] - 1 }

// Resolve maps a position in T to (sequence id, offset within sequence).
// textPos must point at a non-sentinel symbol or this panics; callers at
// the CSA/locate boundary are expected to only resolve matched positions.
func (c *Collection) Resolve(textPos int) (seqID, offset int) {
	// Sequences are laid out in order and binary search over starts
	// finds the owning sequence in O(log #sequences).
	lo, hi := 0, len(c.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.starts[mid] <= textPos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if textPos < c.starts[lo] || textPos >= c.ends[lo]-1 {
		panic(fmt.Sprintf("sequence: position %d is out of bounds for sequence %d", textPos, lo))
	}
	return lo, textPos - c.starts[lo]
}

// SeqStart returns the offset in T where sequence i begins.
func (c *Collection) SeqStart(i int) int { return c.starts[i] }

// SeqEnd returns the offset in T just past sequence i's sentinel.
func (c *Collection) SeqEnd(i int) int { return c.ends[i] }
