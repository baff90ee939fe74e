package fmindex

import (
	"github.com/SGSSGene/fmindex-collection-sub003/archive"
	"github.com/SGSSGene/fmindex-collection-sub003/csa"
)

// Serialize writes the index as sigma, n, rank-string payload, CSA
// payload; the count array is not written and is recomputed from the BWT
// on load. The rank-string
// payload is the BWT symbol array itself rather than an
// encoding-specific dump: Load reconstructs whichever family member the
// caller's RankStringBuilder produces by feeding it the recovered BWT,
// which keeps serialization oblivious to which of the five rank-string
// encodings built the index.
func (idx *Index) Serialize(w *archive.Writer) error {
	if err := serializeSide(idx.fwd, w); err != nil {
		return err
	}
	return w.Finish()
}

// Load reconstructs an Index written by Serialize. builder may be any
// rank-string constructor; it need not be the one the index was
// originally built with.
func Load(r *archive.Reader, builder RankStringBuilder) (*Index, error) {
	fwd, err := deserializeSide(r, builder)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return &Index{fwd: fwd}, nil
}

// Serialize writes both directions of a bidirectional index, followed by
// an integrity checksum over the whole payload.
func (idx *BiFMIndex) Serialize(w *archive.Writer) error {
	if err := serializeSide(idx.fwd, w); err != nil {
		return err
	}
	if err := serializeSide(idx.rev, w); err != nil {
		return err
	}
	return w.Finish()
}

// LoadBi reconstructs a BiFMIndex written by BiFMIndex.Serialize,
// verifying its trailing checksum.
func LoadBi(r *archive.Reader, builder RankStringBuilder) (*BiFMIndex, error) {
	fwd, err := deserializeSide(r, builder)
	if err != nil {
		return nil, err
	}
	rev, err := deserializeSide(r, builder)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return &BiFMIndex{fwd: fwd, rev: rev}, nil
}

func serializeSide(s *side, w *archive.Writer) error {
	if err := w.WriteInt(s.sigma); err != nil {
		return err
	}
	if err := w.WriteInt(s.n); err != nil {
		return err
	}

	bwt := make([]byte, s.n)
	for i := 0; i < s.n; i++ {
		bwt[i] = byte(s.rank.Symbol(i))
	}
	if err := w.WriteBytes(bwt); err != nil {
		return err
	}

	return serializeCSA(s.sa, w)
}

// serializeCSA writes a CompressedSuffixArray's resolved (seqId,offset)
// pairs directly, independent of whether the concrete backing type is
// csa.CSA or csa.DenseCSA: the wire format only needs the per-position
// Value/IsSampled results to be round-trippable, not the original
// sampling-rate/sequence-boundary bookkeeping, so both backing types
// share this one payload shape.
func serializeCSA(sa CompressedSuffixArray, w *archive.Writer) error {
	n := sa.Len()
	values := make([]csa.Location, n)
	sampled := make([]bool, n)
	for i := 0; i < n; i++ {
		if loc, ok := sa.Value(i); ok {
			values[i] = loc
			sampled[i] = true
		}
	}
	if err := w.WriteInt(n); err != nil {
		return err
	}
	count := 0
	for _, b := range sampled {
		if b {
			count++
		}
	}
	if err := w.WriteInt(count); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if sampled[i] {
			if err := w.WriteInt(values[i].SeqID); err != nil {
				return err
			}
			if err := w.WriteInt(values[i].Offset); err != nil {
				return err
			}
		}
	}
	return w.WriteBits(sampled)
}

func deserializeSide(r *archive.Reader, builder RankStringBuilder) (*side, error) {
	sigma, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	bwtBytes, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	bwt := make([]uint8, n)
	copy(bwt, bwtBytes)

	sa, err := loadDirectLocationCSA(r)
	if err != nil {
		return nil, err
	}

	return newSide(bwt, sigma, builder, sa), nil
}

// directLocationCSA reconstructs the (seqId,offset) pairs serializeCSA
// wrote, satisfying CompressedSuffixArray without needing the original
// sequence-boundary table at load time.
type directLocationCSA struct {
	n      int
	values map[int]csa.Location
}

func (d *directLocationCSA) Len() int { return d.n }

func (d *directLocationCSA) Value(i int) (csa.Location, bool) {
	loc, ok := d.values[i]
	return loc, ok
}

func loadDirectLocationCSA(r *archive.Reader) (*directLocationCSA, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	pairs := make([]csa.Location, count)
	for i := range pairs {
		seqID, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		off, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		pairs[i] = csa.Location{SeqID: seqID, Offset: off}
	}
	sampled, err := r.ReadBits(n)
	if err != nil {
		return nil, err
	}

	values := make(map[int]csa.Location, count)
	idx := 0
	for i := 0; i < n; i++ {
		if sampled[i] {
			values[i] = pairs[idx]
			idx++
		}
	}
	return &directLocationCSA{n: n, values: values}, nil
}
