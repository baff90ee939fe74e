package csa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGSSGene/fmindex-collection-sub003/suffixarray"
)

// memSink/memSource is a minimal in-memory Sink/Source pair for
// round-trip testing, independent of the archive package's on-disk
// format.
type memSink struct {
	ints []int
	bits []bool
}

func (m *memSink) WriteInt(v int) error { m.ints = append(m.ints, v); return nil }
func (m *memSink) WriteBits(b []bool) error {
	m.bits = append(m.bits, b...)
	return nil
}

type memSource struct {
	ints []int
	bits []bool
	ip   int
	bp   int
}

func (m *memSource) ReadInt() (int, error) {
	v := m.ints[m.ip]
	m.ip++
	return v, nil
}

func (m *memSource) ReadBits(n int) ([]bool, error) {
	b := m.bits[m.bp : m.bp+n]
	m.bp += n
	return b, nil
}

func buildTestCSA(t *testing.T) (*CSA, []int32, []int, []int) {
	text := []uint8{0, 2, 1, 3, 1, 2, 0, 3, 2, 1, 0, 3, 1, 2, 0}
	sa := suffixarray.Build(text)
	seqStarts := []int{0, 6, 11}
	seqEnds := []int{6, 11, 15}

	c, err := Build(sa, 3, SampleByTextPosition, seqStarts, seqEnds)
	require.NoError(t, err)
	return c, sa, seqStarts, seqEnds
}

func TestBuildRejectsZeroRate(t *testing.T) {
	_, err := Build([]int32{0, 1}, 0, SampleByTextPosition, []int{0}, []int{2})
	assert.Error(t, err)
}

func TestValueResolvesSampledPositions(t *testing.T) {
	c, sa, seqStarts, _ := buildTestCSA(t)

	for i, textPos := range sa {
		loc, ok := c.Value(i)
		if !c.IsSampled(i) {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)

		seqID := 0
		for seqID+1 < len(seqStarts) && seqStarts[seqID+1] <= int(textPos) {
			seqID++
		}
		assert.Equal(t, seqID, loc.SeqID)
		assert.Equal(t, int(textPos)-seqStarts[seqID], loc.Offset)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	c, _, _, _ := buildTestCSA(t)

	sink := &memSink{}
	require.NoError(t, c.Serialize(sink))

	src := &memSource{ints: sink.ints, bits: sink.bits}
	loaded, err := Load(src)
	require.NoError(t, err)

	for i := 0; i < c.Len(); i++ {
		wantLoc, wantOK := c.Value(i)
		gotLoc, gotOK := loaded.Value(i)
		assert.Equal(t, wantOK, gotOK)
		assert.Equal(t, wantLoc, gotLoc)
	}
}

func TestDenseCSAMatchesCSA(t *testing.T) {
	c, sa, seqStarts, seqEnds := buildTestCSA(t)
	d, err := BuildDense(sa, 3, SampleByTextPosition, seqStarts, seqEnds)
	require.NoError(t, err)

	for i := range sa {
		wantLoc, wantOK := c.Value(i)
		gotLoc, gotOK := d.Value(i)
		assert.Equal(t, wantOK, gotOK, "position %d", i)
		assert.Equal(t, wantLoc, gotLoc, "position %d", i)
	}
}

func TestEndOfSequencePositionsAlwaysSampled(t *testing.T) {
	c, sa, _, seqEnds := buildTestCSA(t)
	endSet := make(map[int32]bool)
	for _, e := range seqEnds {
		// Build always samples the sentinel position e-1, the last
		// position inside the sequence's [start, end) range.
		endSet[int32(e-1)] = true
	}
	for i, textPos := range sa {
		if endSet[textPos] {
			assert.True(t, c.IsSampled(i), "expected end-of-sequence position %d sampled", i)
		}
	}
}
