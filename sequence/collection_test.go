package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectionConcatenation(t *testing.T) {
	c, err := NewCollection([][]uint8{{1, 2, 3}, {4, 5}}, 6)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 0, 4, 5, 0}, c.Concat())
	assert.Equal(t, 2, c.SeqCount())
	assert.Equal(t, 3, c.SeqLen(0))
	assert.Equal(t, 2, c.SeqLen(1))
}

func TestNewCollectionRejectsSentinelInInput(t *testing.T) {
	_, err := NewCollection([][]uint8{{1, 0, 2}}, 4)
	require.Error(t, err)
}

func TestNewCollectionRejectsOutOfRangeSymbol(t *testing.T) {
	_, err := NewCollection([][]uint8{{1, 9}}, 4)
	require.Error(t, err)
}

func TestNewCollectionRejectsEmpty(t *testing.T) {
	_, err := NewCollection(nil, 4)
	require.Error(t, err)
}

func TestCollectionResolve(t *testing.T) {
	c, err := NewCollection([][]uint8{{1, 2, 3}, {4, 5}}, 6)
	require.NoError(t, err)

	seqID, off := c.Resolve(0)
	assert.Equal(t, 0, seqID)
	assert.Equal(t, 0, off)

	seqID, off = c.Resolve(2)
	assert.Equal(t, 0, seqID)
	assert.Equal(t, 2, off)

	seqID, off = c.Resolve(4)
	assert.Equal(t, 1, seqID)
	assert.Equal(t, 0, off)

	seqID, off = c.Resolve(5)
	assert.Equal(t, 1, seqID)
	assert.Equal(t, 1, off)
}
