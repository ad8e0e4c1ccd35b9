package teg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()
	require.Equal(t, 125, g.Len())

	first, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, 50, first.PairCount)
	assert.InDelta(t, 0.001, first.LegLength, 1e-12)
	assert.InDelta(t, 1e-6, first.LegArea, 1e-15)

	second, _ := g.Next()
	assert.Equal(t, 50, second.PairCount)
	assert.InDelta(t, 0.001, second.LegLength, 1e-12)
	assert.InDelta(t, 2e-6, second.LegArea, 1e-15)

	n := 2
	var last DesignPoint
	for {
		p, ok := g.Next()
		if !ok {
			break
		}
		last = p
		n++
	}
	assert.Equal(t, 125, n)
	assert.Equal(t, 250, last.PairCount)
	assert.InDelta(t, 0.005, last.LegLength, 1e-12)
	assert.InDelta(t, 5e-6, last.LegArea, 1e-15)

	g.Reset()
	p, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, first, p)
}
