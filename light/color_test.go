package light

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorCreationLimitsValues(t *testing.T) {
	t.Parallel()
	c := NewColor(-0.5, 1.5, math.NaN())
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.G)
	assert.Equal(t, 0.0, c.B)
}

func TestColorFromInt(t *testing.T) {
	t.Parallel()
	c := ColorFromInt(0x00FF80)
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.G)
	assert.InDelta(t, 0.5019608, c.B, 0.0000001)
}

func TestAddingColors(t *testing.T) {
	t.Parallel()
	c0 := NewColor(0.1, 0.2, 0.3)
	c1 := NewColor(0.2, 0.3, 0.4)
	sum := c0.Add(c1)
	assert.InDelta(t, 0.3, sum.R, 0.0001)
	assert.InDelta(t, 0.5, sum.G, 0.0001)
	assert.InDelta(t, 0.7, sum.B, 0.0001)

	// commutative
	sum2 := c1.Add(c0)
	assert.Equal(t, sum, sum2)
}

func TestScaleClamps(t *testing.T) {
	t.Parallel()
	c := NewColor(0.5, 0.5, 0.5).Scale(3)
	assert.Equal(t, Color{R: 1, G: 1, B: 1}, c)
}
