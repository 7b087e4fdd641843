package fixture

import (
	"testing"

	"github.com/robmorgan/lumacue/light"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixtureBuildsUniverseFromElements(t *testing.T) {
	t.Parallel()

	rgbi := NewElement(KindRgbi)
	rgbi.AddChannel("i", 1)
	rgbi.AddChannel("r", 2)
	rgbi.AddChannel("g", 3)
	rgbi.AddChannel("b", 4)
	rgbi.RGB = light.NewColor(1, 0, 0)

	fix := NewFixture(map[string]*Element{"par": rgbi}, 0, 0, 1, 4)

	frame := fix.UpdateDMX()
	assert.Equal(t, []byte{255, 255, 0, 0}, frame)
}

func TestZeroResetsElementsBeforeNextUpdateDMX(t *testing.T) {
	t.Parallel()

	el := NewElement(KindIntensity)
	el.AddChannel("i", 1)
	fix := NewFixture(map[string]*Element{"dimmer": el}, 0, 0, 1, 1)

	fix.FindElement("dimmer").Intensity = 1.0
	require.Equal(t, []byte{255}, fix.UpdateDMX())

	fix.Zero()
	require.Equal(t, []byte{0}, fix.UpdateDMX())
}
