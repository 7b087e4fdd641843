package installation_test

import (
	"testing"

	"github.com/robmorgan/lumacue/fixture"
	"github.com/robmorgan/lumacue/installation"
	"github.com/robmorgan/lumacue/light"
	"github.com/stretchr/testify/require"
)

func rgbFixture(channel int) *fixture.Fixture {
	el := fixture.NewElement(fixture.KindRgbi)
	el.AddChannel("i", 1)
	el.AddChannel("r", 2)
	el.AddChannel("g", 3)
	el.AddChannel("b", 4)
	return fixture.NewFixture(map[string]*fixture.Element{"color": el}, 0, 0, channel, 4)
}

func TestBuildUniverseTwoFixtures(t *testing.T) {
	t.Parallel()

	f1 := rgbFixture(1)
	f1.FindElement("color").RGB = light.NewColor(1, 0, 0)

	el2 := fixture.NewElement(fixture.KindRgbi)
	el2.AddChannel("r", 1)
	el2.AddChannel("g", 2)
	el2.AddChannel("b", 3)
	f2 := fixture.NewFixture(map[string]*fixture.Element{"color": el2}, 0, 0, 10, 3)
	f2.FindElement("color").RGB = light.NewColor(0, 1, 0)

	inst := installation.New(map[string]*fixture.Fixture{"f1": f1, "f2": f2})

	universe := inst.BuildUniverse()

	require.Equal(t, 12, len(universe))
	require.Equal(t, []byte{255, 255, 0, 0}, universe[0:4])
	for _, b := range universe[4:9] {
		require.Equal(t, byte(0), b)
	}
	require.Equal(t, []byte{0, 255, 0}, universe[9:12])
}

func TestZeroResetsColorElementsToBlack(t *testing.T) {
	t.Parallel()

	f1 := rgbFixture(1)
	f1.FindElement("color").RGB = light.NewColor(1, 1, 1)

	inst := installation.New(map[string]*fixture.Fixture{"f1": f1})
	inst.Zero()

	require.Equal(t, light.Black(), inst.FindElement("f1", "color").RGB)
}
