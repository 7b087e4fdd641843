package effect_test

import (
	"testing"

	"github.com/robmorgan/lumacue/effect"
	"github.com/robmorgan/lumacue/fixture"
	"github.com/robmorgan/lumacue/installation"
	"github.com/stretchr/testify/require"
)

func newRGBInstallation() *installation.Installation {
	el := fixture.NewElement(fixture.KindRgbi)
	el.AddChannel("i", 1)
	el.AddChannel("r", 2)
	el.AddChannel("g", 3)
	el.AddChannel("b", 4)
	f := fixture.NewFixture(map[string]*fixture.Element{"color": el}, 0, 0, 1, 4)
	return installation.New(map[string]*fixture.Fixture{"par1": f})
}

func TestApplyToStaticElementAtFullStrength(t *testing.T) {
	t.Parallel()

	inst := newRGBInstallation()
	e := effect.New("red", 1.0, []effect.EffectElement{
		effect.NewEffectElement("par1", "color", "color", 0xFF0000),
	}, nil)

	e.ApplyTo(inst, nil)

	el := inst.FindElement("par1", "color")
	require.Equal(t, 1.0, el.RGB.R)
	require.Equal(t, 0.0, el.RGB.G)
}

func TestRunCommandsTogglesEffectStrength(t *testing.T) {
	t.Parallel()

	e := effect.New("A1", 0, nil, nil)
	pool := effect.NewPool([]*effect.Effect{e}, nil, "installation.toml")
	pool.SetKey("a1", "A1")

	pool.AddCommands(effect.Command{Key: "A1", Action: effect.Toggle})
	pool.RunCommands()
	require.Equal(t, 1.0, e.Strength)

	pool.AddCommands(effect.Command{Key: "A1", Action: effect.Toggle})
	pool.RunCommands()
	require.Equal(t, 0.0, e.Strength)
}

func TestRunCommandsDropsUnboundKey(t *testing.T) {
	t.Parallel()

	pool := effect.NewPool(nil, nil, "installation.toml")
	pool.AddCommands(effect.Command{Key: "Z9", Action: effect.Toggle})
	require.NotPanics(t, pool.RunCommands)
}

func TestApplyToPoolZerosThenMixesInOrder(t *testing.T) {
	t.Parallel()

	inst := newRGBInstallation()
	red := effect.New("red", 1.0, []effect.EffectElement{
		effect.NewEffectElement("par1", "color", "color", 0xFF0000),
	}, nil)
	green := effect.New("green", 1.0, []effect.EffectElement{
		effect.NewEffectElement("par1", "color", "color", 0x00FF00),
	}, nil)

	pool := effect.NewPool([]*effect.Effect{red, green}, nil, "installation.toml")
	pool.ApplyTo(inst)

	el := inst.FindElement("par1", "color")
	require.Equal(t, 1.0, el.RGB.R)
	require.Equal(t, 1.0, el.RGB.G)
}
