package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/robmorgan/lumacue/fixture"
	"github.com/robmorgan/lumacue/installation"
)

type installationConfig struct {
	Fixtures map[string]fixtureConfig `toml:"fixtures"`
}

type fixtureConfig struct {
	Kind    string     `toml:"kind"`
	Channel int        `toml:"channel"`
	Mode    string     `toml:"mode"`
	Pos     [2]float64 `toml:"pos"`
}

type fixtureDefConfig struct {
	Modes []modeConfig `toml:"modes"`
}

type modeConfig struct {
	Name        string                   `toml:"name"`
	NumChannels int                      `toml:"num_channels"`
	Elements    map[string]elementConfig `toml:"elements"`
}

type elementConfig struct {
	Kind string `toml:"kind"`
	I    *int   `toml:"i"`
	R    *int   `toml:"r"`
	G    *int   `toml:"g"`
	B    *int   `toml:"b"`
	UV   *int   `toml:"uv"`
}

func (ec elementConfig) toElement() *fixture.Element {
	el := fixture.NewElement(fixture.KindFromString(ec.Kind))
	if ec.I != nil {
		el.AddChannel("i", *ec.I)
	}
	if ec.R != nil {
		el.AddChannel("r", *ec.R)
	}
	if ec.G != nil {
		el.AddChannel("g", *ec.G)
	}
	if ec.B != nil {
		el.AddChannel("b", *ec.B)
	}
	if ec.UV != nil {
		el.AddChannel("uv", *ec.UV)
	}
	return el
}

// LoadInstallation parses path as an installation configuration file,
// resolving each fixture's "kind"+"mode" against fixture-definition files
// under fixturesDir/<kind>.toml.
func LoadInstallation(path, fixturesDir string) (*installation.Installation, error) {
	var cfg installationConfig
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, parseError(path, err)
	}

	fixtures := make(map[string]*fixture.Fixture, len(cfg.Fixtures))
	for name, fc := range cfg.Fixtures {
		elements, numChannels, err := loadElements(fixturesDir, fc.Kind, fc.Mode)
		if err != nil {
			return nil, err
		}
		fixtures[name] = fixture.NewFixture(elements, fc.Pos[0], fc.Pos[1], fc.Channel, numChannels)
	}

	return installation.New(fixtures), nil
}

// loadElements reads fixturesDir/<kind>.toml and selects the named mode,
// returning its element role→Element map and declared channel count. A
// mode that matches nothing yields an empty, zero-channel fixture rather
// than an error — the fixture is simply inert.
func loadElements(fixturesDir, kind, mode string) (map[string]*fixture.Element, int, error) {
	path := filepath.Join(fixturesDir, kind+".toml")

	var def fixtureDefConfig
	if _, err := toml.DecodeFile(path, &def); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, missingFixtureDef(path, err)
		}
		return nil, 0, parseError(path, err)
	}

	for _, mc := range def.Modes {
		if mc.Name != mode {
			continue
		}
		elements := make(map[string]*fixture.Element, len(mc.Elements))
		for name, ec := range mc.Elements {
			elements[name] = ec.toElement()
		}
		return elements, mc.NumChannels, nil
	}

	return map[string]*fixture.Element{}, 0, nil
}
