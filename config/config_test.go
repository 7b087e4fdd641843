package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robmorgan/lumacue/config"
	"github.com/stretchr/testify/require"
)

const fixtureDef = `
[[modes]]
name = "rgbi"
num_channels = 4

[modes.elements.color]
kind = "rgbi"
i = 1
r = 2
g = 3
b = 4
`

const installationToml = `
[fixtures.par1]
kind = "par"
channel = 1
mode = "rgbi"
pos = [0.0, 0.0]
`

const showToml = `
installation = "installation.toml"

[groups.all]
elements = ["par1:color"]

[pool]
A1 = "red"

[[effects]]
name = "red"

[[effects.elements]]
target = "par1:color:color"
color = 0xFF0000

[[cues]]
name = "blackout"
command = "A1"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInstallationResolvesFixtureDef(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fixturesDir := filepath.Join(dir, "fixtures")
	require.NoError(t, os.Mkdir(fixturesDir, 0o755))
	writeFile(t, fixturesDir, "par.toml", fixtureDef)
	instPath := writeFile(t, dir, "installation.toml", installationToml)

	inst, err := config.LoadInstallation(instPath, fixturesDir)
	require.NoError(t, err)

	el := inst.FindElement("par1", "color")
	require.NotNil(t, el)
	require.Equal(t, 4, inst.Fixtures["par1"].NumChannels())
}

func TestLoadInstallationMissingFixtureDefIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	instPath := writeFile(t, dir, "installation.toml", installationToml)

	_, err := config.LoadInstallation(instPath, filepath.Join(dir, "fixtures"))
	require.Error(t, err)
}

func TestLoadShowBuildsPoolAndCueList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	showPath := writeFile(t, dir, "show.toml", showToml)

	show, err := config.LoadShow(showPath, filepath.Join(dir, "patterns"))
	require.NoError(t, err)

	require.NotNil(t, show.Pool.Effect("red"))
	require.Equal(t, "red", show.Pool.KeyMap["A1"])

	cmd, err := show.CueList.CueCommand(0)
	require.NoError(t, err)
	require.Equal(t, "A1", cmd)
}
