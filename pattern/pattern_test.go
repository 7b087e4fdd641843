package pattern_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robmorgan/lumacue/pattern"
	"github.com/stretchr/testify/require"
)

const constantScript = `
options = {
  level = { default = 0 },
}

function setup()
end

function update(dt)
  local seq = {}
  for i = 1, element_count do
    seq[i] = options.level.value
  end
  return seq
end
`

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestPatternConstantScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeScript(t, dir, "constant.lua", constantScript)

	level := int64(0x123456)
	p := pattern.New(dir, "constant.lua", "group1", "color", 2, map[string]pattern.Option{
		"level": {Int: &level},
	})
	defer p.Close()

	require.False(t, p.Broken())

	values := p.Update(1.0 / 30)
	require.Equal(t, []int32{0x123456, 0x123456}, values)
}

func TestPatternBrokenOnMissingScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := pattern.New(dir, "missing.lua", "group1", "color", 2, nil)
	defer p.Close()

	require.True(t, p.Broken())
	require.Nil(t, p.Update(1.0/30))
}

func TestPatternReloadRecoversFromBrokenState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := pattern.New(dir, "late.lua", "group1", "color", 1, nil)
	require.True(t, p.Broken())

	writeScript(t, dir, "late.lua", constantScript)
	p.Reload()
	require.False(t, p.Broken())
	defer p.Close()
}
