package command

import (
	"testing"

	"github.com/robmorgan/lumacue/cuelist"
	"github.com/robmorgan/lumacue/effect"
	"github.com/stretchr/testify/require"
)

func TestParseBasicSpaceFree(t *testing.T) {
	t.Parallel()

	chunks, ok := parse("a1E52")
	require.True(t, ok)
	require.Equal(t, []chunk{
		{kind: chunkEffect, key: "A1"},
		{kind: chunkEffect, key: "E52"},
	}, chunks)
}

func TestParseMixed(t *testing.T) {
	t.Parallel()

	chunks, ok := parse("a1 102 E52")
	require.True(t, ok)
	require.Equal(t, []chunk{
		{kind: chunkEffect, key: "A1"},
		{kind: chunkCueNum, cueNum: 102},
		{kind: chunkEffect, key: "E52"},
	}, chunks)
}

func TestParseNoSpacesOnlyEffects(t *testing.T) {
	t.Parallel()

	chunks, ok := parse("a1b2c3")
	require.True(t, ok)
	for _, c := range chunks {
		require.Equal(t, chunkEffect, c.kind)
	}
}

func TestParseEmptyIsEmptySequence(t *testing.T) {
	t.Parallel()

	chunks, ok := parse("")
	require.True(t, ok)
	require.Nil(t, chunks)
}

func TestParseInvalidYieldsEmptySoftFailure(t *testing.T) {
	t.Parallel()

	chunks, ok := parse("!!!")
	require.False(t, ok)
	require.Nil(t, chunks)
}

func TestExpandToggleViaCue(t *testing.T) {
	t.Parallel()

	cl := cuelist.New()
	cl.Add("1", "A1")

	cmds := Expand("1", cl)
	require.Equal(t, []effect.Command{{Key: "A1", Action: effect.Toggle}}, cmds)
}

func TestExpandCueOutOfRangeDropsChunk(t *testing.T) {
	t.Parallel()

	cl := cuelist.New()
	cmds := Expand("1", cl)
	require.Nil(t, cmds)
}

func TestExpandDepthCapStopsCycle(t *testing.T) {
	t.Parallel()

	cl := cuelist.New()
	cl.Add("self-referencing", "1")

	require.NotPanics(t, func() {
		Expand("1", cl)
	})
}
