//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `version = 1

[editor]
title = "E2E Page"
id_generator = "autoincrement"
log_file = "blockslash.log"

[palette]
max_height = 8
prefer = "below"
`

func appendFlavourConfig(on bool) string {
	if on {
		return baseConfig + "\n[flags]\nenable_append_flavor_slash = true\n"
	}
	return baseConfig + "\n[flags]\nenable_append_flavor_slash = false\n"
}

func TestStartsWithTitle(t *testing.T) {
	e := StartEditor(t, appendFlavourConfig(true))
	require.NoError(t, e.See("E2E Page"))
	require.NoError(t, e.See("block types"), "short help is shown")

	e.Send(KeyCtrlC)
	require.NoError(t, e.WaitExit(3*time.Second))
}

func TestSlashPaletteOpensAndFilters(t *testing.T) {
	e := StartEditor(t, appendFlavourConfig(true))
	require.NoError(t, e.See("E2E Page"))

	e.Type("/")
	require.NoError(t, e.See("Bulleted List"))

	mark := e.MarkOutput()
	e.Type("code")
	require.NoError(t, e.SeeAfter(mark, "/code"))
	require.NoError(t, e.SeeAfter(mark, "Code Block"))
}

func TestSlashCommitConvertsBlock(t *testing.T) {
	e := StartEditor(t, appendFlavourConfig(false))
	require.NoError(t, e.See("E2E Page"))

	e.Type("Intro/heading2")
	require.NoError(t, e.See("Heading 2"))
	mark := e.MarkOutput()
	e.Send(KeyEnter)

	require.NoError(t, e.SeeAfter(mark, "## Intro"))
}

func TestSlashCommitAppendsBlock(t *testing.T) {
	e := StartEditor(t, appendFlavourConfig(true))
	require.NoError(t, e.See("E2E Page"))

	e.Type("Intro/todo")
	require.NoError(t, e.See("To-do List"))
	mark := e.MarkOutput()
	e.Send(KeyEnter)
	require.NoError(t, e.SeeAfter(mark, "[ ] "))

	e.Type("ship it")
	require.NoError(t, e.See("ship it"))

	e.Send(KeyCtrlC)
	require.NoError(t, e.WaitExit(3*time.Second))
	assert.True(t, strings.Contains(e.Log(), "session ended"))
}

func TestEscapeClosesPalette(t *testing.T) {
	e := StartEditor(t, appendFlavourConfig(true), "--verbose")
	require.NoError(t, e.See("E2E Page"))

	e.Type("/")
	require.NoError(t, e.See("Numbered List"))
	e.Send(KeyEscape)
	time.Sleep(200 * time.Millisecond)

	e.Send(KeyCtrlC)
	require.NoError(t, e.WaitExit(3*time.Second))
	assert.Contains(t, e.Log(), `"Committed":false`)
}
