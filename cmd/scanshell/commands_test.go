package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbridge/scanbridge/abstract"
	"github.com/scanbridge/scanbridge/registry"
)

func TestNewRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand(registry.New())

	names := make([]string, len(root.SubCommands))
	for i, sub := range root.SubCommands {
		names[i] = sub.Name
	}

	assert.ElementsMatch(t, []string{"list", "caps", "scan", "help", "exit", "quit"}, names)
}

func TestExecLineEmptyLineIsNotSaved(t *testing.T) {
	root := newRootCommand(registry.New())

	save, err := execLine(root, "   ")
	assert.False(t, save)
	assert.NoError(t, err)
}

func TestExecLineListRuns(t *testing.T) {
	root := newRootCommand(registry.New())

	save, err := execLine(root, "list")
	assert.True(t, save)
	assert.NoError(t, err)
}

func TestExecLineExitReturnsErrExit(t *testing.T) {
	root := newRootCommand(registry.New())

	_, err := execLine(root, "exit")
	assert.Equal(t, errExit, err)
}

func TestParseSource(t *testing.T) {
	got, err := parseSource("adf-duplex")
	require.NoError(t, err)
	assert.Equal(t, abstract.SourceADFDuplex, got)

	_, err = parseSource("bogus")
	assert.Error(t, err)
}

func TestParseColorMode(t *testing.T) {
	got, err := parseColorMode("bw")
	require.NoError(t, err)
	assert.Equal(t, abstract.ColorModeBW, got)

	_, err = parseColorMode("bogus")
	assert.Error(t, err)
}

func TestParsePageSize(t *testing.T) {
	got, err := parsePageSize("legal")
	require.NoError(t, err)
	assert.Equal(t, abstract.PageSizeLegal, got)

	_, err = parsePageSize("bogus")
	assert.Error(t, err)
}
