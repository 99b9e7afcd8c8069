package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockslash/internal/config"
)

func TestParseFlagOverrides(t *testing.T) {
	got, err := parseFlagOverrides([]string{"enable_append_flavor_slash=false", "beta", " spaced = true "})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"enable_append_flavor_slash": false,
		"beta":                       true,
		"spaced":                     true,
	}, got)

	_, err = parseFlagOverrides([]string{"=true"})
	require.Error(t, err)
	_, err = parseFlagOverrides([]string{"x=maybe"})
	require.Error(t, err)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbose, flagOverrides = "", false, nil
	t.Cleanup(func() { configPath, verbose, flagOverrides = "", false, nil })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockslash.yaml")

	out, err := runCLI(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = runCLI(t, "config", "init", "--config", path)
	require.Error(t, err, "init does not overwrite without --force")

	out, err = runCLI(t, "config", "show", "--config", path, "--flag", config.FlagAppendFlavourSlash+"=false")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Untitled")
	assert.Contains(t, out, config.FlagAppendFlavourSlash+": false")
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := newLogger(path, true)
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
