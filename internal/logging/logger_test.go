package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "portfolio.log")

	logger, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Error("error sending message to backend")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "error sending message to backend")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.log")

	logger, err := New(Options{File: path, Level: "error", Verbose: true})
	require.NoError(t, err)

	logger.Debug("nav target missing")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nav target missing")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}

func TestNewWithoutFile(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
