package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, log.WarnLevel)
	t.Cleanup(func() { Configure(os.Stderr, log.InfoLevel) })

	l := New("test")
	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "test")
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestable.log")
	closeFn, err := Setup(path, log.DebugLevel)
	require.NoError(t, err)
	t.Cleanup(func() { Configure(os.Stderr, log.InfoLevel) })

	New("fetch").Debug("request failed", "term", "cat")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "request failed")
	assert.Contains(t, string(data), "term=cat")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}
