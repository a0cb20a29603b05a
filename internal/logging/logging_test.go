package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jask/soldash/internal/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "soldash.log")
	logger, closer, err := New(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("asset", "SOL").Info("balance fetched")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), `"asset":"SOL"`), string(raw))
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "chatty"})
	require.Error(t, err)

	_, _, err = New(config.LogConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closer, err := New(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())
}
