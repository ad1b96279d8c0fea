package main

import (
	"os"
	"path/filepath"
	"testing"

	"character-browser/internal/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--locale", "de", "--status", "Dead", "--log-level", "debug"}))

	assert.Equal(t, "de", viper.GetString("UI.LOCALE"))
	assert.Equal(t, "Dead", viper.GetString("UI.STATUS"))
	assert.Equal(t, "debug", viper.GetString("LOG.LEVEL"))
	assert.Empty(t, viper.GetString("UI.SPECIES"))
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(log.TextFormatter)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := setupLogging(config.LogConfig{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "browser.log")
		closer, err := setupLogging(config.LogConfig{Level: "warn", File: path})
		require.NoError(t, err)

		log.Info("hidden")
		log.Warn("visible")
		require.NoError(t, closer.Close())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "visible")
		assert.NotContains(t, string(raw), "hidden")
	})

	t.Run("no file discards", func(t *testing.T) {
		closer, err := setupLogging(config.LogConfig{Level: "info"})
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
	})
}
