package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields zero config", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("decodes all keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("shell: zsh\ntick_ms: 100\nlog_level: debug\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "zsh", cfg.Shell)
		assert.Equal(t, 100, cfg.TickMs)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("malformed yaml is an error naming the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("shell: [unclosed"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, DefaultTickInterval, Config{}.TickInterval())
	assert.Equal(t, 100*time.Millisecond, Config{TickMs: 100}.TickInterval())

	// Clamped to the floor so the loop cannot spin
	assert.Equal(t, 50*time.Millisecond, Config{TickMs: 1}.TickInterval())
	assert.Equal(t, DefaultTickInterval, Config{TickMs: -10}.TickInterval())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zap.InfoLevel, Config{}.ZapLevel().Level())
	assert.Equal(t, zap.DebugLevel, Config{LogLevel: "debug"}.ZapLevel().Level())
	assert.Equal(t, zap.WarnLevel, Config{LogLevel: "warn"}.ZapLevel().Level())
	assert.Equal(t, zap.ErrorLevel, Config{LogLevel: "error"}.ZapLevel().Level())
	assert.Equal(t, zap.InfoLevel, Config{LogLevel: "verbose"}.ZapLevel().Level())
}
