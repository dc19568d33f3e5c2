package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robottwo/hui/internal/config"
	"github.com/robottwo/hui/internal/shell"
)

func TestResolveShell(t *testing.T) {
	resetFlag := func() {
		old := *shellFlag
		t.Cleanup(func() { *shellFlag = old })
		*shellFlag = ""
	}

	t.Run("flag takes precedence", func(t *testing.T) {
		resetFlag()
		*shellFlag = "zsh"
		t.Setenv(shell.EnvVar, "bash")

		kind, err := resolveShell(config.Config{Shell: "bash"})
		require.NoError(t, err)
		assert.Equal(t, shell.Zsh, kind)
	})

	t.Run("environment when no flag", func(t *testing.T) {
		resetFlag()
		t.Setenv(shell.EnvVar, "bash")

		kind, err := resolveShell(config.Config{Shell: "zsh"})
		require.NoError(t, err)
		assert.Equal(t, shell.Bash, kind)
	})

	t.Run("config as a last resort", func(t *testing.T) {
		resetFlag()
		t.Setenv(shell.EnvVar, "")

		kind, err := resolveShell(config.Config{Shell: "zsh"})
		require.NoError(t, err)
		assert.Equal(t, shell.Zsh, kind)
	})

	t.Run("nothing set is a configuration error", func(t *testing.T) {
		resetFlag()
		t.Setenv(shell.EnvVar, "")

		_, err := resolveShell(config.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bash, zsh")
	})

	t.Run("unsupported selector is rejected", func(t *testing.T) {
		resetFlag()
		t.Setenv(shell.EnvVar, "fish")

		_, err := resolveShell(config.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fish")
	})
}
