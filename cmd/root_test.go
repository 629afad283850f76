package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Godley/take-a-break/internal/config"
)

func TestApplyFlagOverrides(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	t.Cleanup(func() {
		for _, name := range []string{"client-secrets", "token", "delay"} {
			flags.Lookup(name).Changed = false
		}
		clientSecretsPath, tokenPath, delay = "", "", 0
	})

	c := config.Default()
	applyFlagOverrides(rootCmd, c)
	assert.Equal(t, config.Default(), c, "unset flags must not override")

	require.NoError(t, flags.Set("token", "/tmp/tok.json"))
	require.NoError(t, flags.Set("delay", "90s"))
	applyFlagOverrides(rootCmd, c)

	assert.Equal(t, "/tmp/tok.json", c.Auth.TokenPath)
	assert.Equal(t, 90*time.Second, c.Overlay.Delay)
	assert.Equal(t, "credentials.json", c.Auth.ClientSecretsPath)
}
