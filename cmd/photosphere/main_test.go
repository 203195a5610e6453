package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute(t.Context()))
	assert.Equal(t, "photosphere version dev\n", buf.String())
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "validate", "inspect-model", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"log-level", "log-format", "redis-addr", "cache-ttl"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.NotNil(t, runCmd.Flags().Lookup("metrics-out"))
	assert.NotNil(t, runCmd.Flags().Lookup("set"))
}

func TestInspectRequiresType(t *testing.T) {
	rootCmd.SetArgs([]string{"inspect-model", "profile1.data"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"type"`)
}
