package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "ask", "janitor"})
}

func TestJanitor_InMemory(t *testing.T) {
	t.Setenv("MYSQL_HOST", "")
	t.Setenv("ENV_FILE", "does-not-exist.env")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"janitor"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "\"abandoned\"")
}

func TestGenerate_RequiresSpec(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")

	rootCmd.SetArgs([]string{"generate", "--spec", "  "})
	assert.Error(t, rootCmd.Execute())
}

func TestAsk_RequiresArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"ask", "coder-agent"})
	assert.Error(t, rootCmd.Execute())
}
