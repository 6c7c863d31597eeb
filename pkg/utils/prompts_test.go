package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	tempDir := t.TempDir()

	// Exact path with surrounding whitespace trimmed
	testFile := filepath.Join(tempDir, "coder-agent.txt")
	err := os.WriteFile(testFile, []byte("\n  You are a coding agent.\nShip a README.  \n"), 0644)
	require.NoError(t, err)

	content, err := LoadPrompt(testFile)
	require.NoError(t, err)
	assert.Equal(t, "You are a coding agent.\nShip a README.", content)

	// File not found
	_, err = LoadPrompt(filepath.Join(tempDir, "missing.txt"))
	assert.ErrorContains(t, err, "file does not exist")
}

func TestLoadPromptSet(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		set, err := LoadPromptSet("")
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPromptSet(filepath.Join(t.TempDir(), "prompts.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("coder-agent: [unterminated"), 0644))

		_, err := LoadPromptSet(path)
		assert.Error(t, err)
	})

	t.Run("overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		doc := "coder-agent: |\n  Build small projects.\n  Always add a README.\nresearch-team: \"Delegate.\"\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

		set, err := LoadPromptSet(path)
		require.NoError(t, err)

		assert.Equal(t, "Build small projects.\nAlways add a README.", set.Get("coder-agent", "fallback"))
		assert.Equal(t, "Delegate.", set.Get("research-team", "fallback"))
		assert.Equal(t, "fallback", set.Get("youtube-summarizer-agent", "fallback"))
	})
}
