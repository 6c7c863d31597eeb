package utils

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadPrompt loads prompt instructions from a specific file path
// The path must be exact - no fallback searching is performed
func LoadPrompt(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", filePath)
		}
		return "", fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return strings.TrimSpace(string(content)), nil
}

// PromptSet maps agent IDs to instruction overrides
type PromptSet map[string]string

// LoadPromptSet reads a YAML document of the form
//
//	coder-agent: |
//	  You are ...
//	research-team: ...
//
// An empty path yields an empty set.
func LoadPromptSet(filePath string) (PromptSet, error) {
	set := PromptSet{}
	if filePath == "" {
		return set, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt set %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt set %s: %w", filePath, err)
	}

	for id, prompt := range set {
		set[id] = strings.TrimSpace(prompt)
	}

	return set, nil
}

// Get returns the override for id, or fallback when none is set
func (s PromptSet) Get(id, fallback string) string {
	if prompt, ok := s[id]; ok && prompt != "" {
		return prompt
	}
	return fallback
}
