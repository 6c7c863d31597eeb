package agent

import (
	"fmt"
	"strings"
	"time"
)

type fact struct {
	key   string
	value string
}

// PromptBuilder helps construct dynamic prompts for agents
type PromptBuilder struct {
	systemPrompt string
	context      []string
	facts        []fact
}

// NewPromptBuilder creates a new prompt builder with a base system prompt
func NewPromptBuilder(systemPrompt string) *PromptBuilder {
	return &PromptBuilder{
		systemPrompt: systemPrompt,
		context:      make([]string, 0),
		facts:        make([]fact, 0),
	}
}

// AddContext adds contextual information to the prompt
func (pb *PromptBuilder) AddContext(context string) *PromptBuilder {
	pb.context = append(pb.context, context)
	return pb
}

// AddFact adds a key-value fact to the prompt. Facts keep insertion order
func (pb *PromptBuilder) AddFact(key, value string) *PromptBuilder {
	pb.facts = append(pb.facts, fact{key: key, value: value})
	return pb
}

// AddDateTime adds the current date and time as context
func (pb *PromptBuilder) AddDateTime(now time.Time) *PromptBuilder {
	return pb.AddContext("Current date and time: " + now.Format("Monday, 2006-01-02 15:04:05 MST"))
}

// Build constructs the final prompt
func (pb *PromptBuilder) Build() string {
	parts := []string{pb.systemPrompt}

	if len(pb.facts) > 0 {
		parts = append(parts, "\n## Key Facts:")
		for _, f := range pb.facts {
			parts = append(parts, fmt.Sprintf("- %s: %s", f.key, f.value))
		}
	}

	if len(pb.context) > 0 {
		parts = append(parts, "\n## Context:")
		for _, ctx := range pb.context {
			parts = append(parts, fmt.Sprintf("- %s", ctx))
		}
	}

	return strings.Join(parts, "\n")
}
