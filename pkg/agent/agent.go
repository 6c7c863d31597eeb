package agent

import (
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
)

// CustomAgent defines the interface for all custom agents in the system
type CustomAgent interface {
	// Agent returns the underlying openai-agents-go instance
	Agent() *agents.Agent

	// ID returns the unique identifier for this agent
	ID() string

	// Config returns the configuration for this agent
	Config() *utils.Config
}

// DefaultModel is used when MODEL is not configured
const DefaultModel = "gpt-5.2"

// Model returns the model configured for agents
func Model(cfg *utils.Config) string {
	return cfg.GetWithDefault("MODEL", DefaultModel)
}
