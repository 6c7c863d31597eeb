package coder

import (
	"context"
	"time"

	"github.com/ethanbaker/repogen/internal/generator"
	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/modelsettings"
)

// ID identifies the coding agent
const ID = "coder-agent"

// MaxTurns bounds one run: up to two tool calls and the reply
const MaxTurns = 3

// Instructions are used unless overridden in the prompt set
const Instructions = `You are a coding agent. When a user asks for code, you:
1) don't ask anything back
2) Generate a minimal, working project with a README.
3) Create a new GitHub repo and upload the files using the tool.

Rules:
- Never reveal or request access tokens.
- Use sensible defaults if the user doesn't specify (Python, Node, or simple HTML depending on request).
- Always include a README.md that explains how to run the code.
- Always call the tool with valid JSON arguments. Do NOT output non-JSON tool arguments.
- Pass the full user request as the tool's spec.
- After the tool call, reply to the user with the repo URL from the tool result.`

// Generator creates repositories from specs
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// CoderAgent turns coding requests into new repositories
type CoderAgent struct {
	agent     *agents.Agent
	config    *utils.Config
	generator Generator
}

var _ agent.CustomAgent = (*CoderAgent)(nil)

// NewCoderAgent creates a coding agent backed by gen
func NewCoderAgent(gen Generator, prompts utils.PromptSet, config *utils.Config) *CoderAgent {
	ca := &CoderAgent{
		config:    config,
		generator: gen,
	}

	instructions := agent.NewPromptBuilder(prompts.Get(ID, Instructions)).
		AddDateTime(time.Now()).
		Build()

	ca.agent = agents.New(ID).
		WithInstructions(instructions).
		WithModel(agent.Model(config)).
		WithModelSettings(modelsettings.ModelSettings{
			ToolChoice: modelsettings.ToolChoiceString(ToolName),
		}).
		WithTools(ca.generateTool())

	return ca
}

// Agent returns the underlying openai-agents-go instance
func (ca *CoderAgent) Agent() *agents.Agent {
	return ca.agent
}

// ID returns the agent identifier
func (ca *CoderAgent) ID() string {
	return ID
}

// MaxTurns returns the model turn limit for one run
func (ca *CoderAgent) MaxTurns() uint64 {
	return MaxTurns
}

// Config returns the agent configuration
func (ca *CoderAgent) Config() *utils.Config {
	return ca.config
}
