// Package orchestrator registers the agents and runs them with conversation history
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ethanbaker/repogen/internal/agents/coder"
	"github.com/ethanbaker/repogen/internal/agents/team"
	"github.com/ethanbaker/repogen/internal/agents/youtube"
	"github.com/ethanbaker/repogen/internal/stores/conversation"
	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/memory"
)

var (
	ErrUnknownAgent = errors.New("unknown agent")
	ErrEmptyInput   = errors.New("content is required")
)

// turnLimited agents bound the number of model turns in one run
type turnLimited interface {
	MaxTurns() uint64
}

// historyWindowed agents replay their own number of recent user turns
type historyWindowed interface {
	HistoryRuns() int
}

// Factory builds a fresh agent for each run
type Factory func() agent.CustomAgent

// Runner executes an agent turn. The default uses openai-agents-go
type Runner func(ctx context.Context, a agent.CustomAgent, session memory.Session, input string) (string, error)

// Orchestrator maps agent ids to factories and runs them
type Orchestrator struct {
	factories     map[string]Factory
	conversations conversation.Store
	run           Runner
}

// New creates an empty orchestrator. conversations may be nil, in which case
// runs never carry history
func New(conversations conversation.Store) *Orchestrator {
	return &Orchestrator{
		factories:     make(map[string]Factory),
		conversations: conversations,
		run:           runAgent,
	}
}

// NewDefault registers the coding agent, the research team and the YouTube summarizer
func NewDefault(gen coder.Generator, conversations conversation.Store, prompts utils.PromptSet, config *utils.Config) *Orchestrator {
	o := New(conversations)

	o.Register(coder.ID, func() agent.CustomAgent { return coder.NewCoderAgent(gen, prompts, config) })
	o.Register(team.ID, func() agent.CustomAgent { return team.NewResearchTeam(prompts, config) })
	o.Register(youtube.ID, func() agent.CustomAgent { return youtube.NewYouTubeAgent(prompts, config) })

	return o
}

// Register adds or replaces the factory for id
func (o *Orchestrator) Register(id string, factory Factory) {
	o.factories[id] = factory
}

// WithRunner replaces how agent turns are executed
func (o *Orchestrator) WithRunner(run Runner) *Orchestrator {
	o.run = run
	return o
}

// IDs returns the registered agent ids in sorted order
func (o *Orchestrator) IDs() []string {
	ids := make([]string, 0, len(o.factories))
	for id := range o.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// RunResult is the outcome of one agent turn
type RunResult struct {
	AgentID        string `json:"agent_id"`
	ConversationID string `json:"conversation_id,omitempty"`
	FinalOutput    string `json:"final_output"`
}

// Run executes one turn of agent id. When conversationKey is not empty the
// conversation for that key supplies history and records the turn
func (o *Orchestrator) Run(ctx context.Context, id, conversationKey, content string) (*RunResult, error) {
	factory, ok := o.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, id)
	}
	if content == "" {
		return nil, ErrEmptyInput
	}

	result := &RunResult{AgentID: id}
	a := factory()

	var session memory.Session
	if conversationKey != "" && o.conversations != nil {
		conv, err := o.conversations.Open(ctx, conversationKey)
		if err != nil {
			return nil, fmt.Errorf("failed to open conversation: %w", err)
		}
		if windowed, ok := a.(historyWindowed); ok {
			conv = conv.WithRuns(windowed.HistoryRuns())
		}
		session = conv
		result.ConversationID = conv.SessionID(ctx)
	}

	output, err := o.run(ctx, a, session, content)
	if err != nil {
		log.Printf("[ORCHESTRATOR]: Agent %s failed: %v", id, err)
		return nil, fmt.Errorf("agent execution failed: %w", err)
	}

	result.FinalOutput = output
	return result, nil
}

func runAgent(ctx context.Context, a agent.CustomAgent, session memory.Session, input string) (string, error) {
	runner := agents.Runner{}
	if session != nil {
		runner.Config.Session = session
	}
	if limited, ok := a.(turnLimited); ok {
		runner.Config.MaxTurns = limited.MaxTurns()
	}

	resp, err := runner.Run(ctx, a.Agent(), input)
	if err != nil {
		return "", err
	}

	return fmt.Sprint(resp.FinalOutput), nil
}
