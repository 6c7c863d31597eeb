package team

import (
	"github.com/ethanbaker/repogen/internal/agents/finance"
	"github.com/ethanbaker/repogen/internal/agents/news"
	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
)

const (
	ID           = "research-team"
	Instructions = "Delegate to the appropriate agent based on the request."
)

// ResearchTeam hands requests off to the news and finance agents
type ResearchTeam struct {
	agent   *agents.Agent
	config  *utils.Config
	members []agent.CustomAgent
}

var _ agent.CustomAgent = (*ResearchTeam)(nil)

// NewResearchTeam creates the team and its members
func NewResearchTeam(prompts utils.PromptSet, config *utils.Config) *ResearchTeam {
	newsAgent := news.NewNewsAgent(prompts, config)
	financeAgent := finance.NewFinanceAgent(prompts, config)

	newsHandoff := agents.HandoffFromAgent(agents.HandoffFromAgentParams{
		Agent:                   newsAgent.Agent(),
		ToolNameOverride:        "handoff_to_news_agent",
		ToolDescriptionOverride: "Hand off to the News Agent for trending tech news, HackerNews stories or HackerNews users",
	})

	financeHandoff := agents.HandoffFromAgent(agents.HandoffFromAgentParams{
		Agent:                   financeAgent.Agent(),
		ToolNameOverride:        "handoff_to_finance_agent",
		ToolDescriptionOverride: "Hand off to the Finance Agent for stock prices and financial data",
	})

	agentInstance := agents.New(ID).
		WithInstructions(prompts.Get(ID, Instructions)).
		WithModel(agent.Model(config)).
		WithHandoffs(newsHandoff, financeHandoff)

	return &ResearchTeam{
		agent:   agentInstance,
		config:  config,
		members: []agent.CustomAgent{newsAgent, financeAgent},
	}
}

// Agent returns the underlying openai-agents-go instance
func (rt *ResearchTeam) Agent() *agents.Agent {
	return rt.agent
}

// ID returns the agent identifier
func (rt *ResearchTeam) ID() string {
	return ID
}

// Config returns the agent configuration
func (rt *ResearchTeam) Config() *utils.Config {
	return rt.config
}

// Members returns the agents the team delegates to
func (rt *ResearchTeam) Members() []agent.CustomAgent {
	return rt.members
}
