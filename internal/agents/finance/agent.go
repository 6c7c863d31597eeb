package finance

import (
	"net/http"
	"strings"
	"time"

	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
)

const (
	ID = "finance-agent"

	// DefaultBaseURL is the Yahoo Finance chart API
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	Instructions = "You are the Finance Agent. Get stock prices and financial data. " +
		"Always state the currency and the time of the quote."
)

// FinanceAgent answers questions about stock prices
type FinanceAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	baseURL    string
	httpClient *http.Client
}

var _ agent.CustomAgent = (*FinanceAgent)(nil)

// NewFinanceAgent creates a finance agent. YAHOO_FINANCE_API_BASE overrides the API location
func NewFinanceAgent(prompts utils.PromptSet, config *utils.Config) *FinanceAgent {
	fa := &FinanceAgent{
		config:  config,
		baseURL: strings.TrimRight(config.GetWithDefault("YAHOO_FINANCE_API_BASE", DefaultBaseURL), "/"),
		httpClient: &http.Client{
			Timeout: config.GetDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		},
	}

	fa.agent = agents.New(ID).
		WithInstructions(prompts.Get(ID, Instructions)).
		WithModel(agent.Model(config))

	fa.registerTools()

	return fa
}

// Agent returns the underlying openai-agents-go instance
func (fa *FinanceAgent) Agent() *agents.Agent {
	return fa.agent
}

// ID returns the agent identifier
func (fa *FinanceAgent) ID() string {
	return ID
}

// Config returns the agent configuration
func (fa *FinanceAgent) Config() *utils.Config {
	return fa.config
}
