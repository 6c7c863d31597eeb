package news

import (
	"net/http"
	"strings"
	"time"

	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
)

const (
	ID = "news-agent"

	// DefaultBaseURL is the public HackerNews Firebase API
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

	Instructions = "You are the News Agent. Get trending tech news from HackerNews. " +
		"Use your tools to fetch stories and user details, and cite story links in your answer."
)

// NewsAgent answers questions about trending tech news
type NewsAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	baseURL    string
	httpClient *http.Client
}

var _ agent.CustomAgent = (*NewsAgent)(nil)

// NewNewsAgent creates a news agent. HACKERNEWS_API_BASE overrides the API location
func NewNewsAgent(prompts utils.PromptSet, config *utils.Config) *NewsAgent {
	na := &NewsAgent{
		config:  config,
		baseURL: strings.TrimRight(config.GetWithDefault("HACKERNEWS_API_BASE", DefaultBaseURL), "/"),
		httpClient: &http.Client{
			Timeout: config.GetDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		},
	}

	na.agent = agents.New(ID).
		WithInstructions(prompts.Get(ID, Instructions)).
		WithModel(agent.Model(config))

	na.registerTools()

	return na
}

// Agent returns the underlying openai-agents-go instance
func (na *NewsAgent) Agent() *agents.Agent {
	return na.agent
}

// ID returns the agent identifier
func (na *NewsAgent) ID() string {
	return ID
}

// Config returns the agent configuration
func (na *NewsAgent) Config() *utils.Config {
	return na.config
}
