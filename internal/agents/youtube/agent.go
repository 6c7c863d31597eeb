package youtube

import (
	"net/http"
	"strings"
	"time"

	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
)

const (
	ID = "youtube-summarizer-agent"

	// HistoryRuns is the number of recent user turns replayed to the summarizer
	HistoryRuns = 5

	// DefaultBaseURL hosts both the oEmbed and the timedtext endpoints
	DefaultBaseURL = "https://www.youtube.com"

	Instructions = `You are a helpful assistant with access to external tools via YouTube Tools.
## How You Work
1. Understand what the user needs
2. Use your tools to find information or take action
3. Provide clear answers based on tool results
4. If a tool can't help, say so and suggest alternatives
## Guidelines
- Be direct and concise
- Explain what you're doing when using tools`
)

// YouTubeAgent summarizes videos from their metadata and captions
type YouTubeAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ agent.CustomAgent = (*YouTubeAgent)(nil)

// NewYouTubeAgent creates the summarizer. YOUTUBE_BASE_URL overrides the host and
// YOUTUBE_CAPTION_LANGUAGE the caption track (default en)
func NewYouTubeAgent(prompts utils.PromptSet, config *utils.Config) *YouTubeAgent {
	ya := &YouTubeAgent{
		config:   config,
		baseURL:  strings.TrimRight(config.GetWithDefault("YOUTUBE_BASE_URL", DefaultBaseURL), "/"),
		language: config.GetWithDefault("YOUTUBE_CAPTION_LANGUAGE", "en"),
		httpClient: &http.Client{
			Timeout: config.GetDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		},
	}

	instructions := agent.NewPromptBuilder(prompts.Get(ID, Instructions)).
		AddDateTime(time.Now()).
		Build()

	ya.agent = agents.New(ID).
		WithInstructions(instructions).
		WithModel(agent.Model(config))

	ya.registerTools()

	return ya
}

// Agent returns the underlying openai-agents-go instance
func (ya *YouTubeAgent) Agent() *agents.Agent {
	return ya.agent
}

// HistoryRuns returns the conversation window for this agent
func (ya *YouTubeAgent) HistoryRuns() int {
	return HistoryRuns
}

// ID returns the agent identifier
func (ya *YouTubeAgent) ID() string {
	return ID
}

// Config returns the agent configuration
func (ya *YouTubeAgent) Config() *utils.Config {
	return ya.config
}
