package agent

import (
	"testing"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/stretchr/testify/assert"
)

// mockAgent implements CustomAgent for testing
type mockAgent struct {
	id     string
	config *utils.Config
	agent  *agents.Agent
}

func (m *mockAgent) Agent() *agents.Agent  { return m.agent }
func (m *mockAgent) ID() string            { return m.id }
func (m *mockAgent) Config() *utils.Config { return m.config }

func TestCustomAgent_Interface(t *testing.T) {
	var a CustomAgent = &mockAgent{
		id:     "coder-agent",
		config: utils.NewConfig(map[string]string{"MODEL": "gpt-test"}),
		agent:  agents.New("coder-agent"),
	}

	assert.Equal(t, "coder-agent", a.ID())
	assert.NotNil(t, a.Agent())
	assert.Equal(t, "gpt-test", a.Config().Get("MODEL"))
}

func TestModel(t *testing.T) {
	assert.Equal(t, "gpt-test", Model(utils.NewConfig(map[string]string{"MODEL": "gpt-test"})))
	assert.Equal(t, DefaultModel, Model(utils.NewConfig(nil)))
}
