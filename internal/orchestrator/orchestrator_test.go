package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/ethanbaker/repogen/internal/agents/coder"
	"github.com/ethanbaker/repogen/internal/agents/team"
	"github.com/ethanbaker/repogen/internal/agents/youtube"
	"github.com/ethanbaker/repogen/internal/generator"
	"github.com/ethanbaker/repogen/internal/stores/conversation"
	"github.com/ethanbaker/repogen/pkg/agent"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/openai/openai-go/v2/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopGenerator struct{}

func (nopGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	return &generator.Result{}, nil
}

// echoRunner records the user message in the session and echoes it with the agent id
func echoRunner(ctx context.Context, a agent.CustomAgent, session memory.Session, input string) (string, error) {
	if session != nil {
		item := responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser)
		if err := session.AddItems(ctx, []memory.TResponseInputItem{item}); err != nil {
			return "", err
		}
	}
	return a.ID() + ": " + input, nil
}

func newTestOrchestrator(store conversation.Store) *Orchestrator {
	return NewDefault(nopGenerator{}, store, utils.PromptSet{}, utils.NewConfig(nil)).WithRunner(echoRunner)
}

func TestIDs(t *testing.T) {
	o := newTestOrchestrator(nil)
	assert.Equal(t, []string{coder.ID, team.ID, youtube.ID}, o.IDs())
}

func TestRun(t *testing.T) {
	o := newTestOrchestrator(nil)

	result, err := o.Run(context.Background(), coder.ID, "", "make a CLI")
	require.NoError(t, err)
	assert.Equal(t, coder.ID, result.AgentID)
	assert.Equal(t, "coder-agent: make a CLI", result.FinalOutput)
	assert.Empty(t, result.ConversationID)
}

func TestRun_Errors(t *testing.T) {
	o := newTestOrchestrator(nil)

	_, err := o.Run(context.Background(), "missing", "", "hi")
	assert.ErrorIs(t, err, ErrUnknownAgent)

	_, err = o.Run(context.Background(), coder.ID, "", "")
	assert.ErrorIs(t, err, ErrEmptyInput)

	o.WithRunner(func(ctx context.Context, a agent.CustomAgent, session memory.Session, input string) (string, error) {
		return "", errors.New("model unavailable")
	})
	_, err = o.Run(context.Background(), coder.ID, "", "hi")
	assert.ErrorContains(t, err, "model unavailable")
}

func TestRun_WithConversation(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewInMemoryStore(conversation.DefaultRuns)
	o := newTestOrchestrator(store)

	first, err := o.Run(ctx, team.ID, "+15550100", "how is NVDA?")
	require.NoError(t, err)
	second, err := o.Run(ctx, team.ID, "+15550100", "and AMD?")
	require.NoError(t, err)

	assert.NotEmpty(t, first.ConversationID)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	session, err := store.Open(ctx, "+15550100")
	require.NoError(t, err)
	items, err := session.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRegister(t *testing.T) {
	o := New(nil).WithRunner(echoRunner)
	o.Register("custom", func() agent.CustomAgent {
		return coder.NewCoderAgent(nopGenerator{}, utils.PromptSet{}, utils.NewConfig(nil))
	})

	assert.Equal(t, []string{"custom"}, o.IDs())

	result, err := o.Run(context.Background(), "custom", "", "hi")
	require.NoError(t, err)
	assert.Equal(t, "coder-agent: hi", result.FinalOutput)
}

var (
	_ turnLimited     = (*coder.CoderAgent)(nil)
	_ historyWindowed = (*youtube.YouTubeAgent)(nil)
)

func TestRun_AgentHistoryWindow(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewInMemoryStore(conversation.DefaultRuns)

	var replayed int
	o := NewDefault(nopGenerator{}, store, utils.PromptSet{}, utils.NewConfig(nil)).
		WithRunner(func(ctx context.Context, a agent.CustomAgent, session memory.Session, input string) (string, error) {
			items, err := session.GetItems(ctx, 0)
			if err != nil {
				return "", err
			}
			replayed = len(items)
			return echoRunner(ctx, a, session, input)
		})

	for range 7 {
		_, err := o.Run(ctx, youtube.ID, "viewer", "summarize")
		require.NoError(t, err)
	}
	assert.Equal(t, youtube.HistoryRuns, replayed)

	for range 7 {
		_, err := o.Run(ctx, team.ID, "analyst", "quote")
		require.NoError(t, err)
	}
	assert.Equal(t, conversation.DefaultRuns, replayed)
}
