package conversation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userMessage(text string) memory.TResponseInputItem {
	item := responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser)
	item.OfMessage.Type = responses.EasyInputMessageTypeMessage
	return item
}

func assistantMessage(text string) memory.TResponseInputItem {
	item := responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleAssistant)
	item.OfMessage.Type = responses.EasyInputMessageTypeMessage
	return item
}

func functionCall(id string) memory.TResponseInputItem {
	item := responses.ResponseInputItemParamOfFunctionCall(`{}`, id, "generate_code_and_create_repo")
	item.OfFunctionCall.Type = constant.ValueOf[constant.FunctionCall]()
	return item
}

func functionOutput(id string) memory.TResponseInputItem {
	item := responses.ResponseInputItemParamOfFunctionCallOutput(id, "done")
	item.OfFunctionCallOutput.Type = constant.ValueOf[constant.FunctionCallOutput]()
	return item
}

// texts summarizes items as "role:text" or "type:call_id"
func texts(items []memory.TResponseInputItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case item.OfMessage != nil:
			out = append(out, string(item.OfMessage.Role)+":"+item.OfMessage.Content.OfString.Value)
		case item.OfFunctionCall != nil:
			out = append(out, "call:"+item.OfFunctionCall.CallID)
		case item.OfFunctionCallOutput != nil:
			out = append(out, "output:"+item.OfFunctionCallOutput.CallID)
		default:
			out = append(out, *item.GetType())
		}
	}
	return out
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(0)

	first, err := store.Open(ctx, "+15550100")
	require.NoError(t, err)
	again, err := store.Open(ctx, "+15550100")
	require.NoError(t, err)
	other, err := store.Open(ctx, "cli")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID(ctx), again.SessionID(ctx))
	assert.NotEqual(t, first.SessionID(ctx), other.SessionID(ctx))
	assert.Equal(t, "+15550100", first.Conversation().ExternalID)

	_, err = store.Open(ctx, "")
	assert.Error(t, err)
}

func TestGetAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(0)

	session, err := store.Open(ctx, "cli")
	require.NoError(t, err)
	require.NoError(t, session.AddItems(ctx, []memory.TResponseInputItem{userMessage("hi")}))

	got, err := store.Get(ctx, session.Conversation().ID)
	require.NoError(t, err)
	items, err := got.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:hi"}, texts(items))

	require.NoError(t, store.Delete(ctx, session.Conversation().ID))
	_, err = store.Get(ctx, session.Conversation().ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, uuid.New()), ErrNotFound)

	// Reopening starts a fresh conversation
	reopened, err := store.Open(ctx, "cli")
	require.NoError(t, err)
	items, err = reopened.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetItems_Window(t *testing.T) {
	ctx := context.Background()

	history := []memory.TResponseInputItem{
		userMessage("one"), assistantMessage("a1"),
		userMessage("two"), functionCall("c2"), functionOutput("c2"), assistantMessage("a2"),
		userMessage("three"), assistantMessage("a3"),
		userMessage("four"), assistantMessage("a4"),
	}

	tests := []struct {
		name  string
		runs  int
		limit int
		want  []string
	}{
		{
			name: "no window returns everything",
			runs: 0,
			want: texts(history),
		},
		{
			name: "last three runs",
			runs: 3,
			want: []string{
				"user:two", "call:c2", "output:c2", "assistant:a2",
				"user:three", "assistant:a3",
				"user:four", "assistant:a4",
			},
		},
		{
			name: "window larger than history",
			runs: 10,
			want: texts(history),
		},
		{
			name:  "explicit limit",
			runs:  3,
			limit: 3,
			want:  []string{"assistant:a3", "user:four", "assistant:a4"},
		},
		{
			name:  "limit drops orphaned outputs",
			runs:  0,
			limit: 6,
			want:  []string{"assistant:a2", "user:three", "assistant:a3", "user:four", "assistant:a4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := NewInMemoryStore(tt.runs).Open(ctx, "user")
			require.NoError(t, err)
			require.NoError(t, session.AddItems(ctx, history))

			items, err := session.GetItems(ctx, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(items))
		})
	}
}

func TestAddItems_PairsToolCalls(t *testing.T) {
	ctx := context.Background()
	session, err := NewInMemoryStore(0).Open(ctx, "user")
	require.NoError(t, err)

	require.NoError(t, session.AddItems(ctx, []memory.TResponseInputItem{
		userMessage("go"),
		functionCall("c1"),
		assistantMessage("working"),
		functionOutput("c1"),
	}))

	items, err := session.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:go", "call:c1", "output:c1", "assistant:working"}, texts(items))
}

func TestPopAndClear(t *testing.T) {
	ctx := context.Background()
	session, err := NewInMemoryStore(0).Open(ctx, "user")
	require.NoError(t, err)

	popped, err := session.PopItem(ctx)
	require.NoError(t, err)
	assert.Nil(t, popped)

	require.NoError(t, session.AddItems(ctx, []memory.TResponseInputItem{userMessage("one"), assistantMessage("two")}))

	popped, err = session.PopItem(ctx)
	require.NoError(t, err)
	require.NotNil(t, popped)
	assert.Equal(t, []string{"assistant:two"}, texts([]memory.TResponseInputItem{*popped}))

	items, err := session.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:one"}, texts(items))

	require.NoError(t, session.ClearSession(ctx))
	items, err = session.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemData_RoundTrip(t *testing.T) {
	item := userMessage("hello")
	value, err := ItemData{TResponseInputItem: &item}.Value()
	require.NoError(t, err)

	var decoded ItemData
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, []string{"user:hello"}, texts([]memory.TResponseInputItem{*decoded.TResponseInputItem}))

	var empty ItemData
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty.TResponseInputItem)

	assert.Error(t, empty.Scan(42))
}

func TestAddItems_FillsMissingTypes(t *testing.T) {
	ctx := context.Background()
	session, err := NewInMemoryStore(0).Open(ctx, "user")
	require.NoError(t, err)

	// Items as built by the param helpers, without a type discriminator
	require.NoError(t, session.AddItems(ctx, []memory.TResponseInputItem{
		responses.ResponseInputItemParamOfMessage("go", responses.EasyInputMessageRoleUser),
		responses.ResponseInputItemParamOfFunctionCall(`{}`, "c1", "generate_code_and_create_repo"),
		responses.ResponseInputItemParamOfMessage("working", responses.EasyInputMessageRoleAssistant),
		responses.ResponseInputItemParamOfFunctionCallOutput("c1", "done"),
	}))

	items, err := session.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:go", "call:c1", "output:c1", "assistant:working"}, texts(items))

	for _, item := range items {
		require.NotEmpty(t, *item.GetType())

		value, err := ItemData{TResponseInputItem: &item}.Value()
		require.NoError(t, err)

		var decoded ItemData
		require.NoError(t, decoded.Scan(value))
		assert.Equal(t, texts([]memory.TResponseInputItem{item}), texts([]memory.TResponseInputItem{*decoded.TResponseInputItem}))
	}
}

func TestWithRuns(t *testing.T) {
	ctx := context.Background()
	session, err := NewInMemoryStore(1).Open(ctx, "user")
	require.NoError(t, err)

	require.NoError(t, session.AddItems(ctx, []memory.TResponseInputItem{
		userMessage("one"), assistantMessage("a1"),
		userMessage("two"), assistantMessage("a2"),
	}))

	items, err := session.GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user:two", "assistant:a2"}, texts(items))

	items, err = session.WithRuns(5).GetItems(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, session.SessionID(ctx), session.WithRuns(5).SessionID(ctx))
}
