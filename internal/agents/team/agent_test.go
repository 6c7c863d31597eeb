package team

import (
	"testing"

	"github.com/ethanbaker/repogen/internal/agents/finance"
	"github.com/ethanbaker/repogen/internal/agents/news"
	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResearchTeam(t *testing.T) {
	rt := NewResearchTeam(utils.PromptSet{}, utils.NewConfig(map[string]string{"MODEL": "gpt-test"}))

	assert.Equal(t, ID, rt.ID())
	require.NotNil(t, rt.Agent())
	assert.Equal(t, "gpt-test", rt.Config().Get("MODEL"))

	members := rt.Members()
	require.Len(t, members, 2)
	assert.Equal(t, news.ID, members[0].ID())
	assert.Equal(t, finance.ID, members[1].ID())
}
