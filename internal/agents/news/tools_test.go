package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T) *NewsAgent {
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]int{3, 1, 2})
	})
	mux.HandleFunc("/item/", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.URL.Path, "/item/%d.json", &id)
		json.NewEncoder(w).Encode(Story{ID: id, Title: fmt.Sprintf("Story %d", id), Score: id * 10, By: "pg", Type: "story"})
	})
	mux.HandleFunc("/user/pg.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(User{ID: "pg", Karma: 155000, About: "Bug fixer.", Submitted: []int{1, 2, 3}})
	})
	mux.HandleFunc("/user/ghost.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewNewsAgent(utils.PromptSet{}, utils.NewConfig(map[string]string{"HACKERNEWS_API_BASE": server.URL + "/"}))
}

func TestHandleTopStories(t *testing.T) {
	na := newTestAgent(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		arguments string
		wantIDs   []int
		wantError bool
	}{
		{name: "two stories in rank order", arguments: `{"num_stories": 2}`, wantIDs: []int{3, 1}},
		{name: "more than available", arguments: `{"num_stories": 10}`, wantIDs: []int{3, 1, 2}},
		{name: "zero", arguments: `{"num_stories": 0}`, wantError: true},
		{name: "too many", arguments: `{"num_stories": 51}`, wantError: true},
		{name: "invalid json", arguments: `{`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := na.handleTopStories(ctx, tt.arguments)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			stories := out["stories"].([]Story)
			var ids []int
			for _, s := range stories {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), out["count"])
			assert.Equal(t, "Story 3", stories[0].Title)
		})
	}
}

func TestHandleUserDetails(t *testing.T) {
	na := newTestAgent(t)
	ctx := context.Background()

	out, err := na.handleUserDetails(ctx, `{"username": "pg"}`)
	require.NoError(t, err)
	assert.Equal(t, "pg", out["user_id"])
	assert.Equal(t, 155000, out["karma"])
	assert.Equal(t, 3, out["total_items_submitted"])

	_, err = na.handleUserDetails(ctx, `{"username": "ghost"}`)
	assert.Error(t, err)

	_, err = na.handleUserDetails(ctx, `{"username": ""}`)
	assert.Error(t, err)

	_, err = na.handleUserDetails(ctx, `{"username": "nobody"}`)
	assert.Error(t, err)
}
