// tools.go handles registering tools for the NewsAgent
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
)

const maxStories = 50

// Story is a HackerNews item of type story
type Story struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Descendants int    `json:"descendants"`
	Type        string `json:"type"`
}

// User is a HackerNews user profile
type User struct {
	ID        string `json:"id"`
	Karma     int    `json:"karma"`
	About     string `json:"about"`
	Created   int64  `json:"created"`
	Submitted []int  `json:"submitted"`
}

func (na *NewsAgent) registerTools() {
	topStoriesTool := agents.FunctionTool{
		Name:        "get_top_hackernews_stories",
		Description: "Get the current top stories from HackerNews",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"num_stories": map[string]any{
					"type":        "integer",
					"description": "Number of stories to return (1-50)",
					"minimum":     1,
					"maximum":     maxStories,
				},
			},
			"additionalProperties": false,
			"required":             []string{"num_stories"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return na.handleTopStories(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	userDetailsTool := agents.FunctionTool{
		Name:        "get_user_details",
		Description: "Get the profile of a HackerNews user",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{
					"type":        "string",
					"description": "HackerNews username",
				},
			},
			"additionalProperties": false,
			"required":             []string{"username"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return na.handleUserDetails(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	na.agent.WithTools(topStoriesTool, userDetailsTool)
}

// handleTopStories fetches the top story ids and then each story in rank order
func (na *NewsAgent) handleTopStories(ctx context.Context, arguments string) (map[string]any, error) {
	var params struct {
		NumStories int `json:"num_stories"`
	}
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if params.NumStories < 1 || params.NumStories > maxStories {
		return nil, fmt.Errorf("num_stories must be between 1 and %d", maxStories)
	}

	var ids []int
	if err := utils.GetJSON(ctx, na.httpClient, na.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("failed to fetch top stories: %w", err)
	}

	if len(ids) > params.NumStories {
		ids = ids[:params.NumStories]
	}

	stories := make([]Story, 0, len(ids))
	for _, id := range ids {
		var story Story
		if err := utils.GetJSON(ctx, na.httpClient, fmt.Sprintf("%s/item/%d.json", na.baseURL, id), &story); err != nil {
			return nil, fmt.Errorf("failed to fetch story %d: %w", id, err)
		}
		stories = append(stories, story)
	}

	return map[string]any{
		"stories": stories,
		"count":   len(stories),
	}, nil
}

func (na *NewsAgent) handleUserDetails(ctx context.Context, arguments string) (map[string]any, error) {
	var params struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if params.Username == "" {
		return nil, fmt.Errorf("username parameter is required")
	}

	var user *User
	if err := utils.GetJSON(ctx, na.httpClient, na.baseURL+"/user/"+url.PathEscape(params.Username)+".json", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	// The API answers null for unknown users
	if user == nil {
		return nil, fmt.Errorf("user %q not found", params.Username)
	}

	return map[string]any{
		"user_id":               user.ID,
		"karma":                 user.Karma,
		"about":                 user.About,
		"created":               user.Created,
		"total_items_submitted": len(user.Submitted),
	}, nil
}
