// tools.go handles registering tools for the YouTubeAgent
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
)

// VideoData is the oEmbed description of a video
type VideoData struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	Type         string `json:"type"`
	Height       int    `json:"height"`
	Width        int    `json:"width"`
	Version      string `json:"version"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func urlSchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"additionalProperties": false,
		"required":             []string{"url"},
	}
}

func (ya *YouTubeAgent) registerTools() {
	ya.agent.WithTools(
		agents.FunctionTool{
			Name:             "get_youtube_video_data",
			Description:      "Get the title, channel and thumbnail of a YouTube video",
			ParamsJSONSchema: urlSchema("URL of the YouTube video"),
			StrictJSONSchema: param.NewOpt(true),
			OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
				return ya.handleVideoData(ctx, arguments)
			},
			IsEnabled: agents.FunctionToolEnabled(),
		},
		agents.FunctionTool{
			Name:             "get_youtube_video_captions",
			Description:      "Get the full caption text of a YouTube video",
			ParamsJSONSchema: urlSchema("URL of the YouTube video"),
			StrictJSONSchema: param.NewOpt(true),
			OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
				return ya.handleCaptions(ctx, arguments)
			},
			IsEnabled: agents.FunctionToolEnabled(),
		},
		agents.FunctionTool{
			Name:             "get_video_timestamps",
			Description:      "Get the captions of a YouTube video as timestamped lines, useful for chaptering a summary",
			ParamsJSONSchema: urlSchema("URL of the YouTube video"),
			StrictJSONSchema: param.NewOpt(true),
			OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
				return ya.handleTimestamps(ctx, arguments)
			},
			IsEnabled: agents.FunctionToolEnabled(),
		},
	)
}

func parseURLArgument(arguments string) (string, error) {
	var params struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if params.URL == "" {
		return "", fmt.Errorf("url parameter is required")
	}
	return params.URL, nil
}

func (ya *YouTubeAgent) handleVideoData(ctx context.Context, arguments string) (*VideoData, error) {
	videoURL, err := parseURLArgument(arguments)
	if err != nil {
		return nil, err
	}

	id, err := VideoID(videoURL)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("url", "https://www.youtube.com/watch?v="+id)

	var data VideoData
	if err := utils.GetJSON(ctx, ya.httpClient, ya.baseURL+"/oembed?"+query.Encode(), &data); err != nil {
		return nil, fmt.Errorf("failed to fetch video data: %w", err)
	}

	return &data, nil
}

func (ya *YouTubeAgent) captions(ctx context.Context, arguments string) ([]Caption, error) {
	videoURL, err := parseURLArgument(arguments)
	if err != nil {
		return nil, err
	}

	id, err := VideoID(videoURL)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("lang", ya.language)
	query.Set("v", id)

	body, err := utils.GetBody(ctx, ya.httpClient, ya.baseURL+"/api/timedtext?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}

	return ParseCaptions(body)
}

func (ya *YouTubeAgent) handleCaptions(ctx context.Context, arguments string) (map[string]any, error) {
	captions, err := ya.captions(ctx, arguments)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(captions))
	for i, c := range captions {
		lines[i] = c.Text
	}

	return map[string]any{
		"captions": strings.Join(lines, " "),
		"lines":    len(lines),
	}, nil
}

func (ya *YouTubeAgent) handleTimestamps(ctx context.Context, arguments string) (map[string]any, error) {
	captions, err := ya.captions(ctx, arguments)
	if err != nil {
		return nil, err
	}

	timestamps := make([]string, len(captions))
	for i, c := range captions {
		timestamps[i] = Timestamp(c.Start) + " - " + c.Text
	}

	return map[string]any{
		"timestamps": timestamps,
	}, nil
}
