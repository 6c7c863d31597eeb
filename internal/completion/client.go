// Package completion talks to the chat completion service that writes project files
package completion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

// DefaultModel is used when OPENAI_CODE_MODEL is unset
const DefaultModel = "gpt-5.2"

// Config holds the completion client settings
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ConfigFromEnv reads OPENAI_API_KEY, OPENAI_BASE_URL and OPENAI_CODE_MODEL
func ConfigFromEnv(config *utils.Config) Config {
	return Config{
		APIKey:  config.Get("OPENAI_API_KEY"),
		BaseURL: config.Get("OPENAI_BASE_URL"),
		Model:   config.GetWithDefault("OPENAI_CODE_MODEL", DefaultModel),
	}
}

// Client requests JSON-object chat completions. Requests are never retried
type Client struct {
	openai openai.Client
	model  string
}

// NewClient creates a completion client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		openai: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Model returns the model used for completions
func (c *Client) Model() string {
	return c.model
}

// Complete sends one system and one user message and returns the content of the
// first choice. An empty answer is returned as "{}"
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion returned status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	log.Printf("[COMPLETION]: model %s answered in %dms (%d prompt, %d completion tokens)",
		c.model, time.Since(start).Milliseconds(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "{}", nil
	}

	return resp.Choices[0].Message.Content, nil
}
