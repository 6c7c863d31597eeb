package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client wraps calls to the repogen backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// APIError is returned for non-2xx responses. Detail holds the decoded error
// field of the envelope when there is one
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Detail     json.RawMessage
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("backend '%s %s' failed: %d", e.Method, e.Path, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Detail) > 0 && string(e.Detail) != "null" {
		msg += " " + string(e.Detail)
	}
	return msg
}

// GenerationError decodes Detail as a generation failure, when it is one
func (e *APIError) GenerationError() (*GenerationError, bool) {
	var detail GenerationError
	if len(e.Detail) == 0 || json.Unmarshal(e.Detail, &detail) != nil || detail.Kind == "" {
		return nil, false
	}
	return &detail, true
}

// Health checks that the server is up
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Generate creates a repository from a spec
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*Generation, error) {
	var out ApiResponse[Generation]
	if err := c.doJSON(ctx, http.MethodPost, "/api/generations", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListGenerations returns the newest runs first. limit <= 0 uses the server default
func (c *Client) ListGenerations(ctx context.Context, limit int) ([]Run, error) {
	path := "/api/generations"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var out ApiResponse[[]Run]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetGeneration returns one run by UUID
func (c *Client) GetGeneration(ctx context.Context, uuid string) (*Run, error) {
	var out ApiResponse[Run]
	if err := c.doJSON(ctx, http.MethodGet, "/api/generations/"+url.PathEscape(uuid), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListAgents returns the ids of the agents the server can run
func (c *Client) ListAgents(ctx context.Context) ([]string, error) {
	var out ApiResponse[[]string]
	if err := c.doJSON(ctx, http.MethodGet, "/api/agents", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// RunAgent sends one message to an agent
func (c *Client) RunAgent(ctx context.Context, agentID string, req *RunAgentRequest) (*AgentRun, error) {
	var out ApiResponse[AgentRun]
	if err := c.doJSON(ctx, http.MethodPost, "/api/agents/"+url.PathEscape(agentID)+"/run", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}

		var envelope struct {
			Message string          `json:"message"`
			Error   json.RawMessage `json:"error"`
		}
		if json.Unmarshal(b, &envelope) == nil {
			apiErr.Message = envelope.Message
			apiErr.Detail = envelope.Error
		} else {
			apiErr.Message = string(b)
		}
		return apiErr
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	return json.NewDecoder(resp.Body).Decode(out)
}
