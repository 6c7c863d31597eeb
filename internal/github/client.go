// Package github is a minimal client for the GitHub REST API endpoints the
// generator needs: repository creation and file creation.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/ethanbaker/repogen/internal/generator"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub API
const DefaultBaseURL = "https://api.github.com"

// APIVersion is sent as X-GitHub-Api-Version
const APIVersion = "2022-11-28"

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 4096

// Client calls the GitHub REST API. The bearer token is supplied per call
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL (trailing slashes stripped, empty
// means DefaultBaseURL) with a fixed per-request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the resolved API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is returned when GitHub answers with an unexpected status
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github '%s %s' failed: %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// HTTPStatus returns the response status code
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// HTTPBody returns the (truncated) response body
func (e *StatusError) HTTPBody() string { return e.Body }

type createRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

type repositoryResponse struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	Private  bool   `json:"private"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type createFileRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
}

// CreateRepository creates a repository under spec.Organization, or under the
// authenticated user when no organization is given. Only 201 and 202 count as success
func (c *Client) CreateRepository(ctx context.Context, token string, spec generator.RepositorySpec) (*generator.Repository, error) {
	path := "/user/repos"
	if spec.Organization != "" {
		path = "/orgs/" + url.PathEscape(spec.Organization) + "/repos"
	}

	body := createRepositoryRequest{
		Name:        spec.Name,
		Description: spec.Description,
		Private:     spec.Private,
		AutoInit:    false,
	}

	var out repositoryResponse
	if err := c.doJSON(ctx, token, http.MethodPost, path, body, &out, http.StatusCreated, http.StatusAccepted); err != nil {
		return nil, err
	}

	return &generator.Repository{
		Owner:    out.Owner.Login,
		Name:     out.Name,
		FullName: out.FullName,
		HTMLURL:  out.HTMLURL,
		Private:  out.Private,
	}, nil
}

// CreateFile creates a file through the contents API. write.Content must
// already be base64-encoded. Only 200 and 201 count as success
func (c *Client) CreateFile(ctx context.Context, token string, write generator.FileWrite) error {
	path := fmt.Sprintf("/repos/%s/%s/contents/%s",
		url.PathEscape(write.Owner), url.PathEscape(write.Repository), escapePath(write.Path))

	body := createFileRequest{
		Message: write.Message,
		Content: write.Content,
		Branch:  write.Branch,
	}

	return c.doJSON(ctx, token, http.MethodPut, path, body, nil, http.StatusOK, http.StatusCreated)
}

// doJSON performs a JSON request authorized with token and decodes the
// response into out when the status is one of accepted
func (c *Client) doJSON(ctx context.Context, token, method, path string, in, out any, accepted ...int) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Api-Version", APIVersion)

	resp, err := c.authorized(token).Do(req)
	if err != nil {
		return fmt.Errorf("github '%s %s': %w", method, path, err)
	}
	defer resp.Body.Close()

	if !slices.Contains(accepted, resp.StatusCode) {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        path,
			StatusCode: resp.StatusCode,
			Body:       string(b),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github '%s %s': could not decode response: %w", method, path, err)
	}
	return nil
}

// authorized wraps the base client so every request carries "Authorization: Bearer <token>"
func (c *Client) authorized(token string) *http.Client {
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}
}

// escapePath escapes each segment of a slash-separated repository path
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
