package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UserAgent is sent by tools that call public web APIs
const UserAgent = "repogen/1.0"

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 2048

// HTTPStatusError is returned by GetJSON and GetBody for non-2xx responses
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// GetBody performs a GET request and returns the response body
func GetBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// GetJSON performs a GET request and decodes the JSON response into out
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	body, err := GetBody(ctx, client, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
