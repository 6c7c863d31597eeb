package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", "secret")
}

func reply[T any](w http.ResponseWriter, resp ApiResponse[T]) {
	code, body := resp.AsGinResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func TestGenerate(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generations", r.URL.Path)

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a todo app", req.Spec)
		assert.Equal(t, "public", req.Visibility)

		reply(w, NewSuccessResponse("Repository created", Generation{RunID: "r1", FullName: "user/todo", URL: "https://github.com/user/todo"}))
	})

	gen, err := client.Generate(context.Background(), &GenerateRequest{Spec: "a todo app", Visibility: "public"})
	require.NoError(t, err)
	assert.Equal(t, "user/todo", gen.FullName)
	assert.Equal(t, "r1", gen.RunID)
	assert.False(t, gen.Private)
}

func TestGenerate_Failure(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, NewErrorResponse(http.StatusBadGateway, "Generation failed", GenerationError{
			Kind:       "file_upload_failed",
			Message:    "failed to create file",
			Path:       "b.txt",
			StatusCode: 409,
			Repository: "user/todo",
			Uploaded:   1,
		}))
	})

	_, err := client.Generate(context.Background(), &GenerateRequest{Spec: "a todo app"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Generation failed", apiErr.Message)

	detail, ok := apiErr.GenerationError()
	require.True(t, ok)
	assert.Equal(t, "file_upload_failed", detail.Kind)
	assert.Equal(t, "b.txt", detail.Path)
	assert.Equal(t, "user/todo", detail.Repository)
	assert.Equal(t, 1, detail.Uploaded)
}

func TestListAndGetGenerations(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generations":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			reply(w, NewSuccessResponse("OK", []Run{{ID: "a", Status: "completed"}, {ID: "b", Status: "failed"}}))
		case "/api/generations/a":
			reply(w, NewSuccessResponse("OK", Run{ID: "a", Status: "completed", FullName: "user/a"}))
		default:
			reply(w, NewFailResponse(http.StatusNotFound, "Run not found", nil))
		}
	})
	ctx := context.Background()

	runs, err := client.ListGenerations(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "failed", runs[1].Status)

	run, err := client.GetGeneration(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "user/a", run.FullName)

	_, err = client.GetGeneration(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	_, ok := apiErr.GenerationError()
	assert.False(t, ok)
}

func TestAgents(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/agents":
			reply(w, NewSuccessResponse("OK", []string{"coder-agent", "research-team"}))
		case r.Method == http.MethodPost && r.URL.Path == "/api/agents/research-team/run":
			var req RunAgentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			reply(w, NewSuccessResponse("OK", AgentRun{AgentID: "research-team", ConversationID: "c1", FinalOutput: "NVDA is up: " + req.ConversationID}))
		default:
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte("plain text"))
		}
	})
	ctx := context.Background()

	ids, err := client.ListAgents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coder-agent", "research-team"}, ids)

	run, err := client.RunAgent(ctx, "research-team", &RunAgentRequest{Content: "NVDA?", ConversationID: "me"})
	require.NoError(t, err)
	assert.Equal(t, "NVDA is up: me", run.FinalOutput)
	assert.Equal(t, "c1", run.ConversationID)

	_, err = client.RunAgent(ctx, "other", &RunAgentRequest{Content: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTeapot, apiErr.StatusCode)
	assert.Equal(t, "plain text", apiErr.Message)
}

func TestResponses(t *testing.T) {
	ok := NewSuccessResponse("OK", 1)
	assert.Equal(t, api_types.StatusSuccess, ok.Status)
	assert.Equal(t, http.StatusOK, ok.Code)

	fail := NewFailResponse(http.StatusBadRequest, "bad", "why")
	assert.Equal(t, api_types.StatusFail, fail.Status)

	errResp := NewErrorResponse(http.StatusInternalServerError, "boom", nil)
	assert.Equal(t, api_types.StatusError, errResp.Status)

	s, err := ok.AsJSON()
	require.NoError(t, err)
	assert.Contains(t, s, `"message":"OK"`)
	assert.Contains(t, s, `"data":1`)
}
