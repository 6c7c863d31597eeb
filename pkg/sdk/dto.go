package sdk

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	}
}

// NewFailResponse reports a problem with the request itself (4xx)
func NewFailResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusFail,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

// NewErrorResponse reports a server or upstream problem (5xx)
func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

// GenerateRequest asks the server to create a repository from a spec. Only Spec is required
type GenerateRequest struct {
	Spec          string `json:"spec"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	Visibility    string `json:"visibility,omitempty"` // "private" (default) or "public"
	Organization  string `json:"organization,omitempty"`
	DefaultBranch string `json:"default_branch,omitempty"`
}

// Generation is the repository created by a successful request
type Generation struct {
	RunID    string `json:"run_id"`
	FullName string `json:"full_name"`
	URL      string `json:"url"`
	Private  bool   `json:"private"`
}

// GenerationError describes why a generation failed. Repository is set when a
// repository was created and left with Uploaded files
type GenerationError struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Path       string `json:"path,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Repository string `json:"repository,omitempty"`
	Uploaded   int    `json:"uploaded,omitempty"`
}

// Run is a ledger entry
type Run struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Name           string     `json:"name"`
	Spec           string     `json:"spec"`
	Organization   string     `json:"organization,omitempty"`
	Visibility     string     `json:"visibility"`
	DefaultBranch  string     `json:"default_branch"`
	Status         string     `json:"status"`
	FilesTotal     int        `json:"files_total"`
	FilesUploaded  int        `json:"files_uploaded"`
	FullName       string     `json:"full_name,omitempty"`
	URL            string     `json:"url,omitempty"`
	Private        bool       `json:"private"`
	FailureKind    string     `json:"failure_kind,omitempty"`
	FailureMessage string     `json:"failure_message,omitempty"`
	FailurePath    string     `json:"failure_path,omitempty"`
	ReportedAt     *time.Time `json:"reported_at,omitempty"`
}

// RunAgentRequest is one message for an agent. ConversationID keys the history
// to replay; leave it empty for a stateless turn
type RunAgentRequest struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// AgentRun is the reply of one agent turn
type AgentRun struct {
	AgentID        string `json:"agent_id"`
	ConversationID string `json:"conversation_id,omitempty"`
	FinalOutput    string `json:"final_output"`
}
