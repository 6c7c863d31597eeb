package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds, matched with errors.Is
var (
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrMissingCredential        = errors.New("missing credential")
	ErrGenerationFailed         = errors.New("generation failed")
	ErrRepositoryCreationFailed = errors.New("repository creation failed")
	ErrFileUploadFailed         = errors.New("file upload failed")
)

// Error is returned by Generate. Kind is one of the Err* values above
type Error struct {
	Kind       error
	Message    string
	Path       string // offending file path, if any
	StatusCode int    // upstream HTTP status, 0 when no response was received
	Body       string // upstream response body

	// Repository is set when the failure happened after the repository was
	// created. The repository is left in place, holding Uploaded files.
	Repository *Repository
	Uploaded   int

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (path %q)", e.Path)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " [status %d]", e.StatusCode)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, " %s", e.Body)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is reports whether target is this error's kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Partial reports whether a repository was left behind by this failure
func (e *Error) Partial() bool {
	return e.Repository != nil
}

// KindName returns a short name for the error kind, e.g. "file_upload_failed"
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrGenerationFailed):
		return "generation_failed"
	case errors.Is(err, ErrRepositoryCreationFailed):
		return "repository_creation_failed"
	case errors.Is(err, ErrFileUploadFailed):
		return "file_upload_failed"
	default:
		return "unknown"
	}
}

// httpStatusError is implemented by host errors carrying an upstream response
type httpStatusError interface {
	HTTPStatus() int
	HTTPBody() string
}

func invalidArgument(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// upstream builds an Error of kind from a host failure, lifting status and body when present
func upstream(kind error, message string, err error) *Error {
	e := &Error{Kind: kind, Message: message, Err: err}

	var se httpStatusError
	if errors.As(err, &se) {
		e.StatusCode = se.HTTPStatus()
		e.Body = se.HTTPBody()
		e.Err = nil
	}

	return e
}
