package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SystemPrompt is sent with every completion request
const SystemPrompt = "You are a senior software engineer. Generate a minimal, working project based on the spec. " +
	"Return ONLY a JSON object with keys: files (object path->content), description (string). " +
	"Always include README.md with run instructions. No markdown, no extra text."

// DefaultTimeout bounds every outbound call
const DefaultTimeout = 30 * time.Second

// Completer is the completion service. It returns the raw JSON text of one completion
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// RepositoryHost is the repository hosting service
type RepositoryHost interface {
	CreateRepository(ctx context.Context, token string, spec RepositorySpec) (*Repository, error)
	CreateFile(ctx context.Context, token string, write FileWrite) error
}

// Generator turns a free-text spec into a new hosted repository. It holds no
// per-call state and is safe for concurrent use.
type Generator struct {
	completer   Completer
	host        RepositoryHost
	credentials CredentialProvider
	recorder    Recorder

	defaultOrganization string
	timeout             time.Duration
	now                 func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithRecorder attaches a progress recorder
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithDefaultOrganization sets the organization used when a request names none
func WithDefaultOrganization(org string) Option {
	return func(g *Generator) { g.defaultOrganization = org }
}

// WithTimeout sets the per-call deadline
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithClock overrides the time source used for placeholder names
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator
func New(completer Completer, host RepositoryHost, credentials CredentialProvider, opts ...Option) *Generator {
	g := &Generator{
		completer:   completer,
		host:        host,
		credentials: credentials,
		timeout:     DefaultTimeout,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate asks the completion service for a file set matching req.Spec and
// publishes it as a new repository. Calls are strictly sequential and never
// retried. A failure after repository creation leaves the repository in place;
// the returned *Error then carries it in Repository.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	req, err := g.resolve(req)
	if err != nil {
		return nil, err
	}

	token, err := g.credentials.Credential()
	if err != nil {
		var genErr *Error
		if errors.As(err, &genErr) {
			return nil, genErr
		}
		return nil, &Error{Kind: ErrMissingCredential, Err: err}
	}
	if token == "" {
		return nil, &Error{Kind: ErrMissingCredential, Message: "empty token"}
	}

	event := Event{RunID: req.RunID, Request: req}
	g.record(ctx, event, StageStarted)

	files, generatedDescription, err := g.generateFiles(ctx, req)
	if err != nil {
		return nil, g.fail(ctx, event, err)
	}
	event.FilesTotal = len(files)
	g.record(ctx, event, StageGenerated)

	repo, err := g.createRepository(ctx, token, req, ResolveDescription(req.Description, generatedDescription, req.Spec))
	if err != nil {
		return nil, g.fail(ctx, event, err)
	}
	event.Repository = repo
	g.record(ctx, event, StageRepositoryCreated)
	log.Printf("[GENERATOR]: run %s created repository %s, uploading %d files", req.RunID, repo.FullName, len(files))

	// Every path is checked before the first upload
	for _, file := range files {
		if err := ValidatePath(file.Path); err != nil {
			return nil, g.fail(ctx, event, err)
		}
	}

	for _, file := range files {
		write := FileWrite{
			Owner:      repo.Owner,
			Repository: repo.Name,
			Path:       file.Path,
			Message:    "Add " + file.Path,
			Content:    base64.StdEncoding.EncodeToString([]byte(file.Content)),
			Branch:     req.DefaultBranch,
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		err := g.host.CreateFile(callCtx, token, write)
		cancel()
		if err != nil {
			failure := upstream(ErrFileUploadFailed, "failed to create file", err)
			failure.Path = file.Path
			return nil, g.fail(ctx, event, failure)
		}

		event.FilesUploaded++
		event.Path = file.Path
		g.record(ctx, event, StageFileUploaded)
	}

	result := &Result{
		FullName:  repo.FullName,
		URL:       repo.HTMLURL,
		IsPrivate: repo.Private,
	}
	g.record(ctx, event, StageCompleted)
	log.Printf("[GENERATOR]: run %s completed %s", req.RunID, result.FullName)

	return result, nil
}

// resolve validates req and fills defaults. No network access happens here
func (g *Generator) resolve(req Request) (Request, error) {
	if strings.TrimSpace(req.Spec) == "" {
		return req, invalidArgument("spec is required")
	}

	name, err := ResolveName(req.Name, req.Spec, g.now())
	if err != nil {
		return req, err
	}
	req.Name = name

	switch req.Visibility {
	case "":
		req.Visibility = VisibilityPrivate
	case VisibilityPrivate, VisibilityPublic:
	default:
		return req, invalidArgument("unknown visibility %q", req.Visibility)
	}

	if req.Organization == "" {
		req.Organization = g.defaultOrganization
	}
	if req.DefaultBranch == "" {
		req.DefaultBranch = DefaultBranch
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	return req, nil
}

func (g *Generator) generateFiles(ctx context.Context, req Request) (FileSet, string, error) {
	userPrompt := "Repo name: " + req.Name + "\nSpec: " + req.Spec + "\n"

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.completer.Complete(callCtx, SystemPrompt, userPrompt)
	if err != nil {
		return nil, "", &Error{Kind: ErrGenerationFailed, Message: "completion request failed", Err: err}
	}

	return ParseCompletion(content)
}

func (g *Generator) createRepository(ctx context.Context, token string, req Request, description string) (*Repository, error) {
	spec := RepositorySpec{
		Organization: req.Organization,
		Name:         req.Name,
		Description:  description,
		Private:      req.Visibility == VisibilityPrivate,
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	repo, err := g.host.CreateRepository(callCtx, token, spec)
	if err != nil {
		return nil, upstream(ErrRepositoryCreationFailed, "failed to create repository", err)
	}
	if repo == nil || repo.Owner == "" || repo.Name == "" {
		return nil, &Error{Kind: ErrRepositoryCreationFailed, Message: "repository response is missing owner or name"}
	}

	return repo, nil
}

// fail records and logs a failure, attaching any partial state to the error
func (g *Generator) fail(ctx context.Context, event Event, err error) error {
	var genErr *Error
	if !errors.As(err, &genErr) {
		genErr = &Error{Kind: ErrGenerationFailed, Err: err}
	}

	genErr.Repository = event.Repository
	genErr.Uploaded = event.FilesUploaded

	event.Err = genErr
	if genErr.Path != "" {
		event.Path = genErr.Path
	}
	g.record(ctx, event, StageFailed)

	if genErr.Partial() {
		log.Printf("[GENERATOR]: run %s left repository %s with %d/%d files after failure: %v",
			event.RunID, event.Repository.FullName, event.FilesUploaded, event.FilesTotal, genErr)
	} else {
		log.Printf("[GENERATOR]: run %s failed: %v", event.RunID, genErr)
	}

	return genErr
}

func (g *Generator) record(ctx context.Context, event Event, stage Stage) {
	if g.recorder == nil {
		return
	}

	event.Stage = stage
	if err := g.recorder.Record(ctx, event); err != nil {
		log.Printf("[GENERATOR]: Warning, could not record %s for run %s: %v", stage, event.RunID, err)
	}
}
