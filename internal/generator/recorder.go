package generator

import "context"

// Stage marks progress through one generation
type Stage string

const (
	StageStarted           Stage = "started"
	StageGenerated         Stage = "generated"
	StageRepositoryCreated Stage = "repository_created"
	StageFileUploaded      Stage = "file_uploaded"
	StageCompleted         Stage = "completed"
	StageFailed            Stage = "failed"
)

// Event describes the state of a run after a stage
type Event struct {
	RunID         string
	Stage         Stage
	Request       Request // resolved name, branch, visibility and organization
	FilesTotal    int
	FilesUploaded int
	Path          string      // last uploaded or offending path
	Repository    *Repository // set once the repository exists
	Err           error       // set for StageFailed
}

// Recorder observes generation progress. Errors are logged, never returned to callers
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(ctx context.Context, event Event) error

func (f RecorderFunc) Record(ctx context.Context, event Event) error {
	return f(ctx, event)
}
