package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanbaker/repogen/internal/generator"
	"github.com/google/uuid"
)

// Recorder writes generator progress into a Store
type Recorder struct {
	store Store
}

// NewRecorder creates a Recorder over store
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record implements generator.Recorder
func (r *Recorder) Record(ctx context.Context, event generator.Event) error {
	id, err := uuid.Parse(event.RunID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", event.RunID, err)
	}

	if event.Stage == generator.StageStarted {
		return r.store.Create(ctx, &Run{
			ID:            id,
			Name:          event.Request.Name,
			Spec:          event.Request.Spec,
			Organization:  event.Request.Organization,
			Visibility:    string(event.Request.Visibility),
			DefaultBranch: event.Request.DefaultBranch,
			Status:        StatusPending,
		})
	}

	run, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}

	run.FilesTotal = event.FilesTotal
	run.FilesUploaded = event.FilesUploaded
	if repo := event.Repository; repo != nil {
		run.FullName = repo.FullName
		run.URL = repo.HTMLURL
		run.Private = repo.Private
	}

	switch event.Stage {
	case generator.StageGenerated:
		run.Status = StatusGenerated
	case generator.StageRepositoryCreated:
		run.Status = StatusCreated
	case generator.StageFileUploaded:
		// progress only
	case generator.StageCompleted:
		run.Status = StatusCompleted
	case generator.StageFailed:
		run.Status = StatusFailed
		run.FailureKind = generator.KindName(event.Err)
		if event.Err != nil {
			run.FailureMessage = event.Err.Error()
		}

		var genErr *generator.Error
		if errors.As(event.Err, &genErr) {
			run.FailurePath = genErr.Path
		}
	default:
		return fmt.Errorf("unknown stage %q", event.Stage)
	}

	return r.store.Update(ctx, run)
}
