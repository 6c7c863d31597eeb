package generation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethanbaker/repogen/internal/generator"
	generation_store "github.com/ethanbaker/repogen/internal/stores/generation"
	"github.com/ethanbaker/repogen/pkg/sdk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Generator creates repositories from specs
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// Ledger is the read side of the generation store
type Ledger interface {
	Get(ctx context.Context, id uuid.UUID) (*generation_store.Run, error)
	List(ctx context.Context, limit int) ([]*generation_store.Run, error)
}

// Controller serves the generation routes
type Controller struct {
	generator Generator
	runs      Ledger
}

// NewController creates a generation controller
func NewController(gen Generator, runs Ledger) *Controller {
	return &Controller{generator: gen, runs: runs}
}

// Create handles POST requests that generate a new repository
func (ctrl *Controller) Create(c *gin.Context) {
	var req sdk.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewFailResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	runID := uuid.NewString()
	result, err := ctrl.generator.Generate(c.Request.Context(), generator.Request{
		RunID:         runID,
		Spec:          req.Spec,
		Name:          req.Name,
		Description:   req.Description,
		Visibility:    generator.Visibility(req.Visibility),
		Organization:  req.Organization,
		DefaultBranch: req.DefaultBranch,
	})
	if err != nil {
		c.JSON(failureResponse(err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Repository created", sdk.Generation{
		RunID:    runID,
		FullName: result.FullName,
		URL:      result.URL,
		Private:  result.IsPrivate,
	}).AsGinResponse())
}

// List handles GET requests for recent runs
func (ctrl *Controller) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(sdk.NewFailResponse(http.StatusBadRequest, "limit must be a non-negative integer", raw).AsGinResponse())
			return
		}
		limit = parsed
	}

	runs, err := ctrl.runs.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to list runs", err.Error()).AsGinResponse())
		return
	}

	out := make([]sdk.Run, 0, len(runs))
	for _, run := range runs {
		out = append(out, toSDKRun(run))
	}

	c.JSON(sdk.NewSuccessResponse("Runs retrieved successfully", out).AsGinResponse())
}

// Get handles GET requests for a single run by UUID
func (ctrl *Controller) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(sdk.NewFailResponse(http.StatusBadRequest, "Invalid run ID format", err.Error()).AsGinResponse())
		return
	}

	run, err := ctrl.runs.Get(c.Request.Context(), id)
	if errors.Is(err, generation_store.ErrNotFound) {
		c.JSON(sdk.NewFailResponse(http.StatusNotFound, "Run not found", nil).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get run", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Run retrieved successfully", toSDKRun(run)).AsGinResponse())
}

// StatusCode maps a generation failure to an HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, generator.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, generator.ErrMissingCredential):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func failureResponse(err error) sdk.ApiResponse[any] {
	detail := sdk.GenerationError{
		Kind:    generator.KindName(err),
		Message: err.Error(),
	}

	var genErr *generator.Error
	if errors.As(err, &genErr) {
		detail.Path = genErr.Path
		detail.StatusCode = genErr.StatusCode
		detail.Uploaded = genErr.Uploaded
		if genErr.Repository != nil {
			detail.Repository = genErr.Repository.FullName
		}
	}

	code := StatusCode(err)
	if code < http.StatusInternalServerError {
		return sdk.NewFailResponse(code, "Invalid generation request", detail)
	}
	return sdk.NewErrorResponse(code, "Generation failed", detail)
}

func toSDKRun(run *generation_store.Run) sdk.Run {
	return sdk.Run{
		ID:             run.ID.String(),
		CreatedAt:      run.CreatedAt,
		UpdatedAt:      run.UpdatedAt,
		Name:           run.Name,
		Spec:           run.Spec,
		Organization:   run.Organization,
		Visibility:     run.Visibility,
		DefaultBranch:  run.DefaultBranch,
		Status:         string(run.Status),
		FilesTotal:     run.FilesTotal,
		FilesUploaded:  run.FilesUploaded,
		FullName:       run.FullName,
		URL:            run.URL,
		Private:        run.Private,
		FailureKind:    run.FailureKind,
		FailureMessage: run.FailureMessage,
		FailurePath:    run.FailurePath,
		ReportedAt:     run.ReportedAt,
	}
}
