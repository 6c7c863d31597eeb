package generation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a run
type Status string

const (
	StatusPending   Status = "pending"
	StatusGenerated Status = "generated"
	StatusCreated   Status = "created"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusAbandoned Status = "abandoned"
)

// Terminal reports whether no further progress is expected for a run in this status
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Run is one generation as recorded in the ledger
type Run struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;index"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`

	// Request
	Name          string `json:"name" gorm:"size:255"`
	Spec          string `json:"spec" gorm:"type:text"`
	Organization  string `json:"organization,omitempty" gorm:"size:255"`
	Visibility    string `json:"visibility" gorm:"size:16"`
	DefaultBranch string `json:"default_branch" gorm:"size:255"`

	// Progress
	Status        Status `json:"status" gorm:"size:32;index;not null"`
	FilesTotal    int    `json:"files_total"`
	FilesUploaded int    `json:"files_uploaded"`

	// Repository, once created
	FullName string `json:"full_name,omitempty" gorm:"size:255"`
	URL      string `json:"url,omitempty" gorm:"size:500"`
	Private  bool   `json:"private"`

	// Failure details
	FailureKind    string `json:"failure_kind,omitempty" gorm:"size:64"`
	FailureMessage string `json:"failure_message,omitempty" gorm:"type:text"`
	FailurePath    string `json:"failure_path,omitempty" gorm:"size:1024"`

	// ReportedAt is set once a partial failure has been reported to operators
	ReportedAt *time.Time `json:"reported_at,omitempty"`
}

// TableName sets the table name for GORM
func (Run) TableName() string {
	return "generation_runs"
}

// Partial reports whether the run failed after its repository was created
func (r *Run) Partial() bool {
	return r.Status == StatusFailed && r.FullName != ""
}
