package generator

// Visibility controls who can read a created repository
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// DefaultBranch is used when a request names no branch
const DefaultBranch = "main"

// Request describes one generation. Only Spec is required
type Request struct {
	RunID         string     `json:"run_id,omitempty"` // assigned when empty
	Spec          string     `json:"spec"`
	Name          string     `json:"name,omitempty"`
	Description   string     `json:"description,omitempty"`
	Visibility    Visibility `json:"visibility,omitempty"`
	Organization  string     `json:"organization,omitempty"`
	DefaultBranch string     `json:"default_branch,omitempty"`
}

// File is one generated file
type File struct {
	Path    string
	Content string
}

// FileSet holds generated files in the order the completion listed them
type FileSet []File

// Paths returns the file paths in order
func (fs FileSet) Paths() []string {
	paths := make([]string, len(fs))
	for i, f := range fs {
		paths[i] = f.Path
	}
	return paths
}

// Result is returned for a successful generation
type Result struct {
	FullName  string `json:"full_name"`
	URL       string `json:"url"`
	IsPrivate bool   `json:"private"`
}

// RepositorySpec is sent to the hosting service to create a repository
type RepositorySpec struct {
	Organization string // empty means the authenticated account
	Name         string
	Description  string
	Private      bool
}

// Repository is the hosting service's view of a created repository
type Repository struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	Private  bool   `json:"private"`
}

// FileWrite is one "create file" call against a repository
type FileWrite struct {
	Owner      string
	Repository string
	Path       string
	Message    string
	Content    string // base64-encoded
	Branch     string
}
