// Package project defines the build project resource and the fixed status
// vocabulary of the Applaude pipeline.
package project

// Snapshot is one observed state of a project resource, as returned by the
// REST API or carried inside a project_status_update frame.
type Snapshot struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	SourceURL           string            `json:"source_url,omitempty"`
	UserPersonaDocument string            `json:"user_persona_document,omitempty"`
	BrandPalette        map[string]string `json:"brand_palette,omitempty"`
	GeneratedCodePath   string            `json:"generated_code_path,omitempty"`
	Status              string            `json:"status,omitempty"`
	StatusMessage       string            `json:"status_message,omitempty"`
}

// Task is the pipeline stage currently being executed.
type Task struct {
	Name        string
	Description string
}
