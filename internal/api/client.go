// Package api is the HTTP client for the Applaude project resource: reading
// project state for the poll reconciler and persisting a finished build.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"applaude/internal/auth"
	"applaude/internal/project"
)

// APIError represents an API error with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Applaude REST API with a bearer credential.
type Client struct {
	baseURL    string
	cred       *auth.Credential
	httpClient *http.Client
}

// New creates a client against baseURL (e.g. http://localhost:8000).
func New(baseURL string, cred *auth.Credential) *Client {
	return &Client{
		baseURL:    baseURL,
		cred:       cred,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetProject fetches the project resource by id.
func (c *Client) GetProject(ctx context.Context, id string) (*project.Snapshot, error) {
	if id == "" {
		return nil, errors.New("project id is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/projects/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	if err := c.cred.Authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch project %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}

	var snap project.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &snap, nil
}

// completedPayload is the POST body persisting a finished build. Status is
// always the literal COMPLETED.
type completedPayload struct {
	Name                string            `json:"name"`
	SourceURL           string            `json:"source_url,omitempty"`
	UserPersonaDocument string            `json:"user_persona_document,omitempty"`
	BrandPalette        map[string]string `json:"brand_palette,omitempty"`
	GeneratedCodePath   string            `json:"generated_code_path,omitempty"`
	Status              string            `json:"status"`
}

// SaveCompleted persists a finished project snapshot.
func (c *Client) SaveCompleted(ctx context.Context, snap *project.Snapshot) error {
	if snap == nil {
		return errors.New("nil project snapshot")
	}

	body, err := json.Marshal(completedPayload{
		Name:                snap.Name,
		SourceURL:           snap.SourceURL,
		UserPersonaDocument: snap.UserPersonaDocument,
		BrandPalette:        snap.BrandPalette,
		GeneratedCodePath:   snap.GeneratedCodePath,
		Status:              project.StatusCompleted,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/projects/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.cred.Authorize(req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("save project %s: %w", snap.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1024))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	return string(data)
}
