package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"applaude/internal/auth"
	"applaude/internal/project"
)

func TestGetProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/42/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(project.Snapshot{
			ID:            "42",
			Name:          "Demo",
			Status:        project.StatusCodeGeneration,
			StatusMessage: "Generating application source code...",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, auth.New("tok", "ada", "Ada"))
	snap, err := c.GetProject(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if snap.Name != "Demo" || snap.Status != project.StatusCodeGeneration {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestGetProjectHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, auth.New("tok", "", ""))
	_, err := c.GetProject(context.Background(), "42")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
}

func TestGetProjectEmptyID(t *testing.T) {
	c := New("http://localhost:0", auth.New("tok", "", ""))
	if _, err := c.GetProject(context.Background(), ""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestSaveCompleted(t *testing.T) {
	var got completedPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/projects/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, auth.New("tok", "", ""))
	err := c.SaveCompleted(context.Background(), &project.Snapshot{
		Name:              "Demo",
		SourceURL:         "https://demo.example",
		GeneratedCodePath: "https://cdn/x.zip",
	})
	if err != nil {
		t.Fatalf("SaveCompleted: %v", err)
	}
	if got.Status != project.StatusCompleted {
		t.Errorf("posted status = %q, want COMPLETED", got.Status)
	}
	if got.Name != "Demo" || got.GeneratedCodePath != "https://cdn/x.zip" {
		t.Errorf("payload = %+v", got)
	}
}

func TestSaveCompletedNilSnapshot(t *testing.T) {
	c := New("http://localhost:0", auth.New("tok", "", ""))
	if err := c.SaveCompleted(context.Background(), nil); err == nil {
		t.Error("expected error for nil snapshot")
	}
}

func TestSaveCompletedWithoutToken(t *testing.T) {
	c := New("http://localhost:0", auth.New("", "", ""))
	err := c.SaveCompleted(context.Background(), &project.Snapshot{Name: "Demo"})
	if !errors.Is(err, auth.ErrNoToken) {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}
