package session

import (
	"context"
	"strings"
	"testing"

	"applaude/internal/chat"
	"applaude/internal/progress"
	"applaude/internal/project"
)

type countingSaver struct {
	calls int
}

func (s *countingSaver) SaveCompleted(_ context.Context, _ *project.Snapshot) error {
	s.calls++
	return nil
}

func newTestDispatcher() (*Dispatcher, *progress.State, *chat.Log, *countingSaver) {
	state := progress.NewState(nil)
	log := chat.NewLog(nil)
	saver := &countingSaver{}
	d := NewDispatcher(state, log, progress.NewCompleter(saver, log), "ada")
	return d, state, log, saver
}

func TestDispatchTaskStarted(t *testing.T) {
	d, state, log, _ := newTestDispatcher()

	d.Dispatch(context.Background(), TaskStartedFrame{Name: project.TaskCodeGeneration, Description: "Generating app"})

	v := state.View()
	if v.StatusMessage != "Generating application source code..." {
		t.Errorf("status = %q", v.StatusMessage)
	}
	if v.Percent != 50 || !v.Processing {
		t.Errorf("percent = %d processing = %v", v.Percent, v.Processing)
	}

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Role != chat.RoleSystem {
		t.Errorf("role = %s", entries[0].Role)
	}
	if !strings.Contains(entries[0].Text, "Code Generation") || !strings.Contains(entries[0].Text, "Generating app") {
		t.Errorf("entry = %q", entries[0].Text)
	}
}

func TestDispatchTaskCompleted(t *testing.T) {
	d, state, log, _ := newTestDispatcher()
	d.Dispatch(context.Background(), TaskStartedFrame{Name: project.TaskQualityAssurance, Description: "checks"})

	d.Dispatch(context.Background(), TaskCompletedFrame{Name: project.TaskQualityAssurance, Result: "all green"})

	v := state.View()
	if v.Task != nil {
		t.Error("task not cleared")
	}
	if v.StatusMessage != "QA checks passed. Ready for deployment." || v.Percent != 70 {
		t.Errorf("view = %+v", v)
	}

	entries := log.Entries()
	last := entries[len(entries)-1]
	if !strings.Contains(last.Text, "Quality Assurance completed: all green") {
		t.Errorf("entry = %q", last.Text)
	}
}

func TestDispatchStatusUpdateCompletion(t *testing.T) {
	d, state, log, saver := newTestDispatcher()

	d.Dispatch(context.Background(), StatusUpdateFrame{
		Project:  &project.Snapshot{ID: "1", Name: "Demo", GeneratedCodePath: "https://cdn/x.zip"},
		Progress: 100,
	})

	if saver.calls != 1 {
		t.Errorf("persistence calls = %d, want 1", saver.calls)
	}
	urlEntries := 0
	for _, e := range log.Entries() {
		if strings.Contains(e.Text, "https://cdn/x.zip") {
			urlEntries++
		}
	}
	if urlEntries != 1 {
		t.Errorf("entries containing download URL = %d, want 1", urlEntries)
	}
	if !state.CompletionFired() {
		t.Error("completion guard not set")
	}

	// A second 100% push must not persist again.
	d.Dispatch(context.Background(), StatusUpdateFrame{
		Project:  &project.Snapshot{ID: "1", Name: "Demo", GeneratedCodePath: "https://cdn/x.zip"},
		Progress: 100,
	})
	if saver.calls != 1 {
		t.Errorf("persistence calls after duplicate = %d, want 1", saver.calls)
	}
}

func TestDispatchStatusUpdateQuietWhileProcessing(t *testing.T) {
	d, _, log, _ := newTestDispatcher()

	d.Dispatch(context.Background(), StatusUpdateFrame{StatusMessage: "working", Progress: 30, IsProcessing: true})
	if log.Len() != 0 {
		t.Errorf("processing update appended %d entries, want 0", log.Len())
	}

	d.Dispatch(context.Background(), StatusUpdateFrame{StatusMessage: "design done", Progress: 40})
	entries := log.Entries()
	if len(entries) != 1 || !strings.Contains(entries[0].Text, "design done (40%)") {
		t.Errorf("entries = %+v", entries)
	}
}

func TestDispatchChatRoles(t *testing.T) {
	d, _, log, _ := newTestDispatcher()

	d.Dispatch(context.Background(), ChatFrame{Message: "hi", Sender: "Applaude Prime"})
	d.Dispatch(context.Background(), ChatFrame{Message: "ada has joined the chat.", Sender: "system"})
	d.Dispatch(context.Background(), ChatFrame{Message: "build me an app", Sender: "ada"})

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Role != chat.RoleAssistant {
		t.Errorf("agent message role = %s", entries[0].Role)
	}
	if entries[1].Role != chat.RoleSystem {
		t.Errorf("system message role = %s", entries[1].Role)
	}
	if entries[2].Role != chat.RoleUser {
		t.Errorf("echoed user message role = %s", entries[2].Role)
	}
}
