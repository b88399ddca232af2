// Package progress holds the shared projection of a running build: status
// line, percent, processing flag, current task, and the latest project
// snapshot. The session dispatcher and the poll reconciler both merge into
// it; merges are serialized by a single mutex so two observations can never
// interleave mid-merge.
package progress

import (
	"sync"

	"applaude/internal/project"
)

// View is a read-only copy of the state for rendering.
type View struct {
	StatusCode    string
	StatusMessage string
	Percent       int
	Processing    bool
	Task          *project.Task
	Project       *project.Snapshot
}

// State is the shared build-progress record. The zero value is unusable;
// use NewState.
type State struct {
	mu              sync.Mutex
	statusCode      string
	statusMessage   string
	percent         int
	processing      bool
	task            *project.Task
	snapshot        *project.Snapshot
	completionFired bool
	onChange        func()
}

// NewState creates an empty state. onChange, if non-nil, runs after every
// mutation, outside the lock.
func NewState(onChange func()) *State {
	return &State{onChange: onChange}
}

// View returns a copy of the current state.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		StatusCode:    s.statusCode,
		StatusMessage: s.statusMessage,
		Percent:       s.percent,
		Processing:    s.processing,
	}
	if s.task != nil {
		t := *s.task
		v.Task = &t
	}
	if s.snapshot != nil {
		snap := *s.snapshot
		v.Project = &snap
	}
	return v
}

// setPercentLocked merges a percent observation. Percent never decreases
// within a session, with one exception: a FAILED status resets it to 0.
func (s *State) setPercentLocked(percent int) {
	if s.statusCode == project.StatusFailed {
		s.percent = 0
		return
	}
	if percent > s.percent {
		s.percent = percent
	}
}

// tryCompleteLocked flips the single-fire completion guard the first time
// the state shows a finished build. Returns the snapshot to persist, or nil.
func (s *State) tryCompleteLocked() *project.Snapshot {
	if s.completionFired || s.percent != 100 || s.snapshot == nil || s.statusCode == project.StatusFailed {
		return nil
	}
	s.completionFired = true
	snap := *s.snapshot
	return &snap
}

func (s *State) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ApplyStatusUpdate merges a project_status_update push frame. The snapshot
// is replaced wholesale when present (last writer wins between push and
// poll). Returns the snapshot to persist if this observation completed the
// build, else nil.
func (s *State) ApplyStatusUpdate(snap *project.Snapshot, percent int, statusMessage string, processing bool) *project.Snapshot {
	s.mu.Lock()
	if snap != nil {
		copied := *snap
		s.snapshot = &copied
		if copied.Status != "" {
			s.statusCode = copied.Status
		}
	}
	if statusMessage != "" {
		s.statusMessage = statusMessage
	}
	s.setPercentLocked(percent)
	s.processing = processing
	completed := s.tryCompleteLocked()
	s.mu.Unlock()

	s.changed()
	return completed
}

// ApplyPoll merges a polled project resource. Percent is derived from the
// status table. Returns the snapshot to persist if this observation
// completed the build, else nil.
func (s *State) ApplyPoll(snap *project.Snapshot) *project.Snapshot {
	if snap == nil {
		return nil
	}

	s.mu.Lock()
	copied := *snap
	s.snapshot = &copied
	s.statusCode = copied.Status
	if copied.StatusMessage != "" {
		s.statusMessage = copied.StatusMessage
	} else {
		s.statusMessage = "Processing..."
	}
	s.setPercentLocked(project.Progress(copied.Status))
	s.processing = project.IsProcessing(copied.Status)
	completed := s.tryCompleteLocked()
	s.mu.Unlock()

	s.changed()
	return completed
}

// StartTask records a task_started frame: the task becomes current,
// processing turns on, and the start-phase table drives status/percent for
// known pipeline stages.
func (s *State) StartTask(task project.Task) {
	s.mu.Lock()
	t := task
	s.task = &t
	s.processing = true
	if phase, ok := project.StartPhase(task.Name); ok {
		s.statusMessage = phase.StatusMessage
		s.setPercentLocked(phase.Progress)
	}
	s.mu.Unlock()

	s.changed()
}

// CompleteTask records a task_completed frame: the current task clears and
// the completion-phase table drives status/percent. Processing turns off
// when the pipeline reaches 100, or when the task is outside the pipeline.
func (s *State) CompleteTask(taskName string) {
	s.mu.Lock()
	s.task = nil
	if phase, ok := project.CompletionPhase(taskName); ok {
		s.statusMessage = phase.StatusMessage
		s.setPercentLocked(phase.Progress)
		if phase.Progress == 100 {
			s.processing = false
		}
	} else {
		s.processing = false
	}
	s.mu.Unlock()

	s.changed()
}

// ProjectID returns the id of the current snapshot, or "" when none is
// known yet. The poll reconciler keys its fetches on this.
func (s *State) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return ""
	}
	return s.snapshot.ID
}

// CompletionFired reports whether the completion side effect has run.
func (s *State) CompletionFired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completionFired
}
