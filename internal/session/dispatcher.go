package session

import (
	"context"
	"fmt"

	"applaude/internal/chat"
	"applaude/internal/progress"
	"applaude/internal/project"
)

// Dispatcher interprets decoded frames: transcript entries, progress-state
// merges, task-state changes, and the completion side effect.
type Dispatcher struct {
	state     *progress.State
	log       *chat.Log
	completer *progress.Completer
	username  string
}

// NewDispatcher creates a dispatcher. username is the local user's sender
// tag, used to map echoed messages back to the user role.
func NewDispatcher(state *progress.State, log *chat.Log, completer *progress.Completer, username string) *Dispatcher {
	return &Dispatcher{state: state, log: log, completer: completer, username: username}
}

// Dispatch applies one frame. Runs on the session read loop; merges into
// the progress state are serialized by the state's own lock.
func (d *Dispatcher) Dispatch(ctx context.Context, frame Frame) {
	switch f := frame.(type) {
	case StatusUpdateFrame:
		completed := d.state.ApplyStatusUpdate(f.Project, f.Progress, f.StatusMessage, f.IsProcessing)
		if !f.IsProcessing {
			d.log.Append(chat.RoleSystem, fmt.Sprintf("📊 Project Status: %s (%d%%)", f.StatusMessage, f.Progress))
		}
		if completed != nil {
			d.completer.Run(ctx, completed)
		}

	case TaskStartedFrame:
		d.state.StartTask(project.Task{Name: f.Name, Description: f.Description})
		d.log.Append(chat.RoleSystem, fmt.Sprintf("🚀 Starting %s: %s", f.Name, f.Description))

	case TaskCompletedFrame:
		d.log.Append(chat.RoleSystem, fmt.Sprintf("✅ %s completed: %s", f.Name, f.Result))
		d.state.CompleteTask(f.Name)

	case ChatFrame:
		d.log.Append(d.roleFor(f.Sender), f.Message)
	}
}

// roleFor maps a frame's sender tag to a transcript role.
func (d *Dispatcher) roleFor(sender string) chat.Role {
	if sender == "system" {
		return chat.RoleSystem
	}
	if d.username != "" && sender == d.username {
		return chat.RoleUser
	}
	return chat.RoleAssistant
}
