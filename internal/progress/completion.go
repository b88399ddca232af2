package progress

import (
	"context"

	"applaude/internal/chat"
	"applaude/internal/logging"
	"applaude/internal/project"
)

// Saver persists a finished project. Satisfied by api.Client.
type Saver interface {
	SaveCompleted(ctx context.Context, snap *project.Snapshot) error
}

// Completer runs the completion side effect: persist the finished snapshot
// and announce the result in the transcript. The single-fire guarantee lives
// in State; Completer only executes what State hands it.
type Completer struct {
	saver Saver
	log   *chat.Log
}

// NewCompleter creates a completer writing announcements to log.
func NewCompleter(saver Saver, log *chat.Log) *Completer {
	return &Completer{saver: saver, log: log}
}

// Run persists snap and appends the completion entries. A persistence
// failure is logged and the in-memory completed state stands; there is no
// retry.
func (c *Completer) Run(ctx context.Context, snap *project.Snapshot) {
	if snap == nil {
		return
	}

	if err := c.saver.SaveCompleted(ctx, snap); err != nil {
		logging.Warn("failed to persist completed project", "project", snap.Name, "error", err)
	} else {
		c.log.Append(chat.RoleSystem, "🎉 Project completed and saved successfully! You can now access your generated app.")
	}

	if snap.GeneratedCodePath != "" {
		c.log.Append(chat.RoleSystem, "🎉 Your app is ready! Download the source code here: "+snap.GeneratedCodePath)
	} else {
		c.log.Append(chat.RoleSystem, "🎉 Your project is complete! Check your project dashboard for download options.")
	}
}
