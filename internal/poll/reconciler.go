// Package poll reconciles the pull-based view of the project resource into
// the shared progress state, independently of the streaming session.
package poll

import (
	"context"
	"time"

	"applaude/internal/logging"
	"applaude/internal/progress"
	"applaude/internal/project"
)

// Fetcher reads the project resource. Satisfied by api.Client.
type Fetcher interface {
	GetProject(ctx context.Context, id string) (*project.Snapshot, error)
}

// Reconciler fetches the project on a fixed cadence and merges each
// snapshot into the progress state. Fetch failures skip the cycle; they are
// never fatal and never touch the connectivity indicator.
type Reconciler struct {
	fetcher   Fetcher
	state     *progress.State
	completer *progress.Completer
	interval  time.Duration
}

// New creates a reconciler polling every interval (3s when zero).
func New(fetcher Fetcher, state *progress.State, completer *progress.Completer, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Reconciler{fetcher: fetcher, state: state, completer: completer, interval: interval}
}

// Run polls until ctx is cancelled. Cycles where no project id is known yet
// are skipped. Blocks; run it on its own goroutine.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.cycle(ctx)
		}
	}
}

// cycle performs one fetch-and-merge.
func (r *Reconciler) cycle(ctx context.Context) {
	id := r.state.ProjectID()
	if id == "" {
		return
	}

	snap, err := r.fetcher.GetProject(ctx, id)
	if err != nil {
		logging.Warn("project poll failed, skipping cycle", "project", id, "error", err)
		return
	}

	if completed := r.state.ApplyPoll(snap); completed != nil {
		r.completer.Run(ctx, completed)
	}
}
