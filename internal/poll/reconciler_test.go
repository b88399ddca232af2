package poll

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"applaude/internal/chat"
	"applaude/internal/progress"
	"applaude/internal/project"
)

type scriptedFetcher struct {
	mu    sync.Mutex
	snaps []*project.Snapshot
	errs  []error
	calls atomic.Int64
}

func (f *scriptedFetcher) GetProject(_ context.Context, _ string) (*project.Snapshot, error) {
	n := int(f.calls.Add(1)) - 1
	f.mu.Lock()
	defer f.mu.Unlock()
	if n < len(f.errs) && f.errs[n] != nil {
		return nil, f.errs[n]
	}
	if n < len(f.snaps) {
		return f.snaps[n], nil
	}
	if len(f.snaps) == 0 {
		return nil, errors.New("no snapshot scripted")
	}
	return f.snaps[len(f.snaps)-1], nil
}

type nopSaver struct{ calls atomic.Int64 }

func (s *nopSaver) SaveCompleted(_ context.Context, _ *project.Snapshot) error {
	s.calls.Add(1)
	return nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestReconcilerMergesSnapshots(t *testing.T) {
	state := progress.NewState(nil)
	log := chat.NewLog(nil)
	// Seed a project id so cycles fetch.
	state.ApplyPoll(&project.Snapshot{ID: "7", Status: project.StatusPending})

	fetcher := &scriptedFetcher{snaps: []*project.Snapshot{
		{ID: "7", Status: project.StatusDesignPending, StatusMessage: "designing"},
	}}
	r := New(fetcher, state, progress.NewCompleter(&nopSaver{}, log), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	waitFor(t, "merge", func() bool { return state.View().Percent == 30 })
	v := state.View()
	if v.StatusMessage != "designing" || !v.Processing {
		t.Errorf("view = %+v", v)
	}
}

func TestReconcilerSkipsFailedCycles(t *testing.T) {
	state := progress.NewState(nil)
	state.ApplyPoll(&project.Snapshot{ID: "7", Status: project.StatusQAPending})

	fetcher := &scriptedFetcher{
		errs:  []error{errors.New("network down")},
		snaps: []*project.Snapshot{nil, {ID: "7", Status: project.StatusQAComplete}},
	}
	log := chat.NewLog(nil)
	r := New(fetcher, state, progress.NewCompleter(&nopSaver{}, log), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// The failed first cycle must not disturb state; the second succeeds.
	waitFor(t, "recovery", func() bool { return state.View().Percent == 70 })
}

func TestReconcilerIdleWithoutProjectID(t *testing.T) {
	state := progress.NewState(nil)
	fetcher := &scriptedFetcher{}
	log := chat.NewLog(nil)
	r := New(fetcher, state, progress.NewCompleter(&nopSaver{}, log), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	time.Sleep(60 * time.Millisecond)
	if n := fetcher.calls.Load(); n != 0 {
		t.Errorf("fetches without a project id = %d, want 0", n)
	}
}

func TestReconcilerStopsOnCancel(t *testing.T) {
	state := progress.NewState(nil)
	state.ApplyPoll(&project.Snapshot{ID: "7", Status: project.StatusPending})
	fetcher := &scriptedFetcher{snaps: []*project.Snapshot{{ID: "7", Status: project.StatusPending}}}
	log := chat.NewLog(nil)
	r := New(fetcher, state, progress.NewCompleter(&nopSaver{}, log), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	waitFor(t, "first fetch", func() bool { return fetcher.calls.Load() >= 1 })
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	before := fetcher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if after := fetcher.calls.Load(); after != before {
		t.Errorf("fetches continued after cancel: %d -> %d", before, after)
	}
}

func TestReconcilerFiresCompletionOnce(t *testing.T) {
	state := progress.NewState(nil)
	state.ApplyPoll(&project.Snapshot{ID: "7", Status: project.StatusDeploymentPending})

	done := &project.Snapshot{ID: "7", Name: "Demo", Status: project.StatusCompleted, GeneratedCodePath: "https://cdn/x.zip"}
	fetcher := &scriptedFetcher{snaps: []*project.Snapshot{done}}
	saver := &nopSaver{}
	log := chat.NewLog(nil)
	r := New(fetcher, state, progress.NewCompleter(saver, log), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// Let several cycles observe the terminal state.
	waitFor(t, "several cycles", func() bool { return fetcher.calls.Load() >= 3 })

	if n := saver.calls.Load(); n != 1 {
		t.Errorf("persistence calls = %d, want 1", n)
	}
	urlEntries := 0
	for _, e := range log.Entries() {
		if strings.Contains(e.Text, "https://cdn/x.zip") {
			urlEntries++
		}
	}
	if urlEntries != 1 {
		t.Errorf("download entries = %d, want 1", urlEntries)
	}
}
