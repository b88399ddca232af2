// Package app wires the session, poller, progress state, and terminal UI
// together and runs the program lifecycle.
package app

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"applaude/internal/api"
	"applaude/internal/auth"
	"applaude/internal/chat"
	"applaude/internal/config"
	"applaude/internal/logging"
	"applaude/internal/poll"
	"applaude/internal/progress"
	"applaude/internal/session"
	"applaude/internal/ui"
)

// App owns the long-lived pieces of a build chat run.
type App struct {
	cfg *config.Config

	cred    *auth.Credential
	client  *api.Client
	log     *chat.Log
	state   *progress.State
	manager *session.Manager

	program *tea.Program
	uiMsgs  chan tea.Msg

	cancel   context.CancelFunc
	shutdown sync.Once
	done     sync.WaitGroup
}

// New assembles the app from configuration. The session is not dialed and
// the UI is not started until Run.
func New(cfg *config.Config) *App {
	a := &App{cfg: cfg, uiMsgs: make(chan tea.Msg, 64)}

	a.cred = auth.New(cfg.API.Token, cfg.API.Username, cfg.API.FirstName)
	a.client = api.New(cfg.API.BaseURL, a.cred)

	a.log = chat.NewLog(func(chat.Entry) {
		a.send(ui.TranscriptMsg{})
	})
	a.state = progress.NewState(func() {
		a.send(ui.ProgressMsg{})
	})

	return a
}

// Run connects the session, starts the poller, and blocks in the UI loop
// until the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	completer := progress.NewCompleter(a.client, a.log)
	dispatcher := session.NewDispatcher(a.state, a.log, completer, a.cfg.API.Username)

	a.manager = session.NewManager(ctx, a.cred, session.Options{
		Host:           a.cfg.Chat.WSHost,
		Secure:         a.cfg.Chat.Secure,
		Room:           a.cfg.Chat.Room,
		ReconnectDelay: a.cfg.Chat.ReconnectDelay,
		OnConnectivity: func(up bool) {
			a.send(ui.ConnectivityMsg(up))
		},
	}, dispatcher, a.log)

	model := ui.NewModel(a.log, a.state, a.manager, a.cfg.UI.SyntaxStyle, a.cfg.UI.MouseEnabled)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	a.program = tea.NewProgram(model, opts...)

	// Refresh signals are queued and forwarded from one goroutine so they
	// reach the UI in order, and so producers never block on the program
	// before its event loop is running.
	a.done.Add(1)
	go func() {
		defer a.done.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-a.uiMsgs:
				a.program.Send(msg)
			}
		}
	}()

	if err := a.manager.Connect(); err != nil {
		// The manager keeps retrying in the background; the UI shows
		// the disconnected state meanwhile.
		logging.Warn("initial connect failed", "error", err)
	}

	reconciler := poll.New(a.client, a.state, completer, a.cfg.Chat.PollInterval)
	a.done.Add(1)
	go func() {
		defer a.done.Done()
		reconciler.Run(ctx)
	}()

	logging.Info("app started", "room", a.cfg.Chat.Room, "host", a.cfg.Chat.WSHost)

	if _, err := a.program.Run(); err != nil {
		a.teardown()
		return fmt.Errorf("ui: %w", err)
	}
	a.teardown()
	return nil
}

// teardown stops the poller and closes the session. Safe to call more than
// once; only the first call acts.
func (a *App) teardown() {
	a.shutdown.Do(func() {
		logging.Info("shutting down")
		if a.manager != nil {
			a.manager.Disconnect()
		}
		if a.cancel != nil {
			a.cancel()
		}
		a.done.Wait()
	})
}

// send queues a refresh signal for the UI. Signals are droppable when the
// queue is full: the model re-reads shared state on every message, so a
// later signal covers a lost one.
func (a *App) send(msg tea.Msg) {
	select {
	case a.uiMsgs <- msg:
	default:
	}
}
