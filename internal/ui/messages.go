package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TranscriptMsg signals that the conversation log changed; the model
// re-reads the log on receipt.
type TranscriptMsg struct{}

// ProgressMsg signals that the build progress state changed.
type ProgressMsg struct{}

// ConnectivityMsg carries the binary connection indicator.
type ConnectivityMsg bool

// TickMsg drives the spinner while the backend is processing.
type TickMsg time.Time

// TickCmd returns a command that sends TickMsg at intervals.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
