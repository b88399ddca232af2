// Package ui renders the build chat: transcript viewport, composer input,
// live progress panel, and the connection indicator.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"applaude/internal/chat"
	"applaude/internal/progress"
	"applaude/internal/segment"
)

const copyFeedbackDuration = 2 * time.Second

// Sender transmits an outbound chat message. Satisfied by session.Manager.
type Sender interface {
	Send(text string) error
}

// Model is the bubbletea model for the build chat view.
type Model struct {
	styles   *Styles
	renderer *Renderer

	log   *chat.Log
	state *progress.State

	sender Sender

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	bar      progressbar.Model

	width     int
	height    int
	ready     bool
	connected bool

	notice     string
	copiedAt   time.Time
	mouseWheel bool
}

// NewModel creates the chat model. Quitting only stops the program; the
// caller closes the session and the poller once Run returns.
func NewModel(log *chat.Log, state *progress.State, sender Sender, syntaxStyle string, mouseWheel bool) *Model {
	styles := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return &Model{
		styles:     styles,
		renderer:   NewRenderer(styles, syntaxStyle),
		log:        log,
		state:      state,
		sender:     sender,
		input:      input,
		spinner:    sp,
		bar:        progressbar.New(progressbar.WithDefaultGradient()),
		mouseWheel: mouseWheel,
	}
}

// Init starts the cursor blink and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles UI events and refresh signals from the session and poller.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer.SetWidth(msg.Width)
		m.bar.Width = msg.Width - 20
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}

		viewportHeight := msg.Height - m.chromeHeight()
		if viewportHeight < 3 {
			viewportHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.viewport.MouseWheelEnabled = m.mouseWheel
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.refreshTranscript()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.submit()

		case "ctrl+y":
			if m.copyDownloadLink() {
				// Redraw once the feedback should disappear.
				cmds = append(cmds, TickCmd(copyFeedbackDuration))
			}

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case TranscriptMsg:
		m.refreshTranscript()

	case ProgressMsg:
		// Progress renders straight from state in View.

	case TickMsg:
		// No state change; the render pass drops expired notices.

	case ConnectivityMsg:
		m.connected = bool(msg)
		if !m.connected {
			m.notice = ""
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit sends the composed message. Send failures are suppressed into a
// notice; the transcript shows the message when the backend echoes it back.
func (m *Model) submit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	if m.state.View().Processing {
		m.notice = "Processing... please wait"
		return
	}

	if err := m.sender.Send(text); err != nil {
		m.notice = "Not connected - message not sent"
		return
	}
	m.notice = ""
	m.input.SetValue("")
}

// copyDownloadLink copies the artifact URL, or failing that the last link
// seen in the transcript. Reports whether anything was copied.
func (m *Model) copyDownloadLink() bool {
	target := ""
	if v := m.state.View(); v.Project != nil && v.Project.GeneratedCodePath != "" {
		target = v.Project.GeneratedCodePath
	} else {
		for _, e := range m.log.Entries() {
			if links := segment.Links(e.Text); len(links) > 0 {
				target = links[len(links)-1]
			}
		}
	}
	if target == "" {
		m.notice = "Nothing to copy yet"
		return false
	}
	if err := clipboard.WriteAll(target); err != nil {
		m.notice = "Copy failed"
		return false
	}
	m.copiedAt = time.Now()
	m.notice = ""
	return true
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderer.Transcript(m.log.Entries()))
	m.viewport.GotoBottom()
}

// chromeHeight is the number of terminal rows used around the viewport.
func (m *Model) chromeHeight() int {
	return 10
}

// View renders the whole screen.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.styles.Viewport.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.progressView())
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m *Model) headerView() string {
	title := m.styles.Header.Render("Applaude Builder")

	var dot string
	if m.connected {
		dot = m.styles.Connected.Render("● Connected")
	} else {
		dot = m.styles.Disconnected.Render("● Disconnected")
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(dot)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + dot
}

func (m *Model) progressView() string {
	v := m.state.View()
	var b strings.Builder

	line := v.StatusMessage
	if line == "" {
		line = "Waiting for project..."
	}
	if v.Processing {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(m.styles.StatusBar.Render(line))
	b.WriteString("\n")

	b.WriteString(m.bar.ViewAs(float64(v.Percent) / 100.0))
	b.WriteString(m.styles.Accent.Render(fmt.Sprintf(" %d%%", v.Percent)))

	if v.Task != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("▸ %s: %s", v.Task.Name, v.Task.Description)))
	}
	if v.Project != nil && len(v.Project.BrandPalette) > 0 {
		b.WriteString("\n")
		b.WriteString(m.paletteView(v.Project.BrandPalette))
	}
	return b.String()
}

// paletteView renders the brand colors as swatches.
func (m *Model) paletteView(palette map[string]string) string {
	var b strings.Builder
	b.WriteString(m.styles.Dim.Render("palette "))
	count := 0
	for _, color := range palette {
		if count >= 5 {
			break
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■ "))
		count++
	}
	return b.String()
}

func (m *Model) helpView() string {
	if time.Since(m.copiedAt) < copyFeedbackDuration {
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("✓ Copied!")
	}
	if m.notice != "" {
		return m.styles.Error.Render(m.notice)
	}
	return m.styles.Dim.Render("enter send · ctrl+y copy link · esc quit")
}
