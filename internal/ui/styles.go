package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple (Lavender 400)
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan (Cyan 400)
	ColorSuccess   = lipgloss.Color("#059669") // Emerald 600
	ColorError     = lipgloss.Color("#DC2626") // Red 600
	ColorMuted     = lipgloss.Color("#9CA3AF") // Gray 400
	ColorText      = lipgloss.Color("#F1F5F9") // Slate 100
	ColorBorder    = lipgloss.Color("#1E293B") // Subtle Slate Border
	ColorDim       = lipgloss.Color("#6B7280") // Gray 500
)

// Styles holds the lipgloss styles used across the UI.
type Styles struct {
	Header        lipgloss.Style
	UserPrompt    lipgloss.Style
	AssistantText lipgloss.Style
	SystemText    lipgloss.Style
	Error         lipgloss.Style
	Spinner       lipgloss.Style
	StatusBar     lipgloss.Style
	Input         lipgloss.Style
	Viewport      lipgloss.Style
	Link          lipgloss.Style
	Dim           lipgloss.Style
	Accent        lipgloss.Style

	CodeBlockBorder lipgloss.Style
	CodeBlockHeader lipgloss.Style

	Connected    lipgloss.Style
	Disconnected lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header:        lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		UserPrompt:    lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary),
		AssistantText: lipgloss.NewStyle().Foreground(ColorText),
		SystemText:    lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Error:         lipgloss.NewStyle().Foreground(ColorError),
		Spinner:       lipgloss.NewStyle().Foreground(ColorPrimary),
		StatusBar:     lipgloss.NewStyle().Foreground(ColorMuted),
		Input:         lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(ColorPrimary).Padding(0, 1),
		Viewport:      lipgloss.NewStyle(),
		Link:          lipgloss.NewStyle().Foreground(ColorSecondary).Underline(true),
		Dim:           lipgloss.NewStyle().Foreground(ColorDim),
		Accent:        lipgloss.NewStyle().Foreground(ColorPrimary),

		CodeBlockBorder: lipgloss.NewStyle().Foreground(ColorBorder),
		CodeBlockHeader: lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary),

		Connected:    lipgloss.NewStyle().Foreground(ColorSuccess),
		Disconnected: lipgloss.NewStyle().Foreground(ColorError),
	}
}
