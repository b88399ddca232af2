package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"applaude/internal/chat"
	"applaude/internal/highlight"
	"applaude/internal/segment"
)

// Renderer turns conversation entries into styled terminal text. Each entry
// is split into segments; code segments get a bordered, syntax-highlighted
// block, links get an underlined style.
type Renderer struct {
	styles      *Styles
	highlighter *highlight.Highlighter
	markdown    *glamour.TermRenderer
	width       int
}

// NewRenderer creates a renderer with the given chroma style.
func NewRenderer(styles *Styles, syntaxStyle string) *Renderer {
	markdown, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(0),
	)
	return &Renderer{
		styles:      styles,
		highlighter: highlight.New(syntaxStyle),
		markdown:    markdown,
		width:       80,
	}
}

// SetWidth adjusts the rendering width for block borders.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Entry renders one transcript entry, prefix line included.
func (r *Renderer) Entry(e chat.Entry) string {
	var b strings.Builder

	switch e.Role {
	case chat.RoleUser:
		b.WriteString(r.styles.UserPrompt.Render("You"))
	case chat.RoleSystem:
		b.WriteString(r.styles.Dim.Render("●"))
		b.WriteString(" ")
	default:
		b.WriteString(r.styles.Accent.Render("Applaude"))
	}
	if e.Role != chat.RoleSystem {
		b.WriteString("\n")
	}

	for _, seg := range segment.Render(e.Text) {
		switch seg.Kind {
		case segment.KindCode:
			b.WriteString(r.codeBlock(seg.Language, seg.Text))
		case segment.KindLink:
			b.WriteString(r.styles.Link.Render(seg.Text))
		default:
			b.WriteString(r.plain(e.Role, seg.Text))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// plain renders a narration span. Assistant text goes through the markdown
// renderer; system and user text keep their role style.
func (r *Renderer) plain(role chat.Role, text string) string {
	switch role {
	case chat.RoleSystem:
		return r.styles.SystemText.Render(text)
	case chat.RoleUser:
		return r.styles.AssistantText.Render(text)
	default:
		if r.markdown != nil {
			if out, err := r.markdown.Render(text); err == nil {
				return strings.Trim(out, "\n")
			}
		}
		return r.styles.AssistantText.Render(text)
	}
}

// codeBlock renders a fenced code segment with a language header border.
func (r *Renderer) codeBlock(lang, code string) string {
	var b strings.Builder

	contentWidth := r.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := " " + lang + " "
	filler := contentWidth - lipgloss.Width(header) - 2
	if filler < 1 {
		filler = 1
	}

	b.WriteString("\n")
	b.WriteString(r.styles.CodeBlockBorder.Render("┌─"))
	b.WriteString(r.styles.CodeBlockHeader.Render(header))
	b.WriteString(r.styles.CodeBlockBorder.Render(strings.Repeat("─", filler) + "─┐"))
	b.WriteString("\n")

	b.WriteString(strings.TrimRight(r.highlighter.Highlight(code, lang), "\n"))
	b.WriteString("\n")

	b.WriteString(r.styles.CodeBlockBorder.Render("└" + strings.Repeat("─", contentWidth) + "┘"))
	b.WriteString("\n")
	return b.String()
}

// Transcript renders the whole log.
func (r *Renderer) Transcript(entries []chat.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		b.WriteString(r.Entry(e))
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
