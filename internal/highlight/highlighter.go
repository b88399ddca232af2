// Package highlight renders code blocks from the chat transcript with
// terminal syntax highlighting.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter provides syntax highlighting for code segments.
type Highlighter struct {
	style     string
	formatter chroma.Formatter
}

// New creates a new Highlighter with the specified style.
// Supported styles: "monokai", "dracula", "github-dark", "native".
func New(style string) *Highlighter {
	if style == "" {
		style = "monokai"
	}

	return &Highlighter{
		style:     style,
		formatter: formatters.Get("terminal256"),
	}
}

// Highlight applies syntax highlighting to code based on the fence language
// tag. Unknown languages fall back to plain text; a tokenizer failure
// returns the code unchanged.
func (h *Highlighter) Highlight(code, lang string) string {
	lexer := lexers.Get(NormalizeLanguage(lang))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(h.style)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// fenceAliases maps common fence tags to chroma lexer names.
var fenceAliases = map[string]string{
	"js":    "javascript",
	"ts":    "typescript",
	"py":    "python",
	"rb":    "ruby",
	"sh":    "bash",
	"shell": "bash",
	"zsh":   "bash",
	"yml":   "yaml",
	"golang": "go",
	"dockerfile": "docker",
}

// NormalizeLanguage maps a code-fence language tag to a chroma lexer name.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "text"
	}
	if normalized, ok := fenceAliases[lang]; ok {
		return normalized
	}
	return lang
}
