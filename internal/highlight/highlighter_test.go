package highlight

import (
	"strings"
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"js", "javascript"},
		{"JS", "javascript"},
		{"py", "python"},
		{"sh", "bash"},
		{"go", "go"},
		{"", "text"},
		{" yml ", "yaml"},
		{"rust", "rust"},
	}
	for _, tt := range tests {
		if got := NormalizeLanguage(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHighlightKeepsContent(t *testing.T) {
	h := New("monokai")
	code := "fmt.Println(\"hello\")"

	out := h.Highlight(code, "go")
	if out == "" {
		t.Fatal("empty output")
	}
	// ANSI escapes aside, the code content must survive.
	if !strings.Contains(stripANSI(out), "Println") {
		t.Errorf("highlighted output lost content: %q", out)
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	h := New("monokai")
	out := h.Highlight("plain words", "nosuchlang")
	if !strings.Contains(stripANSI(out), "plain words") {
		t.Errorf("fallback output lost content: %q", out)
	}
}

func TestHighlightUnknownStyleFallsBack(t *testing.T) {
	h := New("nosuchstyle")
	out := h.Highlight("x := 1", "go")
	if !strings.Contains(stripANSI(out), "x") {
		t.Errorf("output = %q", out)
	}
}

// stripANSI removes terminal escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
