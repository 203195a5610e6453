package report

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns a markdown document into the text written to the user.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a Renderer that styles markdown for a terminal with
// glamour, picking light or dark colors from the terminal background.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(string) (string, error) { return "", err }
	}
	return r.Render
}

// Plain returns markdown untouched.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RendererFor styles output for terminals and leaves pipes and files with
// plain markdown.
func RendererFor(f *os.File) Renderer {
	if IsTerminal(f) {
		return NewRenderer()
	}
	return Plain
}
