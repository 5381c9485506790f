// Package markdown renders task notes for terminal display.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/Austuin/HoneyBadgerTool/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// renderer matches the part of glamour's TermRenderer we use, so tests
// can substitute a misbehaving one.
type renderer interface {
	Render(string) (string, error)
}

var (
	cacheMu sync.Mutex

	// cache holds one renderer per render width. Building a glamour
	// renderer is expensive relative to rendering a note.
	cache = map[int]renderer{}
)

// Render formats markdown notes for terminal output, wrapped to width
// and indented by the given number of spaces. Empty or whitespace-only
// input renders to nil. If glamour fails or panics the raw text is
// returned instead.
func Render(width, indent int, input []byte) []byte {
	value := internalstrings.TrimTrailingNewlines(
		internalstrings.NormalizeNewlines(string(input)))
	if strings.TrimSpace(value) == "" {
		return nil
	}

	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := safeRender(rendererFor(renderWidth), value)
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}

	return []byte(indentBlock(rendered, indent))
}

// safeRender runs the renderer, falling back to the raw value on error
// or panic.
func safeRender(r renderer, value string) (out string) {
	out = value
	if r == nil {
		return out
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			out = value
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return out
	}
	return formatted
}

func rendererFor(width int) renderer {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[width]; ok {
		return cached
	}

	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	style.ImageText.Format = "Image: {{.text}} ->"
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	cache[width] = created
	return created
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
