package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderAdvice renders markdown advice for the terminal. If the markdown
// renderer cannot be built the text is returned unchanged.
func RenderAdvice(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// FormatAdvice renders the advice section with a header.
func FormatAdvice(text string, width int) string {
	return Header("Advice") + "\n" + RenderAdvice(text, width)
}
