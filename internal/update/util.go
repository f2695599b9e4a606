package update

import (
	"strings"

	"github.com/sandeepkv93/clinicd/internal/views"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func renderNotes(md string) string {
	return views.RenderMarkdown(md)
}
