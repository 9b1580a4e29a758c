package chat

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlainText prepares remote message text for a terminal. Escape sequences
// and remaining control characters are removed so the text is shown as
// written and never interpreted.
func PlainText(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, ansi.Strip(text))
}
