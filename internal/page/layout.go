package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ErrTargetNotFound is returned when a link fragment names no section.
var ErrTargetNotFound = errors.New("page: navigation target not found")

// Renderer turns markdown into terminal text. *glamour.TermRenderer
// satisfies it.
type Renderer interface {
	Render(markdown string) (string, error)
}

// NewRenderer builds the glamour renderer for a viewport width. style is a
// glamour standard style name such as "dark", "light" or "notty".
func NewRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// Layout is a rendered document with the first line of every section.
type Layout struct {
	Lines   []string
	anchors map[string]int
	order   []string
}

// Render lays the document out section by section.
func Render(doc *Document, r Renderer) (*Layout, error) {
	l := &Layout{anchors: make(map[string]int, len(doc.Sections))}
	for _, s := range doc.Sections {
		out, err := r.Render(s.Markdown)
		if err != nil {
			return nil, fmt.Errorf("render section %q: %w", s.Anchor, err)
		}

		l.anchors[s.Anchor] = len(l.Lines)
		l.order = append(l.order, s.Anchor)
		l.Lines = append(l.Lines, trimBlankLines(strings.Split(out, "\n"))...)
		l.Lines = append(l.Lines, "")
	}
	return l, nil
}

// trimBlankLines drops the padding lines glamour puts around a block so a
// section's anchor lands on its heading.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func (l *Layout) Content() string {
	return strings.Join(l.Lines, "\n")
}

// Fragment extracts the id from an in-page href such as "#about".
func Fragment(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "#") || len(href) == 1 {
		return "", false
	}
	return href[1:], true
}

// Resolve maps an in-page href to the first line of its section.
func (l *Layout) Resolve(href string) (int, error) {
	id, ok := Fragment(href)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not an in-page link", ErrTargetNotFound, href)
	}
	line, ok := l.anchors[id]
	if !ok {
		return 0, fmt.Errorf("%w: #%s", ErrTargetNotFound, id)
	}
	return line, nil
}

// SectionAt returns the anchor of the section containing line.
func (l *Layout) SectionAt(line int) string {
	current := ""
	for _, id := range l.order {
		if l.anchors[id] > line {
			break
		}
		current = id
	}
	return current
}
