// Package page turns a markdown portfolio into navigable sections and
// scrolls between them.
package page

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.md
var defaultPage []byte

// TopAnchor names the content that precedes the first heading.
const TopAnchor = "top"

// Link is one entry of the navigation bar. Href is an in-page fragment.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Section struct {
	Anchor   string
	Title    string
	Level    int
	Markdown string
}

type Document struct {
	Title    string
	Nav      []Link
	Sections []Section
}

type frontMatter struct {
	Title string `yaml:"title"`
	Nav   []Link `yaml:"nav"`
}

// Load reads a page from path, or the built-in page when path is empty.
func Load(path string) (*Document, error) {
	if path == "" {
		return Parse(defaultPage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return Parse(data)
}

type heading struct {
	level int
	id    string
	title string
}

var (
	atxHeading      = regexp.MustCompile(`^ {0,3}#{1,2}[ \t]+\S`)
	setextUnderline = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	codeFence       = regexp.MustCompile("^ {0,3}(```|~~~)")
)

func newParser() *blackfriday.Markdown {
	return blackfriday.New(blackfriday.WithExtensions(
		blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs,
	))
}

// Parse splits source into sections at every level 1 and 2 heading. Anchor
// ids come from explicit {#id} markers or the sanitized heading text.
func Parse(source []byte) (*Document, error) {
	fm, body, err := splitFrontMatter(source)
	if err != nil {
		return nil, err
	}

	headings := collectHeadings(body)
	sections, err := splitSections(body, headings)
	if err != nil {
		return nil, err
	}

	doc := &Document{Title: fm.Title, Nav: fm.Nav, Sections: sections}
	if len(doc.Nav) == 0 {
		for _, s := range sections {
			if s.Anchor == TopAnchor {
				continue
			}
			doc.Nav = append(doc.Nav, Link{Label: s.Title, Href: "#" + s.Anchor})
		}
	}
	return doc, nil
}

func splitFrontMatter(source []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(source, []byte("---\n")) {
		return fm, source, nil
	}

	rest := source[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		return fm, nil, errors.New("page: unterminated front matter")
	}
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, nil, fmt.Errorf("page: parse front matter: %w", err)
	}
	return fm, rest[end+len("\n---\n"):], nil
}

func collectHeadings(body []byte) []heading {
	root := newParser().Parse(body)

	seen := map[string]int{}
	var headings []heading
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || node.Type != blackfriday.Heading {
			return blackfriday.GoToNext
		}
		if node.HeadingData.Level > 2 || node.Parent == nil || node.Parent.Type != blackfriday.Document {
			return blackfriday.SkipChildren
		}

		title := nodeText(node)
		id := node.HeadingData.HeadingID
		if id == "" {
			id = blackfriday.SanitizedAnchorName(title)
		}
		if n := seen[id]; n > 0 {
			seen[id] = n + 1
			id = id + "-" + strconv.Itoa(n)
		} else {
			seen[id] = 1
		}

		headings = append(headings, heading{
			level: node.HeadingData.Level,
			id:    id,
			title: title,
		})
		return blackfriday.SkipChildren
	})
	return headings
}

func nodeText(node *blackfriday.Node) string {
	var sb strings.Builder
	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (n.Type == blackfriday.Text || n.Type == blackfriday.Code) {
			sb.Write(n.Literal)
		}
		return blackfriday.GoToNext
	})
	return strings.TrimSpace(sb.String())
}

// splitSections cuts the raw markdown at the heading lines the parser
// reported, in order, so each section keeps its source text. A line only
// opens a section when, parsed on its own, it yields the heading expected
// next; lookalikes such as lazy blockquote lines are left in place.
func splitSections(body []byte, headings []heading) ([]Section, error) {
	lines := strings.Split(string(body), "\n")

	var (
		sections []Section
		current  []string
		meta     = heading{id: TopAnchor}
		next     int
		inFence  bool
	)
	flush := func() {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if meta.id != TopAnchor || text != "" {
			sections = append(sections, Section{
				Anchor:   meta.id,
				Title:    meta.title,
				Level:    meta.level,
				Markdown: text,
			})
		}
		current = nil
	}
	expects := func(source string) bool {
		return next < len(headings) && headingMatches(source, headings[next])
	}

	for i, line := range lines {
		if codeFence.MatchString(line) {
			inFence = !inFence
		}
		switch {
		case inFence:
		case atxHeading.MatchString(line) && expects(line):
			flush()
			meta = headings[next]
			next++
		case i > 0 && len(current) > 0 && setextUnderline.MatchString(line) &&
			strings.TrimSpace(lines[i-1]) != "" && expects(lines[i-1]+"\n"+line):
			title := current[len(current)-1]
			current = current[:len(current)-1]
			flush()
			meta = headings[next]
			next++
			current = append(current, title)
		}
		current = append(current, line)
	}
	flush()

	if next != len(headings) {
		return nil, fmt.Errorf("page: %d headings could not be located in the source", len(headings)-next)
	}
	return sections, nil
}

// headingMatches reports whether source, parsed alone, is exactly the
// heading h.
func headingMatches(source string, h heading) bool {
	root := newParser().Parse([]byte(source))
	node := root.FirstChild
	if node == nil || node.Next != nil || node.Type != blackfriday.Heading {
		return false
	}
	return node.HeadingData.Level == h.level && nodeText(node) == h.title
}

// Anchors lists the section anchors in document order.
func (d *Document) Anchors() []string {
	anchors := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		anchors = append(anchors, s.Anchor)
	}
	return anchors
}
