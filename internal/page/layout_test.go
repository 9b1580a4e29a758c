package page

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainRenderer returns the markdown unchanged so line offsets are exact.
type plainRenderer struct{}

func (plainRenderer) Render(markdown string) (string, error) {
	return "\n" + markdown + "\n\n", nil
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) {
	return "", errors.New("boom")
}

func testLayout(t *testing.T) *Layout {
	t.Helper()
	doc, err := Parse([]byte("intro\n\n## One\n\na\nb\n\n## Two\n\nc\n"))
	require.NoError(t, err)
	l, err := Render(doc, plainRenderer{})
	require.NoError(t, err)
	return l
}

func TestRenderOffsets(t *testing.T) {
	l := testLayout(t)

	line, err := l.Resolve("#top")
	require.NoError(t, err)
	assert.Equal(t, 0, line)

	line, err = l.Resolve("#one")
	require.NoError(t, err)
	assert.Equal(t, "## One", l.Lines[line])

	line, err = l.Resolve("#two")
	require.NoError(t, err)
	assert.Equal(t, "## Two", l.Lines[line])
	assert.Equal(t, "two", l.SectionAt(line+1))
	assert.Equal(t, "one", l.SectionAt(line-1))
}

func TestResolveMissingTarget(t *testing.T) {
	l := testLayout(t)

	for _, href := range []string{"#nope", "https://example.com", "#", ""} {
		_, err := l.Resolve(href)
		assert.ErrorIs(t, err, ErrTargetNotFound, href)
	}
}

func TestRenderError(t *testing.T) {
	doc, err := Parse([]byte("## One\n"))
	require.NoError(t, err)
	_, err = Render(doc, failingRenderer{})
	assert.Error(t, err)
}

func TestRenderWithGlamour(t *testing.T) {
	doc, err := Load("")
	require.NoError(t, err)

	r, err := NewRenderer(60, "notty")
	require.NoError(t, err)
	l, err := Render(doc, r)
	require.NoError(t, err)

	line, err := l.Resolve("#skills")
	require.NoError(t, err)
	assert.Contains(t, l.Lines[line], "Skills")
	assert.True(t, strings.Contains(l.Content(), "PostgreSQL"))
}

func TestFragment(t *testing.T) {
	id, ok := Fragment(" #about ")
	assert.True(t, ok)
	assert.Equal(t, "about", id)

	_, ok = Fragment("about")
	assert.False(t, ok)
}
