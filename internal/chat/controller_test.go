package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type statusErr struct {
	code int
	msg  string
}

func (e *statusErr) Error() string   { return e.msg }
func (e *statusErr) StatusCode() int { return e.code }

// fakeTransport records calls and snapshots the list at send time.
type fakeTransport struct {
	view   *MemoryView
	reply  Reply
	err    error
	calls  []string
	atSend [][]Message
}

func (f *fakeTransport) Send(_ context.Context, message string) (Reply, error) {
	f.calls = append(f.calls, message)
	f.atSend = append(f.atSend, f.view.List.Messages())
	return f.reply, f.err
}

func newTestController(t *testing.T, tr *fakeTransport) (*Controller, *MemoryView, *observer.ObservedLogs) {
	t.Helper()
	view := NewMemoryView()
	tr.view = view
	core, logs := observer.New(zapcore.DebugLevel)
	return NewController(view, tr, zap.New(core)), view, logs
}

type shown struct {
	Text  string
	Class string
}

func shownMessages(l *List) []shown {
	var out []shown
	for _, m := range l.Messages() {
		out = append(out, shown{Text: m.Text, Class: m.ClassName()})
	}
	return out
}

func TestSubmitAppendsUserMessageBeforeNetworkCall(t *testing.T) {
	tr := &fakeTransport{reply: Reply{Response: "hi"}}
	c, view, _ := newTestController(t, tr)

	view.SetInput("  hello  ")
	require.True(t, c.Submit(context.Background(), view.InputValue()))

	require.Len(t, tr.calls, 1)
	assert.Equal(t, "hello", tr.calls[0])

	before := tr.atSend[0]
	require.Len(t, before, 2)
	assert.Equal(t, RoleUser, before[0].Role())
	assert.Equal(t, "hello", before[0].Text)
	assert.Equal(t, RoleBotLoading, before[1].Role())
	assert.Equal(t, LoadingText, before[1].Text)
	assert.Empty(t, view.InputValue())
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		tr := &fakeTransport{}
		c, view, _ := newTestController(t, tr)

		assert.False(t, c.Submit(context.Background(), input))
		assert.Zero(t, view.List.Len())
		assert.Empty(t, tr.calls)
	}
}

func TestSubmitSuccessReplacesLoading(t *testing.T) {
	tr := &fakeTransport{reply: Reply{Response: "hi"}}
	c, view, logs := newTestController(t, tr)

	c.Submit(context.Background(), "hello")

	want := []shown{
		{Text: "hello", Class: "message user-message"},
		{Text: "hi", Class: "message bot-message"},
	}
	if diff := cmp.Diff(want, shownMessages(view.List)); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, view.List.AtBottom())
	assert.Zero(t, logs.Len())
}

func TestSubmitHTTPErrorShowsDetail(t *testing.T) {
	tr := &fakeTransport{err: &statusErr{code: 500, msg: "server error"}}
	c, view, logs := newTestController(t, tr)

	c.Submit(context.Background(), "hello")

	msgs := view.List.Messages()
	require.Len(t, msgs, 2)
	last := msgs[1]
	assert.Equal(t, RoleBotError, last.Role())
	assert.Equal(t, "message bot-message error", last.ClassName())
	assert.Contains(t, last.Text, "server error")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.EqualValues(t, 500, entry.ContextMap()["status"])
}

func TestSubmitNetworkFailure(t *testing.T) {
	tr := &fakeTransport{err: errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")}
	c, view, logs := newTestController(t, tr)

	c.Submit(context.Background(), "hello")

	msgs := view.List.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].HasClass("bot-message"))
	assert.True(t, msgs[1].HasClass("error"))
	assert.True(t, strings.HasPrefix(msgs[1].Text, "Sorry, I'm having trouble connecting"))
	assert.Contains(t, msgs[1].Text, "connection refused")
	assert.Equal(t, 1, logs.Len())
}

func TestErrorTextUnknown(t *testing.T) {
	assert.True(t, strings.HasSuffix(ErrorText(nil), "Details: Unknown error"))
	assert.True(t, strings.HasSuffix(ErrorText(errors.New("")), "Details: Unknown error"))
}

func TestToggleFocusesAndCloseKeepsMessages(t *testing.T) {
	tr := &fakeTransport{reply: Reply{Response: "hi"}}
	c, view, _ := newTestController(t, tr)

	assert.False(t, c.IsOpen())
	c.Toggle()
	assert.True(t, c.IsOpen())
	assert.True(t, view.Open())
	assert.True(t, view.Focused())

	c.Submit(context.Background(), "hello")
	c.Toggle()
	assert.False(t, c.IsOpen())
	assert.False(t, view.Open())
	assert.Equal(t, 2, view.List.Len())

	c.Toggle()
	c.Close()
	assert.False(t, c.IsOpen())
	assert.Equal(t, 2, view.List.Len())
}

func TestLateReplyRendersIntoClosedWidget(t *testing.T) {
	tr := &fakeTransport{reply: Reply{Response: "late"}}
	c, view, _ := newTestController(t, tr)

	c.Toggle()
	e, ok := c.Begin("hello")
	require.True(t, ok)
	c.Close()
	e.Finish(e.Run(context.Background()))

	msgs := view.List.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "late", msgs[1].Text)
	assert.False(t, view.Open())
}

func TestOverlappingExchangesRenderInCompletionOrder(t *testing.T) {
	view := NewMemoryView()
	release := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	tr := TransportFunc(func(ctx context.Context, message string) (Reply, error) {
		<-release[message]
		return Reply{Response: "re: " + message}, nil
	})
	c := NewController(view, tr, nil)

	first, ok := c.Begin("first")
	require.True(t, ok)
	second, ok := c.Begin("second")
	require.True(t, ok)

	done := make(chan func())
	var wg sync.WaitGroup
	for _, e := range []*Exchange{first, second} {
		wg.Add(1)
		go func(e *Exchange) {
			defer wg.Done()
			r := e.Run(context.Background())
			done <- func() { e.Finish(r) }
		}(e)
	}

	close(release["second"])
	(<-done)()
	close(release["first"])
	(<-done)()
	wg.Wait()

	want := []shown{
		{Text: "first", Class: "message user-message"},
		{Text: "second", Class: "message user-message"},
		{Text: "re: second", Class: "message bot-message"},
		{Text: "re: first", Class: "message bot-message"},
	}
	if diff := cmp.Diff(want, shownMessages(view.List)); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

type testTriggers struct {
	toggle, close, send, submit func()
}

func (t *testTriggers) OnToggle(h func())    { t.toggle = h }
func (t *testTriggers) OnClose(h func())     { t.close = h }
func (t *testTriggers) OnSend(h func())      { t.send = h }
func (t *testTriggers) OnSubmitKey(h func()) { t.submit = h }

func TestBindRegistersHandlers(t *testing.T) {
	tr := &fakeTransport{reply: Reply{Response: "ok"}}
	c, view, _ := newTestController(t, tr)
	triggers := &testTriggers{}
	c.Bind(triggers, Synchronous(context.Background()))

	triggers.toggle()
	assert.True(t, c.IsOpen())

	view.SetInput("one")
	triggers.send()
	view.SetInput("two")
	triggers.submit()
	view.SetInput("   ")
	triggers.submit()

	assert.Equal(t, []string{"one", "two"}, tr.calls)
	assert.Equal(t, 4, view.List.Len())

	triggers.close()
	assert.False(t, c.IsOpen())
}
