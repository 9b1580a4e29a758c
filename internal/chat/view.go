package chat

import (
	"context"
	"sync"
)

// View is everything the exchange flow touches on screen.
type View interface {
	AppendMessage(text, classNames string) MessageID
	RemoveMessage(id MessageID)
	ScrollToBottom()
	SetWidgetOpen(open bool)
	FocusInput()
	InputValue() string
	ClearInput()
}

// Transport delivers one user message to the chat endpoint.
type Transport interface {
	Send(ctx context.Context, message string) (Reply, error)
}

// Reply is the decoded success body of the endpoint.
type Reply struct {
	Response string
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, message string) (Reply, error)

func (f TransportFunc) Send(ctx context.Context, message string) (Reply, error) {
	return f(ctx, message)
}

// Triggers is the event source a Controller binds its handlers to.
type Triggers interface {
	OnToggle(handler func())
	OnClose(handler func())
	OnSend(handler func())
	OnSubmitKey(handler func())
}

// MemoryView is a View backed by a List with no terminal attached. The
// non-interactive CLI and tests use it.
type MemoryView struct {
	List *List

	mu      sync.Mutex
	input   string
	open    bool
	focused bool
}

func NewMemoryView() *MemoryView {
	return &MemoryView{List: NewList()}
}

func (v *MemoryView) AppendMessage(text, classNames string) MessageID {
	return v.List.Append(text, classNames)
}

func (v *MemoryView) RemoveMessage(id MessageID) {
	v.List.Remove(id)
}

func (v *MemoryView) ScrollToBottom() {
	v.List.ScrollToBottom()
}

func (v *MemoryView) SetWidgetOpen(open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = open
	if !open {
		v.focused = false
	}
}

func (v *MemoryView) FocusInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = true
}

func (v *MemoryView) InputValue() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *MemoryView) ClearInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = ""
}

// SetInput types text into the input field.
func (v *MemoryView) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = text
}

func (v *MemoryView) Open() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.open
}

func (v *MemoryView) Focused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}
