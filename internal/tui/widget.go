package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/chat"
)

// chatView is the terminal chat.View: a message list shown in a viewport
// above a single-line input.
type chatView struct {
	list     *chat.List
	input    textinput.Model
	messages viewport.Model
	open     bool
	width    int

	// focusCmd is the cursor blink started by FocusInput, picked up by the
	// model after the handler returns.
	focusCmd tea.Cmd
}

func newChatView() *chatView {
	ti := textinput.New()
	ti.Placeholder = "Ask me something..."
	ti.Prompt = "> "
	ti.CharLimit = 0

	return &chatView{
		list:     chat.NewList(),
		input:    ti,
		messages: viewport.New(40, 6),
		width:    40,
	}
}

func (v *chatView) AppendMessage(text, classNames string) chat.MessageID {
	id := v.list.Append(text, classNames)
	v.refresh()
	return id
}

func (v *chatView) RemoveMessage(id chat.MessageID) {
	if v.list.Remove(id) {
		v.refresh()
	}
}

func (v *chatView) ScrollToBottom() {
	v.list.ScrollToBottom()
	v.messages.GotoBottom()
}

func (v *chatView) SetWidgetOpen(open bool) {
	v.open = open
	if !open {
		v.input.Blur()
	}
}

func (v *chatView) FocusInput() {
	v.focusCmd = v.input.Focus()
}

func (v *chatView) InputValue() string {
	return v.input.Value()
}

func (v *chatView) ClearInput() {
	v.input.Reset()
}

func (v *chatView) takeFocusCmd() tea.Cmd {
	cmd := v.focusCmd
	v.focusCmd = nil
	return cmd
}

// setSize fits the panel into width columns with height rows of messages.
func (v *chatView) setSize(width, height int) {
	v.width = width
	v.messages.Width = width
	v.messages.Height = height
	v.input.Width = width - len(v.input.Prompt) - 1
	v.refresh()
}

func (v *chatView) refresh() {
	msgs := v.list.Messages()
	rendered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		rendered = append(rendered, messageStyle(msg.Role()).Width(v.width).Render(chat.PlainText(msg.Text)))
	}
	v.messages.SetContent(strings.Join(rendered, "\n"))
}
