package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the bindings and doubles as the chat.Triggers source: the
// widget handlers are registered on it and fired from Update.
type keyMap struct {
	Toggle   key.Binding
	Close    key.Binding
	Submit   key.Binding
	Send     key.Binding
	NextLink key.Binding
	PrevLink key.Binding
	Follow   key.Binding
	Direct   key.Binding
	Scroll   key.Binding
	History  key.Binding
	Quit     key.Binding

	onToggle func()
	onClose  func()
	onSend   func()
	onSubmit func()
}

func defaultKeyMap() *keyMap {
	return &keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "chat"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send"),
		),
		NextLink: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "next link"),
		),
		PrevLink: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "prev link"),
		),
		Follow: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Direct: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		History: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k *keyMap) OnToggle(handler func())    { k.onToggle = handler }
func (k *keyMap) OnClose(handler func())     { k.onClose = handler }
func (k *keyMap) OnSend(handler func())      { k.onSend = handler }
func (k *keyMap) OnSubmitKey(handler func()) { k.onSubmit = handler }

// fire runs the widget handler bound to msg. Close and the send keys only
// exist while the widget is open.
func (k *keyMap) fire(msg tea.KeyMsg, widgetOpen bool) bool {
	var handler func()
	switch {
	case key.Matches(msg, k.Toggle):
		handler = k.onToggle
	case !widgetOpen:
		return false
	case key.Matches(msg, k.Close):
		handler = k.onClose
	case key.Matches(msg, k.Submit):
		handler = k.onSubmit
	case key.Matches(msg, k.Send):
		handler = k.onSend
	default:
		return false
	}
	if handler != nil {
		handler()
	}
	return true
}

// bindingHelp feeds a fixed set of bindings to help.Model.
type bindingHelp []key.Binding

func (b bindingHelp) ShortHelp() []key.Binding  { return b }
func (b bindingHelp) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k *keyMap) pageHelp() bindingHelp {
	return bindingHelp{k.NextLink, k.Follow, k.Direct, k.Scroll, k.Toggle, k.Quit}
}

func (k *keyMap) chatHelp() bindingHelp {
	return bindingHelp{k.Submit, k.Send, k.History, k.Close, k.Quit}
}
