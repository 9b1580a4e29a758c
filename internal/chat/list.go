package chat

import (
	"sync"

	"github.com/google/uuid"
)

// List is the message list container. Messages keep their append order;
// nothing is reordered or deduplicated.
type List struct {
	mu       sync.Mutex
	messages []Message
	offset   int
	newID    func() MessageID
}

func NewList() *List {
	return &List{
		newID: func() MessageID {
			return MessageID(uuid.NewString())
		},
	}
}

// Append adds a node tagged with BaseClass plus classNames and returns its
// handle. The text is stored verbatim.
func (l *List) Append(text, classNames string) MessageID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.newID()
	l.messages = append(l.messages, Message{
		ID:      id,
		Text:    text,
		Classes: classList(classNames),
	})
	return id
}

// Remove destroys the node with the given handle. It reports false when the
// node is not in the list.
func (l *List) Remove(id MessageID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, msg := range l.messages {
		if msg.ID == id {
			l.messages = append(l.messages[:i], l.messages[i+1:]...)
			if l.offset > len(l.messages) {
				l.offset = len(l.messages)
			}
			return true
		}
	}
	return false
}

// ScrollToBottom pins the scroll position to the newest entry.
func (l *List) ScrollToBottom() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.offset = len(l.messages)
}

// Offset is the scroll position, counted in messages.
func (l *List) Offset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

func (l *List) AtBottom() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset == len(l.messages)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Messages returns a copy of the list in display order.
func (l *List) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}
