package chat

import "strings"

// Role identifies who a displayed message belongs to.
type Role string

const (
	RoleUser       Role = "user"
	RoleBot        Role = "bot"
	RoleBotError   Role = "bot-error"
	RoleBotLoading Role = "bot-loading"
)

// Class names carried by message nodes. A node always has BaseClass plus
// the space-separated names it was appended with.
const (
	BaseClass       = "message"
	ClassUser       = "user-message"
	ClassBot        = "bot-message"
	ClassBotLoading = "bot-message loading"
	ClassBotError   = "bot-message error"
)

// LoadingText is shown while an exchange is waiting for the endpoint.
const LoadingText = "Typing..."

// MessageID is the handle returned when a message is appended.
type MessageID string

type Message struct {
	ID      MessageID
	Text    string
	Classes []string
}

// HasClass reports whether the message node carries the class name.
func (m Message) HasClass(name string) bool {
	for _, c := range m.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// ClassName joins the node classes the way they were assigned.
func (m Message) ClassName() string {
	return strings.Join(m.Classes, " ")
}

func (m Message) Role() Role {
	switch {
	case m.HasClass("user-message"):
		return RoleUser
	case m.HasClass("loading"):
		return RoleBotLoading
	case m.HasClass("error"):
		return RoleBotError
	default:
		return RoleBot
	}
}

// classList builds the node classes for Append: the base class followed by
// every non-empty name in classNames.
func classList(classNames string) []string {
	fields := strings.Fields(classNames)
	classes := make([]string, 0, len(fields)+1)
	classes = append(classes, BaseClass)
	return append(classes, fields...)
}
