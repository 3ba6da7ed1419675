package chat

import (
	"strings"

	"github.com/kbukum/chatseg/errors"
)

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// ParseRole converts a role name to a Role. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", errors.UnsupportedRole(s, "")
	}
	return r, nil
}

// Message represents a single chat message.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Conversation is an ordered sequence of messages.
type Conversation []Message

// System returns a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User returns a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant returns an assistant message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// HasRole reports whether any message carries role r.
func (c Conversation) HasRole(r Role) bool {
	for _, m := range c {
		if m.Role == r {
			return true
		}
	}
	return false
}

// Count returns the number of messages with role r.
func (c Conversation) Count(r Role) int {
	n := 0
	for _, m := range c {
		if m.Role == r {
			n++
		}
	}
	return n
}

// Last returns the final message and false if the conversation is empty.
func (c Conversation) Last() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// Clone returns a copy that shares no backing array with c.
func (c Conversation) Clone() Conversation {
	if c == nil {
		return nil
	}
	out := make(Conversation, len(c))
	copy(out, c)
	return out
}
