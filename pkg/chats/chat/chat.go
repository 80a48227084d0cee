// Package chat provides the ordered conversation sent to a completion API.
package chat

import (
	"github.com/germanamz/grok-launcher/pkg/chats/message"
	"github.com/germanamz/grok-launcher/pkg/chats/role"
)

// Chat is an ordered conversation. The zero value is ready to use.
// Chat is not safe for concurrent use; callers must synchronize externally.
type Chat struct {
	messages []message.Message
}

// New creates a Chat pre-populated with the given messages.
func New(msgs ...message.Message) *Chat {
	return &Chat{messages: msgs}
}

// ForPrompt creates the two-message conversation used for a single launcher
// query: the system instruction followed by the user's prompt.
func ForPrompt(systemPrompt, prompt string) *Chat {
	return New(message.System(systemPrompt), message.User(prompt))
}

// Len returns the number of messages in the conversation.
func (c *Chat) Len() int {
	return len(c.messages)
}

// Each iterates over messages, calling fn for each one. If fn returns false,
// iteration stops early.
func (c *Chat) Each(fn func(int, message.Message) bool) {
	for i, m := range c.messages {
		if !fn(i, m) {
			return
		}
	}
}

// SystemPrompt returns the text of the first system message, or an empty
// string if there is none.
func (c *Chat) SystemPrompt() string {
	for _, m := range c.messages {
		if m.Role == role.System {
			return m.Text
		}
	}
	return ""
}

// Prompt returns the text of the last user message, or an empty string if
// there is none.
func (c *Chat) Prompt() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == role.User {
			return c.messages[i].Text
		}
	}
	return ""
}
