// Package message defines the Message type used in LLM conversations.
package message

import "github.com/germanamz/grok-launcher/pkg/chats/role"

// Message represents a single text message in a conversation.
// It is a value type that copies cheaply.
type Message struct {
	Role role.Role
	Text string
}

// New creates a message with the given role and text.
func New(r role.Role, text string) Message {
	return Message{Role: r, Text: text}
}

// System is shorthand for New(role.System, text).
func System(text string) Message {
	return New(role.System, text)
}

// User is shorthand for New(role.User, text).
func User(text string) Message {
	return New(role.User, text)
}
