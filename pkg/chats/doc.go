// Package chats holds the conversation types sent to chat completion APIs.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/grok-launcher/pkg/chats/role]: sender roles
//   - [github.com/germanamz/grok-launcher/pkg/chats/message]: a single text message
//   - [github.com/germanamz/grok-launcher/pkg/chats/chat]: an ordered conversation
package chats
