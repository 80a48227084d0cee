// Package grok sends chat completions to xAI's Grok models using the
// OpenAI-compatible chat completions API.
package grok

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/germanamz/grok-launcher/pkg/chats/chat"
	"github.com/germanamz/grok-launcher/pkg/chats/message"
	"github.com/germanamz/grok-launcher/pkg/modeladapter"
)

const (
	// DefaultBaseURL is the base URL for the xAI API.
	DefaultBaseURL = "https://api.x.ai/v1"
	// CompletionsPath is appended to the base URL for chat completions.
	CompletionsPath = "/chat/completions"
	// DefaultModel is used when no model is configured.
	DefaultModel = "grok-3-beta"
	// RequestTimeout bounds a single completion call.
	RequestTimeout = 15 * time.Second
)

// GrokAdapter sends chat completions to xAI's Grok API.
type GrokAdapter struct {
	modeladapter.ModelAdapter

	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// New creates a GrokAdapter with the given API key and HTTP client.
// A nil client falls back to a client bounded by RequestTimeout.
func New(apiKey string, client *http.Client) *GrokAdapter {
	a := &GrokAdapter{
		ModelAdapter: modeladapter.New(DefaultBaseURL, modeladapter.Auth{Key: apiKey}, client),
		TopP:         1,
	}
	a.Name = DefaultModel
	a.Timeout = RequestTimeout
	a.HeaderParser = modeladapter.ParseOpenAIRateLimitHeaders
	return a
}

// Complete sends a conversation to the Grok chat completions endpoint and
// returns every candidate the API produced. Request-stage failures come back
// wrapped as returned by modeladapter; body failures are *ResponseError and
// per-candidate failures *ChoiceError.
func (g *GrokAdapter) Complete(ctx context.Context, c *chat.Chat) (Completion, error) {
	req, err := g.newRequest(c)
	if err != nil {
		return Completion{}, fmt.Errorf("grok: %w", err)
	}

	body, err := g.PostJSON(ctx, CompletionsPath, req)
	if err != nil {
		var (
			se  *modeladapter.StatusError
			rle *modeladapter.RateLimitError
		)
		switch {
		case errors.As(err, &se):
			se.Message, _ = APIErrorMessage(se.Body)
		case errors.As(err, &rle):
			rle.Message, _ = APIErrorMessage(rle.Body)
		}
		return Completion{}, fmt.Errorf("grok: %w", err)
	}

	comp, err := ParseCompletion(body)
	if err != nil {
		return Completion{}, fmt.Errorf("grok: %w", err)
	}

	return comp, nil
}

// API request types.

type chatRequest struct {
	Model            string       `json:"model"`
	Messages         []apiMessage `json:"messages"`
	Temperature      float64      `json:"temperature"`
	MaxTokens        int          `json:"max_tokens"`
	TopP             float64      `json:"top_p"`
	FrequencyPenalty float64      `json:"frequency_penalty"`
	PresencePenalty  float64      `json:"presence_penalty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (g *GrokAdapter) newRequest(c *chat.Chat) (chatRequest, error) {
	msgs, err := convertMessages(c)
	if err != nil {
		return chatRequest{}, err
	}

	return chatRequest{
		Model:            g.Name,
		Messages:         msgs,
		Temperature:      g.Temperature,
		MaxTokens:        g.MaxTokens,
		TopP:             g.TopP,
		FrequencyPenalty: g.FrequencyPenalty,
		PresencePenalty:  g.PresencePenalty,
	}, nil
}

// convertMessages transforms a Chat into the API message format.
func convertMessages(c *chat.Chat) ([]apiMessage, error) {
	msgs := make([]apiMessage, 0, c.Len())

	var err error
	c.Each(func(i int, m message.Message) bool {
		if !m.Role.Valid() {
			err = fmt.Errorf("message %d: unsupported role %q", i, m.Role)
			return false
		}
		msgs = append(msgs, apiMessage{
			Role:    m.Role.String(),
			Content: m.Text,
		})
		return true
	})

	return msgs, err
}
