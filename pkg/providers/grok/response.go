package grok

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Candidate is one alternative completion returned by the API.
type Candidate struct {
	Index        int
	Text         string
	FinishReason string
}

// Usage reports token counts for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is a parsed chat completion response.
// Candidates keep API order and may carry empty text.
type Completion struct {
	ID         string
	Model      string
	Candidates []Candidate
	Usage      Usage
}

// ResponseError reports a 2xx body that is not a usable completion envelope.
// APIMessage holds the API's own error text when one could be extracted.
type ResponseError struct {
	APIMessage string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.APIMessage != "" {
		return "api error: " + e.APIMessage
	}
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// ChoiceError reports a candidate whose content could not be extracted.
type ChoiceError struct {
	Position int
	Err      error
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("choice %d: %v", e.Position, e.Err)
}

func (e *ChoiceError) Unwrap() error { return e.Err }

// errNoChoices is wrapped by a ResponseError when the body names an API error
// instead of carrying candidates.
var errNoChoices = errors.New("no choices in response")

var (
	errNotObject  = errors.New("body is not a JSON object")
	errNullChoice = errors.New("choice is null")
	errNullMsg    = errors.New("message is null")
)

var jsonNull = []byte("null")

type envelope struct {
	ID      string            `json:"id"`
	Model   string            `json:"model"`
	Choices []json.RawMessage `json:"choices"`
	Usage   *Usage            `json:"usage"`
	Error   json.RawMessage   `json:"error"`
}

type apiChoice struct {
	Index        *int            `json:"index"`
	Message      json.RawMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type apiChoiceMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// ParseCompletion decodes a chat completion body. The body must be a JSON
// object; one without choices and without an API error yields a Completion
// with no candidates.
func ParseCompletion(body []byte) (Completion, error) {
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		return Completion{}, &ResponseError{Err: errNotObject}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		msg, _ := APIErrorMessage(body)
		return Completion{}, &ResponseError{APIMessage: msg, Err: err}
	}

	if len(env.Choices) == 0 {
		if msg, ok := errorText(env.Error); ok {
			return Completion{}, &ResponseError{APIMessage: msg, Err: errNoChoices}
		}
	}

	comp := Completion{
		ID:         env.ID,
		Model:      env.Model,
		Candidates: make([]Candidate, 0, len(env.Choices)),
	}
	if env.Usage != nil {
		comp.Usage = *env.Usage
	}

	for i, raw := range env.Choices {
		cand, err := parseChoice(i, raw)
		if err != nil {
			return Completion{}, &ChoiceError{Position: i, Err: err}
		}
		comp.Candidates = append(comp.Candidates, cand)
	}

	return comp, nil
}

// parseChoice extracts one candidate. A missing message or null content is
// an empty candidate; a null choice or null message is an error.
func parseChoice(pos int, raw json.RawMessage) (Candidate, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return Candidate{}, errNullChoice
	}

	var ch apiChoice
	if err := json.Unmarshal(raw, &ch); err != nil {
		return Candidate{}, err
	}

	cand := Candidate{Index: pos, FinishReason: ch.FinishReason}
	if ch.Index != nil {
		cand.Index = *ch.Index
	}

	if len(ch.Message) == 0 {
		return cand, nil
	}
	if bytes.Equal(bytes.TrimSpace(ch.Message), jsonNull) {
		return Candidate{}, errNullMsg
	}

	var msg apiChoiceMessage
	if err := json.Unmarshal(ch.Message, &msg); err != nil {
		return Candidate{}, err
	}
	if msg.Content != nil {
		cand.Text = *msg.Content
	}

	return cand, nil
}

// APIErrorMessage extracts the API's error text from a response body shaped
// like {"error":{"message":"..."}} or {"error":"..."}. It reports false when
// the body is not JSON or carries no such message.
func APIErrorMessage(body []byte) (string, bool) {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", false
	}
	return errorText(probe.Error)
}

func errorText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}

	msg := strings.TrimSpace(obj.Message)
	return msg, msg != ""
}
