// Package usage tallies token consumption reported by completion responses.
package usage

import (
	"maps"
	"sync"
)

// TokenCount holds prompt and completion token counts.
type TokenCount struct {
	PromptTokens     int
	CompletionTokens int
}

// Total returns the sum of prompt and completion tokens.
func (tc TokenCount) Total() int {
	return tc.PromptTokens + tc.CompletionTokens
}

// Add returns the element-wise sum of tc and other.
func (tc TokenCount) Add(other TokenCount) TokenCount {
	return TokenCount{
		PromptTokens:     tc.PromptTokens + other.PromptTokens,
		CompletionTokens: tc.CompletionTokens + other.CompletionTokens,
	}
}

// Tracker accumulates token usage per model across requests.
// It is safe for concurrent use; the zero value is ready.
type Tracker struct {
	mu       sync.Mutex
	requests int
	byModel  map[string]TokenCount
}

// Record adds one request's usage under model.
func (t *Tracker) Record(model string, tc TokenCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.byModel == nil {
		t.byModel = make(map[string]TokenCount)
	}
	t.byModel[model] = t.byModel[model].Add(tc)
	t.requests++
}

// Requests returns the number of recorded requests.
func (t *Tracker) Requests() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.requests
}

// Total returns the usage summed over all models.
func (t *Tracker) Total() TokenCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total TokenCount
	for _, tc := range t.byModel {
		total = total.Add(tc)
	}
	return total
}

// ByModel returns a copy of the per-model usage.
func (t *Tracker) ByModel() map[string]TokenCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	return maps.Clone(t.byModel)
}
