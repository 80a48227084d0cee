// Package providers groups the concrete chat completion adapters.
//
// Each sub-package embeds [github.com/germanamz/grok-launcher/pkg/modeladapter.ModelAdapter]
// and speaks one vendor's wire format:
//   - [github.com/germanamz/grok-launcher/pkg/providers/grok]: xAI's Grok chat completions API
package providers
