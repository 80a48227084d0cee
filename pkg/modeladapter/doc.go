// Package modeladapter provides the embeddable HTTP base shared by chat
// completion providers.
//
// It contains:
//   - [ModelAdapter], holding model settings, auth, base URL and an HTTP client
//   - [ModelAdapter.PostJSON], which returns the raw body of a 2xx answer and
//     typed [StatusError] / [RateLimitError] values otherwise
//   - rate limit header parsing ([ParseOpenAIRateLimitHeaders])
//   - the [github.com/germanamz/grok-launcher/pkg/modeladapter/usage] sub-package,
//     a per-model token usage tally
//
// This package contains no provider-specific code; concrete adapters live in
// separate packages that embed ModelAdapter.
package modeladapter
