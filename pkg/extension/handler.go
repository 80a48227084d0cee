package extension

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/germanamz/grok-launcher/pkg/chats/chat"
	"github.com/germanamz/grok-launcher/pkg/launcher"
	"github.com/germanamz/grok-launcher/pkg/modeladapter/usage"
	"github.com/germanamz/grok-launcher/pkg/providers/grok"
	"github.com/germanamz/grok-launcher/pkg/textwrap"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultIcon is the icon reference attached to every item.
const DefaultIcon = "images/icon.png"

// Titles of the items the handler produces.
const (
	TitleAwaitingInput = "Type in a prompt..."
	TitleNoResponse    = "No response from Grok"
	TitleNoValid       = "No valid response from Grok"
	TitleResponse      = "Grok Response"
)

// Handler answers launcher queries by forwarding the prompt to Grok.
// It keeps no state between queries; the zero value is usable.
type Handler struct {
	BaseURL   string         // API base URL (default: grok.DefaultBaseURL).
	Client    *http.Client   // HTTP client; nil uses a client bounded by Timeout.
	Timeout   time.Duration  // Bound on the API call (default: grok.RequestTimeout).
	Icon      string         // Item icon (default: DefaultIcon).
	UserAgent string         // User-Agent sent with API requests; empty keeps Go's default.
	Logger    *zap.Logger    // Logger; nil disables logging.
	Usage     *usage.Tracker // Receives token usage of successful calls; may be nil.
}

// New creates a Handler that logs to logger.
func New(logger *zap.Logger) *Handler {
	return &Handler{Logger: logger}
}

// Handle runs one query and returns the items to display. It never returns
// an empty list: failures and placeholders are items too.
func (h *Handler) Handle(ctx context.Context, prefs launcher.Preferences, argument string) (items []launcher.Item) {
	log := h.log()

	defer func() {
		if r := recover(); r != nil {
			log.Error("query handler panicked", zap.Any("panic", r))
			items = []launcher.Item{ErrorItem(h.icon(), &ProcessingError{Err: fmt.Errorf("%v", r)})}
		}
	}()

	items, err := h.run(ctx, prefs, argument)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return []launcher.Item{ErrorItem(h.icon(), err)}
	}

	return items
}

func (h *Handler) run(ctx context.Context, prefs launcher.Preferences, argument string) ([]launcher.Item, error) {
	log := h.log()

	log.Debug("processing user preferences")
	cfg, err := LoadConfig(prefs)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(argument) == "" {
		log.Debug("displaying blank prompt")
		return []launcher.Item{h.placeholder(TitleAwaitingInput)}, nil
	}

	conv := chat.ForPrompt(cfg.SystemPrompt, argument)

	log.Info("sending request",
		zap.String("model", cfg.Model),
		zap.Int("messages", conv.Len()),
		zap.Int("prompt_len", len(conv.Prompt())),
		zap.Int("max_tokens", cfg.MaxTokens),
	)
	log.Debug("conversation",
		zap.String("system_prompt", conv.SystemPrompt()),
		zap.String("prompt", conv.Prompt()),
	)

	comp, err := h.complete(ctx, cfg, conv)
	if err != nil {
		return nil, err
	}

	log.Info("request succeeded",
		zap.String("id", comp.ID),
		zap.Int("choices", len(comp.Candidates)),
		zap.Int("prompt_tokens", comp.Usage.PromptTokens),
		zap.Int("completion_tokens", comp.Usage.CompletionTokens),
	)

	if h.Usage != nil {
		h.Usage.Record(cfg.Model, usage.TokenCount{
			PromptTokens:     comp.Usage.PromptTokens,
			CompletionTokens: comp.Usage.CompletionTokens,
		})
	}

	if len(comp.Candidates) == 0 {
		log.Warn("no choices in response")
		return []launcher.Item{h.placeholder(TitleNoResponse)}, nil
	}

	texts := lo.FilterMap(comp.Candidates, func(c grok.Candidate, _ int) (string, bool) {
		return textwrap.Wrap(c.Text, cfg.LineWrap), c.Text != ""
	})

	if len(texts) == 0 {
		log.Info("no valid responses to display")
		return []launcher.Item{h.placeholder(TitleNoValid)}, nil
	}

	log.Debug("results", zap.String("items", strings.Join(texts, " | ")))

	return lo.Map(texts, func(text string, _ int) launcher.Item {
		return launcher.Item{
			Icon:        h.icon(),
			Name:        TitleResponse,
			Description: text,
			Action:      launcher.CopyToClipboard(text),
		}
	}), nil
}

// complete performs the single API call and sorts its failure into the
// error taxonomy.
func (h *Handler) complete(ctx context.Context, cfg Config, conv *chat.Chat) (grok.Completion, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = grok.RequestTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	adapter := grok.New(cfg.APIKey, h.Client)
	if h.BaseURL != "" {
		adapter.BaseURL = h.BaseURL
	}
	adapter.Name = cfg.Model
	adapter.Temperature = cfg.Temperature
	adapter.MaxTokens = cfg.MaxTokens
	adapter.TopP = cfg.TopP
	adapter.FrequencyPenalty = cfg.FrequencyPenalty
	adapter.PresencePenalty = cfg.PresencePenalty
	adapter.Timeout = timeout
	if h.UserAgent != "" {
		adapter.Headers = map[string]string{"User-Agent": h.UserAgent}
	}

	comp, err := adapter.Complete(ctx, conv)

	if info := adapter.LastRateLimitInfo(); info != nil {
		h.log().Debug("rate limit",
			zap.Int("remaining_requests", info.RemainingRequests),
			zap.Int("remaining_tokens", info.RemainingTokens),
		)
	}

	if err == nil {
		return comp, nil
	}

	var (
		respErr   *grok.ResponseError
		choiceErr *grok.ChoiceError
	)

	switch {
	case errors.As(err, &respErr):
		msg := respErr.APIMessage
		if msg == "" {
			msg = UnknownErrorMessage
		}
		return grok.Completion{}, &ResponseError{Message: msg, Err: err}
	case errors.As(err, &choiceErr):
		return grok.Completion{}, &ProcessingError{Err: err}
	default:
		return grok.Completion{}, &RequestError{Err: err}
	}
}

func (h *Handler) placeholder(title string) launcher.Item {
	return launcher.Item{Icon: h.icon(), Name: title, Action: launcher.DoNothing()}
}

func (h *Handler) icon() string {
	if h.Icon != "" {
		return h.Icon
	}
	return DefaultIcon
}

func (h *Handler) log() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}
