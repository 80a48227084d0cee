package extension

import (
	"errors"
	"testing"

	"github.com/germanamz/grok-launcher/pkg/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(launcher.Preferences{KeyAPIKey: "xai-key"})
	require.NoError(t, err)

	assert.Equal(t, Config{
		APIKey:           "xai-key",
		MaxTokens:        100,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		Temperature:      0.7,
		TopP:             1,
		SystemPrompt:     "You are Grok, created by xAI.",
		LineWrap:         80,
		Model:            "grok-3-beta",
	}, cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(launcher.Preferences{
		KeyAPIKey:           "k",
		KeyMaxTokens:        " 256 ",
		KeyFrequencyPenalty: "1.5",
		KeyPresencePenalty:  "-1",
		KeyTemperature:      "0",
		KeyTopP:             "0.95",
		KeySystemPrompt:     "Reply in French.",
		KeyLineWrap:         "40",
		KeyModel:            "grok-2",
	})
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.MaxTokens)
	assert.InDelta(t, 1.5, cfg.FrequencyPenalty, 1e-9)
	assert.InDelta(t, -1.0, cfg.PresencePenalty, 1e-9)
	assert.InDelta(t, 0.0, cfg.Temperature, 1e-9)
	assert.InDelta(t, 0.95, cfg.TopP, 1e-9)
	assert.Equal(t, "Reply in French.", cfg.SystemPrompt)
	assert.Equal(t, 40, cfg.LineWrap)
	assert.Equal(t, "grok-2", cfg.Model)
}

func TestLoadConfig_BlankValuesUseDefaults(t *testing.T) {
	cfg, err := LoadConfig(launcher.Preferences{KeyAPIKey: "k", KeyMaxTokens: "", KeyModel: "  "})
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadConfig_CollectsProblems(t *testing.T) {
	_, err := LoadConfig(launcher.Preferences{
		KeyMaxTokens: "1.5",
		KeyTopP:      "high",
		KeyLineWrap:  "0",
	})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))

	keys := make([]string, 0, len(cfgErr.Problems))
	for _, p := range cfgErr.Problems {
		keys = append(keys, p.Key)
	}
	assert.ElementsMatch(t, []string{KeyMaxTokens, KeyTopP, KeyAPIKey, KeyLineWrap}, keys)
	assert.Contains(t, err.Error(), `max_tokens "1.5" not an integer`)
	assert.Contains(t, err.Error(), `top_p "high" not a number`)
	assert.Contains(t, err.Error(), "api_key is required")
	assert.Contains(t, err.Error(), `line_wrap "0" must be greater than 0`)
}

func TestLoadConfig_Ranges(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{KeyMaxTokens, "-5", "must be greater than 0"},
		{KeyTemperature, "-0.1", "must be at least 0"},
		{KeyTopP, "1.1", "must be at most 1"},
		{KeyFrequencyPenalty, "3", "must be at most 2"},
		{KeyPresencePenalty, "-2.5", "must be at least -2"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := LoadConfig(launcher.Preferences{KeyAPIKey: "k", tt.key: tt.value})
			assert.ErrorContains(t, err, tt.key)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestConfig_Redacted(t *testing.T) {
	assert.Equal(t, "******cdef", Config{APIKey: "xai-abcdef"}.Redacted().APIKey)
	assert.Equal(t, "***", Config{APIKey: "abc"}.Redacted().APIKey)
	assert.Empty(t, Config{}.Redacted().APIKey)
}

func TestConfig_RedactedMultiByte(t *testing.T) {
	assert.Equal(t, "*******крет", Config{APIKey: "ключ-секрет"}.Redacted().APIKey)
	assert.Equal(t, "**", Config{APIKey: "日本"}.Redacted().APIKey)
	assert.Equal(t, "**本日本語", Config{APIKey: "日本本日本語"}.Redacted().APIKey)
}

func TestErrorItem(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		title string
	}{
		{"configuration", &ConfigurationError{Problems: []FieldError{{Key: "api_key", Err: errors.New("is required")}}}, "Failed to parse preferences: api_key is required"},
		{"request", &RequestError{Err: errors.New("dial tcp: refused")}, "Request failed: dial tcp: refused"},
		{"response", &ResponseError{Message: "bad", Err: errors.New("x")}, "Failed to parse response: bad"},
		{"processing", &ProcessingError{Err: errors.New("choice 1: odd")}, "Failed to process response: choice 1: odd"},
		{"other", errors.New("surprise"), "Failed to process response: surprise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := ErrorItem(DefaultIcon, tt.err)
			assert.Equal(t, tt.title, item.Name)
			assert.Equal(t, launcher.CopyToClipboard(tt.err.Error()), item.Action)
			assert.Equal(t, DefaultIcon, item.Icon)
		})
	}
}
