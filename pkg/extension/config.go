package extension

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/germanamz/grok-launcher/pkg/launcher"
	"github.com/germanamz/grok-launcher/pkg/providers/grok"
	"github.com/go-playground/validator/v10"
)

// Preference keys understood by the extension.
const (
	KeyAPIKey           = "api_key"
	KeyMaxTokens        = "max_tokens"
	KeyFrequencyPenalty = "frequency_penalty"
	KeyPresencePenalty  = "presence_penalty"
	KeyTemperature      = "temperature"
	KeyTopP             = "top_p"
	KeySystemPrompt     = "system_prompt"
	KeyLineWrap         = "line_wrap"
	KeyModel            = "model"
)

// Defaults applied when a preference is absent or blank.
const (
	DefaultMaxTokens        = 100
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
	DefaultTemperature      = 0.7
	DefaultTopP             = 1.0
	DefaultSystemPrompt     = "You are Grok, created by xAI."
	DefaultLineWrap         = 80
	DefaultModel            = grok.DefaultModel
)

// Config is the typed form of the host preferences for one query.
type Config struct {
	APIKey           string  `pref:"api_key"           validate:"required"` //nolint:gosec // configuration field, not a hardcoded secret
	MaxTokens        int     `pref:"max_tokens"        validate:"gt=0"`
	FrequencyPenalty float64 `pref:"frequency_penalty" validate:"gte=-2,lte=2"`
	PresencePenalty  float64 `pref:"presence_penalty"  validate:"gte=-2,lte=2"`
	Temperature      float64 `pref:"temperature"       validate:"gte=0,lte=2"`
	TopP             float64 `pref:"top_p"             validate:"gte=0,lte=1"`
	SystemPrompt     string  `pref:"system_prompt"`
	LineWrap         int     `pref:"line_wrap"         validate:"gt=0"`
	Model            string  `pref:"model"             validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("pref"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// LoadConfig builds a Config from prefs, applying defaults for absent or
// blank keys. Every parse failure and range violation is collected into a
// single *ConfigurationError.
func LoadConfig(prefs launcher.Preferences) (Config, error) {
	p := &prefParser{prefs: prefs}

	cfg := Config{
		APIKey:           prefs.Get(KeyAPIKey, ""),
		MaxTokens:        p.int(KeyMaxTokens, DefaultMaxTokens),
		FrequencyPenalty: p.float(KeyFrequencyPenalty, DefaultFrequencyPenalty),
		PresencePenalty:  p.float(KeyPresencePenalty, DefaultPresencePenalty),
		Temperature:      p.float(KeyTemperature, DefaultTemperature),
		TopP:             p.float(KeyTopP, DefaultTopP),
		SystemPrompt:     prefs.Get(KeySystemPrompt, DefaultSystemPrompt),
		LineWrap:         p.int(KeyLineWrap, DefaultLineWrap),
		Model:            strings.TrimSpace(prefs.Get(KeyModel, DefaultModel)),
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Config{}, &ConfigurationError{Problems: []FieldError{{Err: err}}}
		}
		for _, fe := range verrs {
			if p.failed(fe.Field()) {
				continue
			}
			p.problems = append(p.problems, FieldError{
				Key:   fe.Field(),
				Value: fmt.Sprint(fe.Value()),
				Err:   errors.New(describeRule(fe)),
			})
		}
	}

	if len(p.problems) > 0 {
		return Config{}, &ConfigurationError{Problems: p.problems}
	}

	return cfg, nil
}

// Redacted returns a copy of c safe to print: the API key keeps only its
// last four characters.
func (c Config) Redacted() Config {
	key := []rune(c.APIKey)
	if n := len(key); n > 4 {
		c.APIKey = strings.Repeat("*", n-4) + string(key[n-4:])
	} else if n > 0 {
		c.APIKey = strings.Repeat("*", n)
	}
	return c
}

type prefParser struct {
	prefs    launcher.Preferences
	problems []FieldError
}

func (p *prefParser) int(key string, def int) int {
	raw, ok := p.prefs.Lookup(key)
	if !ok {
		return def
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.problems = append(p.problems, FieldError{Key: key, Value: raw, Err: errors.New("not an integer")})
		return def
	}
	return v
}

func (p *prefParser) float(key string, def float64) float64 {
	raw, ok := p.prefs.Lookup(key)
	if !ok {
		return def
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		p.problems = append(p.problems, FieldError{Key: key, Value: raw, Err: errors.New("not a number")})
		return def
	}
	return v
}

// failed reports whether key already has a parse problem, so range checks on
// its default value are not reported on top of it.
func (p *prefParser) failed(key string) bool {
	for _, fe := range p.problems {
		if fe.Key == key {
			return true
		}
	}
	return false
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "fails " + fe.Tag()
	}
}
