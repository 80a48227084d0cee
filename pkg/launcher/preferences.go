package launcher

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preferences is the string-keyed settings mapping provided by the host.
// A nil Preferences is valid and empty.
type Preferences map[string]string

// Lookup returns the value for key and whether it is set to a non-blank value.
func (p Preferences) Lookup(key string) (string, bool) {
	v, ok := p[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Get returns the value for key, or def when the key is absent or blank.
func (p Preferences) Get(key, def string) string {
	if v, ok := p.Lookup(key); ok {
		return v
	}
	return def
}

// Merge returns a new mapping holding p overlaid with overrides.
// Neither input is modified.
func (p Preferences) Merge(overrides Preferences) Preferences {
	out := make(Preferences, len(p)+len(overrides))
	maps.Copy(out, p)
	maps.Copy(out, overrides)
	return out
}

// LoadPreferencesFile reads a YAML mapping of scalar values and returns it as
// Preferences. Environment variables referenced as ${VAR} or $VAR are expanded
// before parsing, so the API key can live in the environment (e.g. a .env file)
// rather than in the file.
func LoadPreferencesFile(path string) (Preferences, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return nil, fmt.Errorf("launcher: load preferences: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("launcher: parse preferences: %w", err)
	}

	prefs := make(Preferences, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			continue
		case map[string]any, []any:
			return nil, fmt.Errorf("launcher: parse preferences: %q must be a scalar", k)
		case string:
			prefs[k] = v
		default:
			prefs[k] = fmt.Sprint(v)
		}
	}

	return prefs, nil
}

// PreferencesFromEnv collects environment variables starting with prefix into
// Preferences, keyed by the lower-cased remainder: with prefix "GROK_",
// GROK_API_KEY becomes api_key. Blank variables are skipped.
func PreferencesFromEnv(prefix string) Preferences {
	prefs := Preferences{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		prefs[strings.ToLower(strings.TrimPrefix(name, prefix))] = value
	}
	return prefs
}
