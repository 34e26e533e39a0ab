package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// setter assigns a raw value (a string from the environment or a
// decoded TOML/YAML value) to one key of a layer.
type setter func(l *Layer, raw any) error

// keys lists every configuration key in file/env spelling.
// Keys missing from this table are ignored when reading files.
var keys = map[string]setter{
	"models_auto_download": boolKey(func(l *Layer, v bool) { l.ModelsAutoDownload = &v }),
	"languages_preload":    listKey(func(l *Layer, v []string) { l.LanguagesPreload = &v }),
	"default_language":     stringKey(func(l *Layer, v string) { l.DefaultLanguage = &v }),
	"format":               stringKey(func(l *Layer, v string) { l.Format = &v }),
	"output_dir":           stringKey(func(l *Layer, v string) { l.OutputDir = &v }),
	"concurrency":          intKey(func(l *Layer, v int) { l.Concurrency = &v }),
	"timeout_seconds":      floatKey(func(l *Layer, v float64) { l.TimeoutSeconds = &v }),
	"rate_limit_rps":       floatKey(func(l *Layer, v float64) { l.RateLimit = &v }),
	"robots_policy":        stringKey(func(l *Layer, v string) { l.Robots = &v }),
	"max_retries":          intKey(func(l *Layer, v int) { l.MaxRetries = &v }),
	"log_level":            stringKey(func(l *Layer, v string) { l.LogLevel = &v }),
	"enable":               listKey(func(l *Layer, v []string) { l.Enable = &v }),
	"disable":              listKey(func(l *Layer, v []string) { l.Disable = &v }),
	"enable_embeddings":    boolKey(func(l *Layer, v bool) { l.EnableEmbeddings = &v }),
	"enable_sentiment":     boolKey(func(l *Layer, v bool) { l.EnableSentiment = &v }),
	"embeddings_backend":   stringKey(func(l *Layer, v string) { l.EmbeddingsBackend = &v }),
	"embeddings_model":     stringKey(func(l *Layer, v string) { l.EmbeddingsModel = &v }),
	"embeddings_preload":   boolKey(func(l *Layer, v bool) { l.EmbeddingsPreload = &v }),
	"embeddings_base_url":  stringKey(func(l *Layer, v string) { l.EmbeddingsBaseURL = &v }),
	"openai_api_key":       stringKey(func(l *Layer, v string) { l.OpenAIAPIKey = &v }),
	"conllu_engine":        stringKey(func(l *Layer, v string) { l.ConllUEngine = &v }),
	"model_dir":            stringKey(func(l *Layer, v string) { l.ModelDir = &v }),
	"proxy":                stringKey(func(l *Layer, v string) { l.Proxy = &v }),
	"user_agent":           stringKey(func(l *Layer, v string) { l.UserAgent = &v }),
}

// KeyNames returns the known configuration keys.
func KeyNames() []string {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	return names
}

func stringKey(assign func(*Layer, string)) setter {
	return func(l *Layer, raw any) error {
		switch v := raw.(type) {
		case string:
			assign(l, strings.TrimSpace(v))
			return nil
		default:
			return fmt.Errorf("expected a string, got %T", raw)
		}
	}
}

func boolKey(assign func(*Layer, bool)) setter {
	return func(l *Layer, raw any) error {
		switch v := raw.(type) {
		case bool:
			assign(l, v)
			return nil
		case string:
			b, err := ParseBool(v)
			if err != nil {
				return err
			}
			assign(l, b)
			return nil
		default:
			return fmt.Errorf("expected a boolean, got %T", raw)
		}
	}
}

func intKey(assign func(*Layer, int)) setter {
	return func(l *Layer, raw any) error {
		switch v := raw.(type) {
		case int:
			assign(l, v)
		case int64:
			assign(l, int(v))
		case float64:
			if v != math.Trunc(v) {
				return fmt.Errorf("expected an integer, got %v", v)
			}
			assign(l, int(v))
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			assign(l, n)
		default:
			return fmt.Errorf("expected an integer, got %T", raw)
		}
		return nil
	}
}

func floatKey(assign func(*Layer, float64)) setter {
	return func(l *Layer, raw any) error {
		switch v := raw.(type) {
		case float64:
			assign(l, v)
		case int:
			assign(l, float64(v))
		case int64:
			assign(l, float64(v))
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("expected a number, got %q", v)
			}
			assign(l, f)
		default:
			return fmt.Errorf("expected a number, got %T", raw)
		}
		return nil
	}
}

func listKey(assign func(*Layer, []string)) setter {
	return func(l *Layer, raw any) error {
		switch v := raw.(type) {
		case string:
			assign(l, SplitList(v))
		case []string:
			assign(l, v)
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected a list of strings, got element %T", item)
				}
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			assign(l, out)
		default:
			return fmt.Errorf("expected a list, got %T", raw)
		}
		return nil
	}
}

// ParseBool accepts 1/true/yes/on/y/t and 0/false/no/off/n/f in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "y", "t":
		return true, nil
	case "0", "false", "no", "off", "n", "f":
		return false, nil
	default:
		return false, fmt.Errorf("expected a boolean, got %q", s)
	}
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// apply sets key on l, wrapping conversion failures in ErrInvalidValue.
func apply(l *Layer, key string, raw any) error {
	set, ok := keys[key]
	if !ok {
		return nil
	}
	if err := set(l, raw); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidValue, key, err)
	}
	return nil
}
