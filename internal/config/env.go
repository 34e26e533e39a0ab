package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nao1215/rookeen/internal/apperr"
)

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads .env files into the process environment.
// Variables that are already set are left untouched and a missing file
// is not an error.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(apperr.Config, err, "failed to load .env file")
	}
	return nil
}

// EnvLayer reads ROOKEEN_* variables through lookup.
// OPENAI_API_KEY is honoured when ROOKEEN_OPENAI_API_KEY is unset.
func EnvLayer(lookup LookupFunc) (Layer, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	layer := Layer{Name: "env"}

	for key := range keys {
		value, ok := lookup(EnvPrefix + strings.ToUpper(key))
		if !ok {
			continue
		}
		if err := apply(&layer, key, value); err != nil {
			return Layer{}, apperr.Wrap(apperr.Config, err, "invalid environment variable "+EnvPrefix+strings.ToUpper(key))
		}
	}

	if layer.OpenAIAPIKey == nil {
		if key, ok := lookup("OPENAI_API_KEY"); ok && key != "" {
			layer.OpenAIAPIKey = &key
		}
	}

	return layer, nil
}
