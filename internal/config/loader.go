package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/rookeen/internal/apperr"
)

// Config file names searched in the working directory.
const (
	DefaultConfigFile = "rookeen.toml"
	HiddenConfigFile  = ".rookeen.toml"
)

// namespace is the optional table that holds rookeen keys.
const namespace = "rookeen"

// FindConfigFile returns the config file to read.
// An explicit path must exist. Otherwise the working directory
// (rookeen.toml, .rookeen.toml) and then the XDG config directory
// (rookeen/config.toml, rookeen/config.yaml) are searched.
// It returns "" when no file is found.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", apperr.Wrap(apperr.Config, fmt.Errorf("%w: %s", ErrConfigNotFound, explicit), "")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		for _, name := range []string{DefaultConfigFile, HiddenConfigFile} {
			candidate := filepath.Join(cwd, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	for _, rel := range []string{"config.toml", "config.yaml"} {
		if path, err := xdg.SearchConfigFile(filepath.Join(AppName, rel)); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadFileLayer reads a TOML or YAML config file into a Layer.
// YAML is chosen by the .yaml/.yml extension, TOML otherwise.
// Keys may sit at the top level or under a [rookeen] table; unknown
// keys are ignored.
func LoadFileLayer(path string) (Layer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Layer{}, apperr.Wrap(apperr.Config, fmt.Errorf("%w: %s", ErrConfigNotFound, path), "")
		}
		return Layer{}, apperr.Wrap(apperr.Config, err, "failed to read configuration file")
	}

	tree, err := decodeTree(path, data)
	if err != nil {
		return Layer{}, apperr.Wrap(apperr.Config, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err), "")
	}
	return layerFromTree(tree)
}

// decodeTree decodes the file into a generic map.
func decodeTree(path string, data []byte) (map[string]any, error) {
	tree := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// layerFromTree converts a decoded file into a Layer.
func layerFromTree(tree map[string]any) (Layer, error) {
	if ns, ok := tree[namespace].(map[string]any); ok {
		tree = ns
	}

	layer := Layer{Name: "file"}
	for key, raw := range tree {
		if key == "sites" {
			sites, err := decodeSites(raw)
			if err != nil {
				return Layer{}, apperr.Wrap(apperr.Config, err, "")
			}
			layer.Sites = sites
			continue
		}
		if err := apply(&layer, key, raw); err != nil {
			return Layer{}, apperr.Wrap(apperr.Config, err, "")
		}
	}
	return layer, nil
}

// decodeSites converts the sites table into SiteConfigs keyed by lower-cased host.
func decodeSites(raw any) (map[string]SiteConfig, error) {
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: sites: expected a table, got %T", ErrInvalidValue, raw)
	}

	sites := make(map[string]SiteConfig, len(table))
	for host, entry := range table {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: sites.%s: expected a table, got %T", ErrInvalidValue, host, entry)
		}
		var site SiteConfig
		if v, ok := fields["cookie"].(string); ok {
			site.Cookie = v
		}
		if v, ok := fields["user_agent"].(string); ok {
			site.UserAgent = v
		}
		if headers, ok := fields["headers"].(map[string]any); ok {
			site.Headers = make(map[string]string, len(headers))
			for name, value := range headers {
				site.Headers[name] = fmt.Sprint(value)
			}
		}
		sites[strings.ToLower(host)] = site
	}
	return sites, nil
}
