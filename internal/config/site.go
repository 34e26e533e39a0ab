package config

import "maps"

// SiteConfig holds per-host fetch settings from the config file.
//
//	[rookeen.sites."example.com"]
//	cookie = "session=abc"
//	user_agent = "research-bot/1.0"
//	headers = { "Accept-Language" = "de" }
//
// The "*" host applies to every site unless overridden.
type SiteConfig struct {
	// Cookie is sent as the Cookie header.
	Cookie string `yaml:"cookie,omitempty" toml:"cookie,omitempty"`

	// UserAgent overrides the global user agent for this host.
	UserAgent string `yaml:"user_agent,omitempty" toml:"user_agent,omitempty"`

	// Headers are extra HTTP headers for requests to this host.
	Headers map[string]string `yaml:"headers,omitempty" toml:"headers,omitempty"`
}

// mergeSite overlays site on defaults.
func mergeSite(defaults, site SiteConfig) SiteConfig {
	result := defaults
	result.Headers = maps.Clone(defaults.Headers)

	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if site.UserAgent != "" {
		result.UserAgent = site.UserAgent
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(site.Headers))
		}
		maps.Copy(result.Headers, site.Headers)
	}
	return result
}
