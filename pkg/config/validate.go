package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rhuss/hfbridge/pkg/tokens"
)

// Validate checks the configuration for valid values. Missing endpoint
// credentials are not an error here: the interceptor stays inactive and
// the chat command reports them before any request is made.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// endpoint.url must be an absolute http(s) URL if set.
	if c.Endpoint.URL != "" && !isHTTPURL(c.Endpoint.URL) {
		errs = append(errs, fmt.Errorf("endpoint.url must be an absolute http(s) URL, got %q", c.Endpoint.URL))
	}

	if c.Endpoint.Timeout < 0 {
		errs = append(errs, fmt.Errorf("endpoint.timeout must be >= 0, got %s", c.Endpoint.Timeout))
	}

	if c.Generation.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("generation.max_tokens must be > 0, got %d", c.Generation.MaxTokens))
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, fmt.Errorf("generation.temperature must be between 0 and 2, got %v", c.Generation.Temperature))
	}

	// tokens.estimator must be a known value.
	switch strings.ToLower(c.Tokens.Estimator) {
	case tokens.NameChars, tokens.NameTiktoken, "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("tokens.estimator must be %q or %q, got %q", tokens.NameChars, tokens.NameTiktoken, c.Tokens.Estimator))
	}

	if c.Interceptor.Upstream != "" && !isHTTPURL(c.Interceptor.Upstream) {
		errs = append(errs, fmt.Errorf("interceptor.upstream must be an absolute http(s) URL, got %q", c.Interceptor.Upstream))
	}
	for i, p := range c.Interceptor.Paths {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("interceptor.paths[%d] must start with \"/\", got %q", i, p))
		}
	}

	// log.format must be a known value.
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
