package huggingface

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/provider/openaicompat"
	"github.com/rhuss/hfbridge/pkg/tokens"
)

// DefaultModelID is sent as the model name when none is configured. TGI
// serves a single model and accepts any name.
const DefaultModelID = "tgi"

// Config holds configuration for the Hugging Face provider adapter.
type Config struct {
	// BaseURL is the endpoint URL (e.g., "https://xyz.endpoints.huggingface.cloud").
	BaseURL string

	// APIKey is the Hugging Face access token sent as a bearer token.
	APIKey string

	// ModelID is the model name placed in requests. Defaults to "tgi".
	ModelID string

	// Timeout for unary HTTP requests. Defaults to 120s.
	Timeout time.Duration

	// Transport performs the HTTP exchanges. Nil uses http.DefaultTransport.
	Transport http.RoundTripper

	// Estimator is used for token counts the endpoint does not report.
	// Defaults to tokens.Chars.
	Estimator tokens.Estimator

	// Defaults fills generation options the caller leaves unset.
	// A zero value selects openaicompat.DefaultDefaults().
	Defaults openaicompat.Defaults
}

// Validate reports a configuration error for a missing credential or
// endpoint. It performs no I/O.
func (c Config) Validate() *api.APIError {
	if c.APIKey == "" {
		return api.NewConfigurationError("api_key", "API key is required")
	}
	if c.BaseURL == "" {
		return api.NewConfigurationError("endpoint_url", "endpoint URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return api.NewConfigurationError("endpoint_url", "endpoint URL must be an absolute http(s) URL")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.ModelID == "" {
		c.ModelID = DefaultModelID
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Estimator == nil {
		c.Estimator = tokens.Chars{}
	}
	if c.Defaults == (openaicompat.Defaults{}) {
		c.Defaults = openaicompat.DefaultDefaults()
	}
	return c
}
