package interceptor

// Config describes the redirect target. It is owned by the configuration
// source and read-only to the interceptor.
type Config struct {
	APIKey      string
	EndpointURL string
	ModelID     string
}

// Active reports whether both the API key and the endpoint URL are set.
func (c Config) Active() bool {
	return c.APIKey != "" && c.EndpointURL != ""
}

// ValidationResult is the outcome of Config.Validate.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Validate reports the missing fields of c. It has no side effects.
func (c Config) Validate() ValidationResult {
	var errs []string
	if c.APIKey == "" {
		errs = append(errs, "API key is required")
	}
	if c.EndpointURL == "" {
		errs = append(errs, "endpoint URL is required")
	}
	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
