package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rhuss/hfbridge/pkg/config"
	"github.com/rhuss/hfbridge/pkg/interceptor"
)

// errInvalidConfig is returned when validation reports problems. The
// details have already been printed.
var errInvalidConfig = errors.New("configuration is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the endpoint configuration",
	Long: `Load the configuration and report whether the endpoint credentials are
complete. No request is sent to the endpoint.

Exits with a non-zero status when the configuration is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), cfg, config.FindConfigFile(cfgFile))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, cfg *config.Config, source string) error {
	if source == "" {
		source = "(defaults and environment)"
	}
	fmt.Fprintf(w, "Config: %s\n", source)
	fmt.Fprintf(w, "Endpoint: %s\n", orUnset(cfg.Endpoint.URL))
	fmt.Fprintf(w, "Model: %s\n", orUnset(cfg.Endpoint.ModelID))

	result := interceptor.Config{
		APIKey:      cfg.Endpoint.APIKey,
		EndpointURL: cfg.Endpoint.URL,
		ModelID:     cfg.Endpoint.ModelID,
	}.Validate()

	if !result.IsValid {
		fmt.Fprintln(w, "Status: invalid")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		return errInvalidConfig
	}

	fmt.Fprintln(w, "Status: valid")
	if !cfg.Interceptor.Enabled {
		fmt.Fprintln(w, "Interceptor: disabled")
	} else {
		fmt.Fprintf(w, "Interceptor: redirects %v from %s\n", cfg.Interceptor.Paths, cfg.Interceptor.Upstream)
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
