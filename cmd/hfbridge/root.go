package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhuss/hfbridge/pkg/config"
	"github.com/rhuss/hfbridge/pkg/debug"
)

// cfgFile is the --config flag. Empty means discovery (HFBRIDGE_CONFIG,
// ./hfbridge.yaml, /etc/hfbridge/config.yaml).
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hfbridge",
	Short: "hfbridge - OpenAI-compatible bridge to Hugging Face Inference Endpoints",
	Long: `hfbridge connects OpenAI-style chat clients to Hugging Face Inference
Endpoints running Text Generation Inference (TGI).

It provides:
  - chat: unary and streaming generation against the endpoint
  - proxy: a local OpenAI-compatible proxy that redirects chat completion
    requests to the endpoint while the configuration is complete
  - validate: configuration checks before any request is made`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}

// loadConfig loads the layered configuration and applies its logging
// settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	debug.Init(cfg.Log.Debug, cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}
