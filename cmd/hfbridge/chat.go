package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rhuss/hfbridge/pkg/api"
	"github.com/rhuss/hfbridge/pkg/config"
	"github.com/rhuss/hfbridge/pkg/interceptor"
	"github.com/rhuss/hfbridge/pkg/provider"
	"github.com/rhuss/hfbridge/pkg/provider/huggingface"
	"github.com/rhuss/hfbridge/pkg/provider/openaicompat"
	"github.com/rhuss/hfbridge/pkg/tokens"
)

// chatOptions holds the chat command flags. Generation options are only
// forwarded when the flag was given; the adapter defaults apply otherwise.
type chatOptions struct {
	system string
	stream bool

	maxTokens   int
	temperature float64
	topP        float64
	stop        []string
	seed        int64

	setMaxTokens   bool
	setTemperature bool
	setTopP        bool
	setSeed        bool
}

var chatFlags chatOptions

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Send a chat prompt to the inference endpoint",
	Long: `Send a prompt to the configured Hugging Face Inference Endpoint and print
the generated text. Token usage is printed on stderr.

Examples:
  # Unary generation
  hfbridge chat "Summarize the plot of Hamlet"

  # Streaming with options
  hfbridge chat --stream --max-tokens 200 --temperature 0.2 "Write a haiku"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		chatFlags.setMaxTokens = flags.Changed("max-tokens")
		chatFlags.setTemperature = flags.Changed("temperature")
		chatFlags.setTopP = flags.Changed("top-p")
		chatFlags.setSeed = flags.Changed("seed")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runChat(ctx, cfg, chatFlags, strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatFlags.system, "system", "", "system prompt")
	chatCmd.Flags().BoolVar(&chatFlags.stream, "stream", false, "stream the response incrementally")
	chatCmd.Flags().IntVar(&chatFlags.maxTokens, "max-tokens", 0, "maximum output tokens (default from config)")
	chatCmd.Flags().Float64Var(&chatFlags.temperature, "temperature", 0, "sampling temperature (default from config)")
	chatCmd.Flags().Float64Var(&chatFlags.topP, "top-p", 0, "nucleus sampling probability")
	chatCmd.Flags().StringSliceVar(&chatFlags.stop, "stop", nil, "stop sequence (repeatable)")
	chatCmd.Flags().Int64Var(&chatFlags.seed, "seed", 0, "sampling seed")
}

// request builds the provider request for prompt.
func (o chatOptions) request(prompt string) *provider.Request {
	var msgs []api.Message
	if o.system != "" {
		msgs = append(msgs, api.TextMessage(api.RoleSystem, o.system))
	}
	msgs = append(msgs, api.TextMessage(api.RoleUser, prompt))

	opts := api.GenerationOptions{StopSequences: o.stop}
	if o.setMaxTokens {
		opts.MaxOutputTokens = &o.maxTokens
	}
	if o.setTemperature {
		opts.Temperature = &o.temperature
	}
	if o.setTopP {
		opts.TopP = &o.topP
	}
	if o.setSeed {
		opts.Seed = &o.seed
	}
	return &provider.Request{Messages: msgs, Options: opts}
}

// newProvider validates the endpoint settings and builds the adapter.
func newProvider(cfg *config.Config) (*huggingface.Provider, error) {
	result := interceptor.Config{
		APIKey:      cfg.Endpoint.APIKey,
		EndpointURL: cfg.Endpoint.URL,
		ModelID:     cfg.Endpoint.ModelID,
	}.Validate()
	if !result.IsValid {
		return nil, api.NewConfigurationError("endpoint", strings.Join(result.Errors, "; "))
	}

	encoding := cfg.Tokens.Encoding
	if encoding == "" {
		encoding = tokens.EncodingForModel(cfg.Endpoint.ModelID)
	}
	estimator, err := tokens.New(cfg.Tokens.Estimator, encoding)
	if err != nil {
		return nil, err
	}

	return huggingface.New(huggingface.Config{
		BaseURL:   cfg.Endpoint.URL,
		APIKey:    cfg.Endpoint.APIKey,
		ModelID:   cfg.Endpoint.ModelID,
		Timeout:   cfg.Endpoint.Timeout,
		Estimator: estimator,
		Defaults: openaicompat.Defaults{
			MaxTokens:   cfg.Generation.MaxTokens,
			Temperature: cfg.Generation.Temperature,
		},
	})
}

func runChat(ctx context.Context, cfg *config.Config, opts chatOptions, prompt string, stdout, stderr io.Writer) error {
	prov, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer prov.Close()

	req := opts.request(prompt)
	if !opts.stream {
		result, err := prov.Generate(ctx, req)
		if err != nil {
			slog.Error("generation failed", "error", err)
			return err
		}
		printWarnings(stderr, result.Warnings)
		fmt.Fprintln(stdout, result.Text)
		printUsage(stderr, result.Usage, result.FinishReason)
		return nil
	}

	events, err := prov.Stream(ctx, req)
	if err != nil {
		slog.Error("stream failed", "error", err)
		return err
	}
	for ev := range events {
		switch ev.Type {
		case api.EventStart:
			printWarnings(stderr, ev.Warnings)
		case api.EventDelta:
			fmt.Fprint(stdout, ev.Delta)
		case api.EventFinish:
			fmt.Fprintln(stdout)
			printUsage(stderr, *ev.Usage, ev.FinishReason)
			return nil
		case api.EventError:
			fmt.Fprintln(stdout)
			slog.Error("stream failed", "error", ev.Err)
			return ev.Err
		}
	}
	// Channel closed without a terminal event: the context was cancelled.
	fmt.Fprintln(stdout)
	return ctx.Err()
}

func printWarnings(w io.Writer, warnings []api.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning (%s): %s\n", warn.Type, warn.Message)
	}
}

func printUsage(w io.Writer, u api.Usage, reason api.FinishReason) {
	fmt.Fprintf(w, "[finish=%s input=%d output=%d total=%d]\n",
		reason, u.InputTokens, u.OutputTokens, u.TotalTokens)
}
