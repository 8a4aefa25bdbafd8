package main

import (
	"context"
	"strings"

	"github.com/dotsetgreg/minagent/pkg/config"
	"github.com/spf13/cobra"
)

func executeCLI(ctx context.Context) error {
	return buildRootCommand().ExecuteContext(ctx)
}

func buildRootCommand() *cobra.Command {
	var (
		model  string
		apiKey string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Run the minimal AI agent",
		Long: strings.TrimSpace(`minagent is a line-based chat client for an OpenAI-compatible completion API.

Each turn is sent together with the most recent lines of a plain-text memory log
(agent_memory.txt, or AGENT_MEMORY_FILE), and the exchange is appended to that log.
Type 'exit' or 'quit' to stop.`),
		Example: strings.Join([]string{
			"  OPENAI_API_KEY=sk-... minagent",
			"  minagent --model gpt-4o --api-key sk-...",
		}, "\n"),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := config.Overrides{Model: model, APIKey: apiKey}
			return runAgent(cmd.Context(), overrides, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().StringVar(&model, "model", config.DefaultModel, "LLM model to use")
	root.Flags().StringVar(&apiKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env)")

	return root
}
