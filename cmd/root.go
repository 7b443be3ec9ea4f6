package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/examforge/internal/llm"
	"github.com/abhisek/examforge/internal/prompts"
	"github.com/abhisek/examforge/internal/testgen"
)

var rootCmd = &cobra.Command{
	Use:   "examforge",
	Short: "Exam question generator for textbook PDFs",
	Long: "Examforge turns a textbook PDF into NEET-style exam questions " +
		"(MCQ, assertion-reason, match-the-column) using an LLM, with " +
		"JSON and spreadsheet output.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// Missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger: console output on stderr, debug
// level with --verbose.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildService wires the configured provider into a generation service.
func buildService(ctx context.Context, log zerolog.Logger) (*testgen.Service, error) {
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), log)
	if err != nil {
		return nil, err
	}
	return testgen.NewService(provider, prompts.NewRegistry(), testgen.DefaultConfig(), log), nil
}
