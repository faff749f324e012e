package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Piyush2510verma/Language/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingo",
	Short: "Conversational language tutor",
	Long: `Lingo is a terminal language tutor. Pick a language you know and one you
are learning, chat in the target language, and Lingo corrects your mistakes
and keeps track of the ones you repeat.

The tutor needs an LLM API key. Set one of GEMINI_API_KEY, ANTHROPIC_API_KEY,
OPENAI_API_KEY or OPENROUTER_API_KEY (or the LINGO_ prefixed variants), either
in the environment or in a .env file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGO_DB env var)")
	rootCmd.PersistentFlags().String("prompt", "", "Path to the prompt template (overrides LINGO_PROMPT env var)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database named by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
