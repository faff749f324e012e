package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Piyush2510verma/Language/internal/config"
	"github.com/Piyush2510verma/Language/internal/llm"
	"github.com/Piyush2510verma/Language/internal/logging"
	"github.com/Piyush2510verma/Language/internal/mistakes"
	"github.com/Piyush2510verma/Language/internal/screens"
	"github.com/Piyush2510verma/Language/internal/session"
	"github.com/Piyush2510verma/Language/internal/store"
	"github.com/Piyush2510verma/Language/internal/tutor"
)

// services holds what a conversation command runs on. Close releases the
// store and the log file.
type services struct {
	deps   *screens.Deps
	logger *slog.Logger
	store  *store.Store
	logs   io.Closer
}

func (s *services) Close() error {
	return errors.Join(s.store.Close(), s.logs.Close())
}

// setupOptions controls how setup reacts to a missing LLM provider.
type setupOptions struct {
	// logToFile sends logs to a file next to the database when no log file
	// is configured. The TUI owns the terminal, so stderr is not an option.
	logToFile bool

	// requireProvider makes a missing or broken provider fatal. Otherwise
	// the tutor is left nil and only the mistake views work.
	requireProvider bool
}

// setup loads configuration, the prompt template and the store, and builds
// the tutor on top of the configured provider.
func setup(cmd *cobra.Command, opts setupOptions) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logCfg := cfg.Log
	if opts.logToFile && logCfg.File == "" {
		logCfg.File = filepath.Join(filepath.Dir(dbPath), "lingo.log")
	}
	logger, logs := logging.New(logCfg)

	promptPath := cfg.Prompt.Path
	if p, _ := cmd.Flags().GetString("prompt"); p != "" {
		promptPath = p
	}
	prompt, err := config.LoadPrompt(promptPath)
	if err != nil {
		logs.Close()
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	svc := &services{
		deps: &screens.Deps{
			Session:  session.New(),
			Mistakes: st.MistakeRepo(),
			Notices:  &mistakes.Recorder{Next: mistakes.LogReporter{Logger: logger}},
		},
		logger: logger,
		store:  st,
		logs:   logs,
	}
	logger.Info("starting", "db", dbPath, "prompt", promptPath, "session", svc.deps.Session.ID)

	llmCfg := cfg.LLMConfig()
	provider, err := newProvider(cmd, llmCfg, st.EventRepo(), logger)
	if err != nil {
		if opts.requireProvider {
			svc.Close()
			return nil, err
		}
		logger.Warn("LLM provider not configured; conversations are unavailable", "error", err)
		return svc, nil
	}

	classifier := mistakes.NewClassifier(provider, st.MistakeRepo(), prompt.SystemRole,
		mistakes.WithReporter(svc.deps.Notices),
		mistakes.WithTimeout(cfg.LLM.Timeout))
	svc.deps.Tutor = tutor.NewGenerator(provider, classifier, prompt.SystemRole, cfg.LLM.Timeout)
	logger.Info("tutor ready", "provider", llmCfg.Provider)

	return svc, nil
}

func newProvider(cmd *cobra.Command, cfg llm.Config, events store.EventRepo, logger *slog.Logger) (llm.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	provider, err := llm.NewProvider(cmd.Context(), cfg, events, logger)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	return provider, nil
}
