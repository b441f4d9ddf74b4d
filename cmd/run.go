package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pranavj/mentis/internal/app"
	"github.com/pranavj/mentis/internal/config"
	"github.com/pranavj/mentis/internal/history"
	"github.com/pranavj/mentis/internal/llm"
	"github.com/pranavj/mentis/internal/store"
	"github.com/pranavj/mentis/internal/studyguide"
)

// loadConfig resolves the app configuration: --config flag, else the
// default XDG location, with MENTIS_* env overrides applied on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	deps := app.Deps{}

	st, err := store.Open(dbPath)
	if err != nil {
		// The app still works without persistence; history just won't
		// outlive the process.
		fmt.Fprintln(os.Stderr, "Could not open database:", err)
		fmt.Fprintln(os.Stderr, "Continuing without persistent history.")
		deps.History = history.New(nil)
	} else {
		defer st.Close()
		deps.History = history.New(st.Guides())
		deps.Results = st.QuizResults()
	}

	// The provider is built on first use so a missing API key shows up
	// in the UI when content is requested, not as a startup failure.
	llmCfg := resolveLLMConfig(cfg)
	var events store.LLMEventRepo
	if st != nil {
		events = st.LLMEvents()
	}
	deps.Content = studyguide.NewService(func(ctx context.Context) (llm.Provider, error) {
		return llm.NewProviderFromConfig(ctx, llmCfg, events)
	}, studyguide.DefaultConfig())

	return app.Run(deps)
}

// resolveLLMConfig falls back to vendor key discovery when the configured
// provider has no key, so `GEMINI_API_KEY=... mentis` just works.
func resolveLLMConfig(cfg config.Config) llm.Config {
	if cfg.LLM.Validate() == nil {
		return cfg.LLM
	}
	if discovered, ok := llm.DiscoverConfig(); ok {
		return discovered
	}
	return cfg.LLM
}
