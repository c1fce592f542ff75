package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/slideai/internal/config"
	"github.com/ziadkadry99/slideai/internal/db"
	"github.com/ziadkadry99/slideai/internal/history"
	"github.com/ziadkadry99/slideai/internal/llm"
	"github.com/ziadkadry99/slideai/internal/session"
	"github.com/ziadkadry99/slideai/internal/upload"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `slideai init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createProviderFromConfig creates the completion provider described by cfg.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(llm.Options{
		Type:              string(cfg.Provider),
		URL:               cfg.Endpoint.URL,
		APIKey:            cfg.Endpoint.APIKey,
		Model:             cfg.Models.Slides,
		Timeout:           cfg.Endpoint.Timeout,
		RequestsPerMinute: cfg.Endpoint.RequestsPerMinute,
	})
}

// openHistory opens the generation history under the configured data
// directory. The returned close function is always safe to call.
func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	if err := os.MkdirAll(cfg.Server.DataDir, 0o755); err != nil {
		return nil, func() {}, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.OpenDir(cfg.Server.DataDir)
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening database: %w", err)
	}
	return history.NewStore(database), func() { database.Close() }, nil
}

// newGenerator builds the shared generator. History is best effort: when
// the database cannot be opened generation still works, unrecorded.
func newGenerator(cfg *config.Config) (*session.Generator, func(), error) {
	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating completion provider: %w", err)
	}

	var recorder session.Recorder
	store, closeDB, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: generation history disabled: %v\n", err)
	} else {
		recorder = store
	}

	return session.NewGenerator(provider, session.SettingsFromConfig(cfg), recorder), closeDB, nil
}

// uploadFilter builds the upload filter from cfg.
func uploadFilter(cfg *config.Config) upload.Filter {
	return upload.Filter{Accept: cfg.Upload.Accept, MaxBytes: cfg.Upload.MaxBytes}
}
