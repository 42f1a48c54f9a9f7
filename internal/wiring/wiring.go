package wiring

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"vesselx/internal/adapters/editor"
	"vesselx/internal/adapters/extractor"
	"vesselx/internal/adapters/filesystem"
	"vesselx/internal/adapters/sqlite"
	"vesselx/internal/config"
	"vesselx/internal/logging"
)

// Env holds the adapters shared by every vesselx binary
type Env struct {
	Config    *config.Config
	Log       zerolog.Logger
	Store     *sqlite.Store
	Exporter  *filesystem.Exporter
	Extractor *extractor.ProcessExtractor
	Editor    *editor.Opener
}

// Overrides are command line values that win over the config file
type Overrides struct {
	DataDir   string
	LogLevel  string
	LogOutput io.Writer // stderr when nil
}

// Open loads the config at configPath, builds the logger and opens the session store
func Open(configPath string, o Overrides) (*Env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if o.DataDir != "" {
		cfg.Storage.DataDir = o.DataDir
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}

	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: o.LogOutput,
	})
	if err != nil {
		return nil, err
	}

	store := sqlite.NewStore(log)
	if err := store.Open(cfg.DatabasePath()); err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &Env{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Exporter: filesystem.NewExporter(cfg.ExportPath(), log),
		Extractor: extractor.NewProcessExtractor(cfg.Extractor.Command,
			extractor.WithArgs(cfg.Extractor.Args...),
			extractor.WithTimeout(cfg.Extractor.Timeout),
			extractor.WithLogger(log),
		),
		Editor: editor.NewOpener(cfg.Editor),
	}, nil
}

// Context returns ctx carrying the environment's logger
func (e *Env) Context(ctx context.Context) context.Context {
	return e.Log.WithContext(ctx)
}

// Close releases the session store
func (e *Env) Close() error {
	return e.Store.Close()
}
