package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pagewright/pagewright/internal/config"
	"github.com/pagewright/pagewright/internal/logging"
	"github.com/pagewright/pagewright/internal/pipeline"
	"github.com/pagewright/pagewright/internal/storage"
	"github.com/pagewright/pagewright/internal/types"
)

// runtime bundles everything a command needs: validated config, a logger,
// and the open database with its stores.
type runtime struct {
	cfg       *config.Config
	logger    logging.Logger
	db        *storage.DB
	events    storage.EventStore
	artifacts storage.ArtifactStore
}

// openRuntime loads configuration and opens the database. Callers must Close.
func openRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &runtime{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		events:    storage.NewEventStore(db),
		artifacts: storage.NewArtifactStore(db),
	}, nil
}

func (rt *runtime) Close() error {
	return rt.db.Close()
}

// newPipeline wires the compilation stages with the given generation options.
func (rt *runtime) newPipeline(opts types.CodeOptions) *pipeline.Pipeline {
	return pipeline.New(rt.events, rt.artifacts, rt.cfg.GridOptions(), opts, rt.logger)
}

// writeFiles materializes generated artifacts under the output directory.
func writeFiles(dir string, files []types.File) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Path)
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
	}
	return nil
}

// reportProblems prints compile errors and warnings to stderr.
func reportProblems(result *pipeline.Result) {
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.Error())
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "error:", e.Error())
	}
}
