// Package pipeline orchestrates the compilation stages: replay the event log
// into a design state, lower it to IR, validate, optimize, generate
// artifacts, and persist them.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pagewright/pagewright/internal/compiler"
	"github.com/pagewright/pagewright/internal/errors"
	"github.com/pagewright/pagewright/internal/generator"
	"github.com/pagewright/pagewright/internal/logging"
	"github.com/pagewright/pagewright/internal/optimizer"
	"github.com/pagewright/pagewright/internal/state"
	"github.com/pagewright/pagewright/internal/storage"
	"github.com/pagewright/pagewright/internal/types"
	"github.com/pagewright/pagewright/internal/validation"
)

// Result is the outcome of one compilation run.
type Result struct {
	// Files are the generated artifacts; empty when validation failed.
	Files []types.File
	// Errors are the blocking problems; non-empty means Files is empty.
	Errors []errors.CompileError
	// Warnings never block generation.
	Warnings []errors.CompileError
	// GeneratedAt is when the run finished. It lives here, never inside
	// file content, so artifacts stay byte-deterministic.
	GeneratedAt time.Time
	// Duration is the wall time of the run.
	Duration time.Duration
}

// OK reports whether the run produced artifacts.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Pipeline wires the compilation stages to the stores.
type Pipeline struct {
	events    storage.EventStore
	artifacts storage.ArtifactStore
	grid      types.GridConfig
	opts      types.CodeOptions
	logger    logging.Logger
}

// New creates a pipeline. Stores may be nil for callers that only use the
// pure Compile path.
func New(events storage.EventStore, artifacts storage.ArtifactStore, grid types.GridConfig, opts types.CodeOptions, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		events:    events,
		artifacts: artifacts,
		grid:      grid,
		opts:      opts,
		logger:    logger.WithComponent("pipeline"),
	}
}

// Compile runs the pure stages over an already-derived design state.
// Validation failures stop the run before any artifact is generated; the
// result then carries the errors and no files.
func (p *Pipeline) Compile(designState types.DesignState) *Result {
	start := time.Now()
	result := &Result{}

	result.Warnings = collectWarnings(designState)

	ir := compiler.Lower(designState, p.grid)

	if v := validation.Validate(ir); !v.Valid {
		for _, msg := range v.Errors {
			result.Errors = append(result.Errors, errors.CompileError{
				Stage:    errors.StageValidate,
				Message:  msg,
				Severity: errors.SeverityError,
			})
		}
		result.GeneratedAt = time.Now().UTC()
		result.Duration = time.Since(start)
		return result
	}

	ir = optimizer.Optimize(ir)
	result.Files = generator.Generate(ir, p.opts)
	result.GeneratedAt = time.Now().UTC()
	result.Duration = time.Since(start)
	return result
}

// CompileDocument replays a document's event log and compiles the resulting
// state. Nothing is persisted.
func (p *Pipeline) CompileDocument(ctx context.Context, documentID string) (*Result, error) {
	if p.events == nil {
		return nil, fmt.Errorf("compile document: no event store configured")
	}
	events, err := p.events.LoadEvents(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("compile document %s: %w", documentID, err)
	}
	designState := state.ApplyAll(state.NewState(), events)

	result := p.Compile(designState)
	p.logger.Debug(ctx, "compiled document",
		"document", documentID,
		"events", len(events),
		"files", len(result.Files),
		"errors", len(result.Errors),
		"duration", result.Duration.String())
	return result, nil
}

// CompileAndPersist compiles a document and, on success, stores its
// artifacts and records the publish time. A failed run persists nothing; the
// previously stored artifacts stay untouched.
func (p *Pipeline) CompileAndPersist(ctx context.Context, documentID string) (*Result, error) {
	result, err := p.CompileDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		p.logger.Warn(ctx, nil, "compilation failed, keeping previous artifacts",
			"document", documentID, "errors", len(result.Errors))
		return result, nil
	}

	if p.artifacts == nil {
		return nil, fmt.Errorf("persist document: no artifact store configured")
	}
	if err := p.artifacts.PersistArtifacts(ctx, documentID, result.Files); err != nil {
		return nil, fmt.Errorf("persist document %s: %w", documentID, err)
	}
	if err := p.artifacts.MarkPublished(ctx, documentID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("mark published %s: %w", documentID, err)
	}
	p.logger.Info(ctx, "published document", "document", documentID, "files", len(result.Files))
	return result, nil
}

// collectWarnings flags design problems that do not block compilation:
// elements with unmapped kinds and elements no surface owns.
func collectWarnings(designState types.DesignState) []errors.CompileError {
	var warnings []errors.CompileError
	for _, el := range designState.Elements {
		if !compiler.KnownKind(el.Kind) {
			warnings = append(warnings, errors.CompileError{
				Stage:    errors.StageLower,
				Message:  fmt.Sprintf("element %q has unknown kind %q, lowering to a container", el.ID, el.Kind),
				Severity: errors.SeverityWarning,
			})
		}
		if el.SurfaceID == "" {
			warnings = append(warnings, errors.CompileError{
				Stage:    errors.StageLower,
				Message:  fmt.Sprintf("element %q is detached from every surface and will not be compiled", el.ID),
				Severity: errors.SeverityWarning,
			})
			continue
		}
		if _, ok := designState.SurfaceByID(el.SurfaceID); !ok {
			warnings = append(warnings, errors.CompileError{
				Stage:    errors.StageLower,
				Message:  fmt.Sprintf("element %q references missing surface %q", el.ID, el.SurfaceID),
				Severity: errors.SeverityWarning,
			})
		}
	}
	return warnings
}
