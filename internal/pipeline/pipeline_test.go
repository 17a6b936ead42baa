package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/internal/logging"
	"github.com/pagewright/pagewright/internal/state"
	"github.com/pagewright/pagewright/internal/storage"
	"github.com/pagewright/pagewright/internal/types"
)

func testGrid() types.GridConfig {
	return types.GridConfig{Enabled: true, Unit: 8}
}

func validState() types.DesignState {
	return types.DesignState{
		Config: types.DocumentConfig{Background: "#ffffff", ContentWidth: 960, MaxSurfaces: 50},
		Surfaces: []types.Surface{
			{ID: "s1", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true},
		},
		Elements: []types.Element{
			{ID: "e1", SurfaceID: "s1", Kind: "title", Text: "Welcome", Opacity: 1},
			{ID: "e2", SurfaceID: "s1", Kind: "button", Text: "Start", Opacity: 1},
		},
	}
}

func purePipeline() *Pipeline {
	return New(nil, nil, testGrid(), types.DefaultCodeOptions(), logging.NewNop())
}

func TestCompileProducesMarkupAndStylesheet(t *testing.T) {
	result := purePipeline().Compile(validState())

	require.True(t, result.OK())
	require.Len(t, result.Files, 2)
	assert.Equal(t, "home.html", result.Files[0].Path)
	assert.Equal(t, "styles.css", result.Files[1].Path)
	assert.Empty(t, result.Warnings)
}

func TestCompileStopsOnValidationFailure(t *testing.T) {
	s := validState()
	s.Surfaces[0].Name = ""

	result := purePipeline().Compile(s)

	assert.False(t, result.OK())
	assert.Empty(t, result.Files, "no artifacts on validation failure")
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "empty name")
}

func TestCompileWarnsWithoutBlocking(t *testing.T) {
	s := validState()
	s.Elements = append(s.Elements,
		types.Element{ID: "e3", SurfaceID: "s1", Kind: "sparkle", Opacity: 1},
		types.Element{ID: "e4", Kind: "button", Opacity: 1},
		types.Element{ID: "e5", SurfaceID: "gone", Kind: "button", Opacity: 1},
	)

	result := purePipeline().Compile(s)

	require.True(t, result.OK())
	require.Len(t, result.Warnings, 3)
	assert.Contains(t, result.Warnings[0].Message, `unknown kind "sparkle"`)
	assert.Contains(t, result.Warnings[1].Message, "detached")
	assert.Contains(t, result.Warnings[2].Message, `missing surface "gone"`)
}

func TestCompileIsDeterministic(t *testing.T) {
	p := purePipeline()
	first := p.Compile(validState())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Files, p.Compile(validState()).Files)
	}
}

func storedPipeline(t *testing.T) (*Pipeline, storage.EventStore, storage.ArtifactStore) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "pagewright.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events := storage.NewEventStore(db)
	artifacts := storage.NewArtifactStore(db)
	return New(events, artifacts, testGrid(), types.DefaultCodeOptions(), logging.NewNop()), events, artifacts
}

func seedDocument(t *testing.T, events storage.EventStore, documentID string) {
	t.Helper()
	ctx := context.Background()
	for _, ev := range []state.Event{
		state.NewEvent(state.SurfaceAdded{Surface: types.Surface{
			ID: "s1", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true,
		}}),
		state.NewEvent(state.ElementAdded{Element: types.Element{
			ID: "e1", SurfaceID: "s1", Kind: "title", Text: "Welcome", Opacity: 1,
		}}),
	} {
		_, err := events.AppendEvent(ctx, documentID, ev)
		require.NoError(t, err)
	}
}

func TestCompileAndPersistStoresArtifacts(t *testing.T) {
	ctx := context.Background()
	p, events, artifacts := storedPipeline(t)
	seedDocument(t, events, "doc-1")

	result, err := p.CompileAndPersist(ctx, "doc-1")
	require.NoError(t, err)
	require.True(t, result.OK())

	stored, err := artifacts.LoadArtifacts(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, stored, len(result.Files))

	at, err := artifacts.PublishedAt(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, at.IsZero())
}

func TestCompileAndPersistKeepsPreviousArtifactsOnFailure(t *testing.T) {
	ctx := context.Background()
	p, events, artifacts := storedPipeline(t)
	seedDocument(t, events, "doc-1")

	_, err := p.CompileAndPersist(ctx, "doc-1")
	require.NoError(t, err)
	good, err := artifacts.LoadArtifacts(ctx, "doc-1")
	require.NoError(t, err)
	require.NotEmpty(t, good)

	// break the document: a second publish target reusing the same name
	// collides on slug
	_, err = events.AppendEvent(ctx, "doc-1", state.NewEvent(state.SurfaceAdded{
		Surface: types.Surface{ID: "s2", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true},
	}))
	require.NoError(t, err)

	result, err := p.CompileAndPersist(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, result.OK())

	stored, err := artifacts.LoadArtifacts(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, good, stored, "failed run must not touch stored artifacts")
}

func TestCompileDocumentEmptyLog(t *testing.T) {
	ctx := context.Background()
	p, _, _ := storedPipeline(t)

	result, err := p.CompileDocument(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, result.OK(), "an empty document has no pages and fails validation")
}
