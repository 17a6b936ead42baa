package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/internal/state"
	"github.com/pagewright/pagewright/internal/storage"
	"github.com/pagewright/pagewright/internal/types"
)

// setupWorkspace points the global config at a throwaway database and
// output directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("database.path", filepath.Join(dir, "pagewright.db"))
	viper.Set("output.dir", filepath.Join(dir, "dist"))
	return dir
}

func seedDocument(t *testing.T, dir string) {
	t.Helper()
	db, err := storage.Open(filepath.Join(dir, "pagewright.db"))
	require.NoError(t, err)
	defer db.Close()

	events := storage.NewEventStore(db)
	for _, p := range []state.Payload{
		state.SurfaceAdded{Surface: types.Surface{
			ID: "s1", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true,
		}},
		state.ElementAdded{Element: types.Element{
			ID: "e1", SurfaceID: "s1", Kind: "title", Text: "Welcome", Opacity: 1,
		}},
	} {
		_, err := events.AppendEvent(context.Background(), "doc-1", state.NewEvent(p))
		require.NoError(t, err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags clears flag state left behind by earlier executions; cobra
// commands are package globals and remember values across runs.
func resetFlags() {
	previewArchive = ""
	for _, c := range []*cobra.Command{previewCmd, publishCmd} {
		c.Flags().Visit(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func TestPreviewWritesArtifacts(t *testing.T) {
	dir := setupWorkspace(t)
	seedDocument(t, dir)

	out, err := execute(t, "preview", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Compiled 2 file(s)")

	html, err := os.ReadFile(filepath.Join(dir, "dist", "home.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Welcome")

	_, err = os.Stat(filepath.Join(dir, "dist", "styles.css"))
	assert.NoError(t, err)
}

func TestPreviewArchiveExport(t *testing.T) {
	dir := setupWorkspace(t)
	seedDocument(t, dir)

	archive := filepath.Join(dir, "site.zip")
	_, err := execute(t, "preview", "doc-1", "--archive", archive)
	require.NoError(t, err)

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"home.html", "styles.css"}, names)
}

func TestPreviewFailsOnInvalidDocument(t *testing.T) {
	setupWorkspace(t)

	_, err := execute(t, "preview", "empty-doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation failed")
}

func TestPublishPersistsAndWrites(t *testing.T) {
	dir := setupWorkspace(t)
	seedDocument(t, dir)

	out, err := execute(t, "publish", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Published 2 file(s)")

	db, err := storage.Open(filepath.Join(dir, "pagewright.db"))
	require.NoError(t, err)
	defer db.Close()

	artifacts := storage.NewArtifactStore(db)
	stored, err := artifacts.LoadArtifacts(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	at, err := artifacts.PublishedAt(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.False(t, at.IsZero())
}

func TestEventsAppendAndList(t *testing.T) {
	dir := setupWorkspace(t)

	payload := `[
		{"type": "surface-added", "payload": {"surface": {"id": "s1", "name": "Home", "width": 800, "height": 600, "isPublishTarget": true}}},
		{"type": "selection-changed", "payload": {"ids": ["s1"]}}
	]`
	file := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(file, []byte(payload), 0644))

	out, err := execute(t, "events", "append", "doc-1", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Appended 2 event(s)")

	out, err = execute(t, "events", "list", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, out, "surface-added")
	assert.Contains(t, out, "selection-changed")

	out, err = execute(t, "events", "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "doc-1")
}

func TestEventsAppendRejectsUnknownType(t *testing.T) {
	dir := setupWorkspace(t)

	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"type": "mystery", "payload": {}}`), 0644))

	_, err := execute(t, "events", "append", "doc-1", file)
	require.Error(t, err)
}

func TestDecodeEventsFillsEnvelope(t *testing.T) {
	events, err := decodeEvents([]byte(`{"type": "selection-changed", "payload": {"ids": []}}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPreviewInlineStyleMode(t *testing.T) {
	dir := setupWorkspace(t)
	seedDocument(t, dir)

	out, err := execute(t, "preview", "doc-1", "--style-mode", "inline")
	require.NoError(t, err)
	assert.Contains(t, out, "Compiled 1 file(s)", "inline mode emits no stylesheet")

	_, err = os.Stat(filepath.Join(dir, "dist", "styles.css"))
	assert.True(t, os.IsNotExist(err))
}

func TestPreviewRejectsBadStyleMode(t *testing.T) {
	setupWorkspace(t)

	_, err := execute(t, "preview", "doc-1", "--style-mode", "sass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of")
}

func TestVersionCommand(t *testing.T) {
	setupWorkspace(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pagewright")
	assert.Contains(t, out, "go:")
}
