package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/internal/logging"
	"github.com/pagewright/pagewright/internal/pipeline"
	"github.com/pagewright/pagewright/internal/state"
	"github.com/pagewright/pagewright/internal/storage"
	"github.com/pagewright/pagewright/internal/types"
)

func testServer(t *testing.T) (*PreviewServer, storage.EventStore) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "pagewright.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events := storage.NewEventStore(db)
	p := pipeline.New(events, storage.NewArtifactStore(db),
		types.GridConfig{Enabled: true, Unit: 8}, types.DefaultCodeOptions(), logging.NewNop())

	srv := New(Options{DocumentID: "doc-1"}, p, logging.NewNop())
	return srv, events
}

func appendEvents(t *testing.T, events storage.EventStore, payloads ...state.Payload) {
	t.Helper()
	for _, p := range payloads {
		_, err := events.AppendEvent(context.Background(), "doc-1", state.NewEvent(p))
		require.NoError(t, err)
	}
}

func seedValidDocument(t *testing.T, events storage.EventStore) {
	t.Helper()
	appendEvents(t, events,
		state.SurfaceAdded{Surface: types.Surface{
			ID: "s1", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true,
		}},
		state.ElementAdded{Element: types.Element{
			ID: "e1", SurfaceID: "s1", Kind: "title", Text: "Welcome", Opacity: 1,
		}},
	)
}

func get(t *testing.T, handler http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestServesCompiledPageWithReloadScript(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	srv.Rebuild(context.Background())

	code, body := get(t, srv.Handler(), "/home.html")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Welcome")
	assert.Contains(t, body, "__pagewright/ws", "reload script is injected")
	assert.True(t, strings.Index(body, "WebSocket") < strings.LastIndex(body, "</body>"))
}

func TestRootServesLandingPage(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	srv.Rebuild(context.Background())

	code, body := get(t, srv.Handler(), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Welcome")
}

func TestServesStylesheetWithoutInjection(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	srv.Rebuild(context.Background())

	code, body := get(t, srv.Handler(), "/styles.css")
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "<script>")
}

func TestUnknownPathIs404(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	srv.Rebuild(context.Background())

	code, _ := get(t, srv.Handler(), "/missing.html")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEmptyDocumentShowsProblems(t *testing.T) {
	srv, _ := testServer(t)
	srv.Rebuild(context.Background())

	code, body := get(t, srv.Handler(), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "compile problem")
	assert.Contains(t, body, "No pages compiled yet")
}

func TestFailedRebuildKeepsLastGoodOutput(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	srv.Rebuild(context.Background())

	// duplicate slug breaks validation
	appendEvents(t, events, state.SurfaceAdded{Surface: types.Surface{
		ID: "s2", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true,
	}})
	srv.Rebuild(context.Background())

	code, body := get(t, srv.Handler(), "/home.html")
	assert.Equal(t, http.StatusOK, code, "previous artifacts still served")
	assert.Contains(t, body, "Welcome")
	assert.Contains(t, body, "compile problem", "current errors surface as a banner")
	assert.Contains(t, body, "duplicates slug")
}

func TestRecoveredRebuildClearsBanner(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	appendEvents(t, events, state.SurfaceAdded{Surface: types.Surface{
		ID: "s2", Name: "Home", Width: 800, Height: 600, IsPublishTarget: true,
	}})
	srv.Rebuild(context.Background())

	appendEvents(t, events, state.SurfaceRemoved{ID: "s2"})
	srv.Rebuild(context.Background())

	_, body := get(t, srv.Handler(), "/home.html")
	assert.NotContains(t, body, "compile problem")
}

func TestWebSocketReceivesReload(t *testing.T) {
	srv, events := testServer(t)
	seedValidDocument(t, events)
	srv.Rebuild(context.Background())

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/__pagewright/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	// wait for the hub to register the connection before rebuilding
	require.Eventually(t, func() bool { return srv.hub.count() == 1 },
		2*time.Second, 10*time.Millisecond)

	srv.Rebuild(context.Background())

	kind, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, kind)
	assert.Equal(t, "reload", string(data))
}

func TestInjectPreviewChrome(t *testing.T) {
	out := injectPreviewChrome("<html><body><p>hi</p></body></html>", "<div>bad</div>")
	assert.True(t, strings.Index(out, "<div>bad</div>") < strings.Index(out, "<p>hi</p>"))
	assert.True(t, strings.Index(out, "<script>") < strings.Index(out, "</body>"))

	// content without a body tag still gets the script
	out = injectPreviewChrome("plain", "")
	assert.Contains(t, out, "<script>")
}
