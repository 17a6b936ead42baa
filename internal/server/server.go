// Package server hosts the live preview: it serves the latest compiled
// artifacts for one document, recompiles when the event log changes on disk,
// and pushes reload notifications to connected browsers.
//
// A failed compilation never blanks the preview. The last known good
// artifacts stay up, with the current errors injected as a banner.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	pwerrors "github.com/pagewright/pagewright/internal/errors"
	"github.com/pagewright/pagewright/internal/logging"
	"github.com/pagewright/pagewright/internal/pipeline"
	"github.com/pagewright/pagewright/internal/types"
)

// reloadScript is injected into every served HTML document. It reconnects
// with backoff so a server restart does not strand open tabs.
const reloadScript = `<script>
(function () {
  var delay = 250;
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/__pagewright/ws");
    ws.onmessage = function (msg) { if (msg.data === "reload") location.reload(); };
    ws.onclose = function () {
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, 5000);
    };
    ws.onopen = function () { delay = 250; };
  }
  connect();
})();
</script>`

// Options configures a preview server.
type Options struct {
	Host       string
	Port       int
	DocumentID string
	// DBPath is the SQLite file to watch for changes; empty disables the
	// watcher (tests drive rebuilds directly)
	DBPath string
	// Debounce groups rapid log writes into one rebuild
	Debounce time.Duration
}

// PreviewServer serves compiled artifacts over HTTP with live reload.
type PreviewServer struct {
	opts     Options
	pipeline *pipeline.Pipeline
	hub      *hub
	logger   logging.Logger

	httpServer *http.Server
	watcher    *dbWatcher
	cancel     context.CancelFunc

	mutex    sync.RWMutex
	files    map[string]types.File
	problems *pwerrors.Collector
}

// New creates a preview server over the given pipeline.
func New(opts Options, p *pipeline.Pipeline, logger logging.Logger) *PreviewServer {
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PreviewServer{
		opts:     opts,
		pipeline: p,
		hub:      newHub(logger),
		logger:   logger.WithComponent("server"),
		files:    make(map[string]types.File),
		problems: pwerrors.NewCollector(),
	}
}

// Start compiles once, begins watching the database, and serves until the
// context is cancelled or Shutdown is called.
func (s *PreviewServer) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.Rebuild(ctx)

	if s.opts.DBPath != "" {
		watcher, err := newDBWatcher(s.opts.DBPath, s.opts.Debounce, func() {
			s.Rebuild(context.Background())
		}, s.logger)
		if err != nil {
			return fmt.Errorf("watch database: %w", err)
		}
		s.watcher = watcher
		go watcher.run(ctx)
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info(ctx, "preview server listening",
		"addr", s.httpServer.Addr, "document", s.opts.DocumentID)

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the watcher, disconnects clients, and drains the listener.
func (s *PreviewServer) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.watcher != nil {
		s.watcher.close()
	}
	s.hub.closeAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Handler returns the route table; exposed so tests can drive the server
// through httptest without binding a port.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/__pagewright/ws", s.hub.handle)
	mux.HandleFunc("/", s.handleFile)
	return mux
}

// Rebuild recompiles the document and swaps in the result. On failure the
// previous artifacts are kept and only the problem list is replaced.
// Connected clients are told to reload either way.
func (s *PreviewServer) Rebuild(ctx context.Context) {
	result, err := s.pipeline.CompileDocument(ctx, s.opts.DocumentID)
	if err != nil {
		s.logger.Error(ctx, err, "rebuild failed", "document", s.opts.DocumentID)
		return
	}

	s.mutex.Lock()
	s.problems = pwerrors.NewCollector()
	for _, e := range result.Errors {
		s.problems.Add(e)
	}
	for _, w := range result.Warnings {
		s.problems.Add(w)
	}
	if result.OK() {
		files := make(map[string]types.File, len(result.Files))
		for _, f := range result.Files {
			files[f.Path] = f
		}
		s.files = files
	}
	s.mutex.Unlock()

	s.logger.Debug(ctx, "rebuilt document",
		"document", s.opts.DocumentID,
		"ok", result.OK(),
		"clients", s.hub.count())
	s.hub.broadcast(ctx, "reload")
}

func (s *PreviewServer) handleFile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if path == "" {
		path = s.indexPath()
		if path == "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "<!DOCTYPE html><html><body>"+s.problems.Banner()+
				"<p>No pages compiled yet.</p>"+reloadScript+"</body></html>")
			return
		}
	}

	file, ok := s.files[path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	contentType := file.MIMEType
	if contentType == "text/html" {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)

	content := file.Content
	if file.MIMEType == "text/html" {
		content = injectPreviewChrome(content, s.problems.Banner())
	}
	fmt.Fprint(w, content)
}

// indexPath picks the document's landing page: index.html when present,
// otherwise the alphabetically first page. Caller holds the read lock.
func (s *PreviewServer) indexPath() string {
	if _, ok := s.files["index.html"]; ok {
		return "index.html"
	}
	var pages []string
	for path, f := range s.files {
		if f.MIMEType == "text/html" {
			pages = append(pages, path)
		}
	}
	if len(pages) == 0 {
		return ""
	}
	sort.Strings(pages)
	return pages[0]
}

// injectPreviewChrome splices the reload script and the problem banner into
// a generated document without regenerating it.
func injectPreviewChrome(content, banner string) string {
	if banner != "" {
		if i := strings.Index(content, "<body>"); i >= 0 {
			content = content[:i+len("<body>")] + banner + content[i+len("<body>"):]
		} else {
			content = banner + content
		}
	}
	if i := strings.LastIndex(content, "</body>"); i >= 0 {
		return content[:i] + reloadScript + content[i:]
	}
	return content + reloadScript
}
