// Package errors defines the compile error types shared by the pipeline and
// the preview server, plus a thread-safe collector for aggregating them
// across rebuilds.
package errors

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"time"
)

// Stage identifies where in the pipeline an error was raised.
type Stage string

const (
	StageReplay   Stage = "replay"
	StageLower    Stage = "lower"
	StageValidate Stage = "validate"
	StageOptimize Stage = "optimize"
	StageGenerate Stage = "generate"
	StagePersist  Stage = "persist"
)

// Severity represents how serious a compile error is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// CompileError is one problem encountered while compiling a document.
type CompileError struct {
	Document  string
	Page      string
	Stage     Stage
	Message   string
	Severity  Severity
	Timestamp time.Time
}

// Error implements the error interface.
func (ce *CompileError) Error() string {
	if ce.Page != "" {
		return fmt.Sprintf("%s: page %s: %s: %s", ce.Stage, ce.Page, ce.Severity, ce.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ce.Stage, ce.Severity, ce.Message)
}

// Collector aggregates compile errors across pipeline runs. Safe for
// concurrent use.
type Collector struct {
	errors []CompileError
	mutex  sync.RWMutex
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records an error, stamping it with the current time.
func (c *Collector) Add(err CompileError) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	err.Timestamp = time.Now()
	c.errors = append(c.errors, err)
}

// AddValidation records every validator message as an error at the
// validation stage.
func (c *Collector) AddValidation(document string, messages []string) {
	for _, msg := range messages {
		c.Add(CompileError{
			Document: document,
			Stage:    StageValidate,
			Message:  msg,
			Severity: SeverityError,
		})
	}
}

// Errors returns a copy of the collected errors.
func (c *Collector) Errors() []CompileError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	out := make([]CompileError, len(c.errors))
	copy(out, c.errors)
	return out
}

// HasErrors reports whether anything at error severity was collected.
func (c *Collector) HasErrors() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	for _, e := range c.errors {
		if e.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Clear drops all collected errors.
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = c.errors[:0]
}

// Banner renders the collected errors as an HTML fragment the preview
// server injects above the last known good output. Empty when clean.
func (c *Collector) Banner() string {
	errs := c.Errors()
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="pagewright-errors" style="background:#7f1d1d;color:#fecaca;` +
		`font-family:monospace;font-size:13px;padding:12px 16px">`)
	b.WriteString(fmt.Sprintf("<strong>%d compile problem(s)</strong><ul>", len(errs)))
	for _, e := range errs {
		b.WriteString("<li>" + html.EscapeString(e.Error()) + "</li>")
	}
	b.WriteString("</ul></div>")
	return b.String()
}
