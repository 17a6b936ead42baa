// Package internal contains the core implementation packages for Pagewright.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing all
// the core functionality for the pagewright CLI tool.
//
// # Package Organization
//
// The internal packages are organized by pipeline stage:
//
//   - types: value types shared across stages (design state, IR, options)
//   - grid: baseline-grid alignment math
//   - state: design events, the pure reducer, and undo/redo history
//   - compiler: lowering from design state to the document IR
//   - validation: structural IR checks that gate generation
//   - optimizer: IR cleanup passes
//   - generator: deterministic HTML and CSS emission
//   - pipeline: stage orchestration and the compile worker pool
//   - storage: SQLite-backed event log and artifact stores
//   - server: live preview with file watching and WebSocket reload
//   - config: configuration loading and validation
//   - logging, errors, version: shared ambient concerns
//
// Data flows one way: events fold into a DesignState, the compiler lowers
// it to a DocumentIR, and the generator emits files. Earlier stages never
// import later ones.
package internal
