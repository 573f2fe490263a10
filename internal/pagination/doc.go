// Package pagination provides the paginated list view-state machine used by
// bialog's purchase log screen.
//
// This package contains:
//   - Controller: page index, total page count, loading flag and current page items,
//     driven by correlated fetch Requests so out-of-order responses are discarded
//   - VisiblePageWindow: the bounded page selector (first/last shortcuts, ellipses)
//   - Params: CLI flag parsing and validation for --page and --sort
//   - Meta: page metadata for rendering and structured output
//
// The controller performs no I/O. Callers run the Fetcher for each Request it
// issues and report the outcome back through OnFetchResolved or OnFetchFailed.
package pagination
