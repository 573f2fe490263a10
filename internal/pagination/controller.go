package pagination

import (
	"context"
	"sync/atomic"
)

// FirstPage is the index of the first page. Pages are 1-based.
const FirstPage = 1

// controllerIDs hands out Controller ids for the lifetime of the process.
var controllerIDs atomic.Uint64

// Page is one page of results as returned by a data source.
type Page[T any] struct {
	Items     []T
	TotalPage int
}

// Fetcher loads a single page. Implementations must be idempotent and safe to
// call repeatedly for the same page.
type Fetcher[T any] func(ctx context.Context, page int) (Page[T], error)

// Request correlates an in-flight fetch with the page it was issued for.
// Seq increases monotonically per controller so results for the same page can
// be ordered as well. Owner is the id of the issuing controller, so a result
// addressed to a discarded view is never applied to its replacement.
type Request struct {
	Owner uint64
	Page  int
	Seq   uint64
}

// Controller owns the view state of a paginated list.
//
// It is not safe for concurrent use; it is meant to be owned by a single view
// and mutated from that view's event loop.
type Controller[T any] struct {
	id        uint64
	page      int
	totalPage int
	items     []T
	loading   bool

	windowSize int

	// seq is the sequence number of the most recently issued request.
	seq uint64
	// applied is the sequence number of the request whose result is displayed.
	applied uint64
}

// NewController creates a controller in its mount state: page 1 of 1, no items,
// loading. Call Start to obtain the initial Request. A windowSize below
// MinWindowSize falls back to DefaultWindowSize.
func NewController[T any](windowSize int) *Controller[T] {
	if windowSize < MinWindowSize {
		windowSize = DefaultWindowSize
	}
	return &Controller[T]{
		id:         controllerIDs.Add(1),
		page:       FirstPage,
		totalPage:  FirstPage,
		items:      []T{},
		loading:    true,
		windowSize: windowSize,
	}
}

// Start issues the fetch for the mount-time page.
func (c *Controller[T]) Start() Request {
	return c.issue()
}

// SetPage moves to page n when 1 <= n <= TotalPage and returns the Request for
// the new page. Out-of-range values are ignored and ok is false.
func (c *Controller[T]) SetPage(n int) (Request, bool) {
	if n < FirstPage || n > c.totalPage {
		return Request{}, false
	}
	c.page = n
	return c.issue(), true
}

// Next moves one page forward.
func (c *Controller[T]) Next() (Request, bool) {
	return c.SetPage(c.page + 1)
}

// Prev moves one page back.
func (c *Controller[T]) Prev() (Request, bool) {
	return c.SetPage(c.page - 1)
}

// First moves to page 1. It is a no-op when already there.
func (c *Controller[T]) First() (Request, bool) {
	if c.page == FirstPage {
		return Request{}, false
	}
	return c.SetPage(FirstPage)
}

// Last moves to the last known page. It is a no-op when already there.
func (c *Controller[T]) Last() (Request, bool) {
	if c.page == c.totalPage {
		return Request{}, false
	}
	return c.SetPage(c.totalPage)
}

// Reload issues a new fetch for the current page.
func (c *Controller[T]) Reload() Request {
	return c.issue()
}

func (c *Controller[T]) issue() Request {
	c.seq++
	return Request{Owner: c.id, Page: c.page, Seq: c.seq}
}

// OnFetchStart marks the request as outstanding.
func (c *Controller[T]) OnFetchStart(_ Request) {
	c.loading = true
}

// OnFetchResolved applies a successful fetch result and reports whether it was
// applied. Results for a page other than the current one, or older than the
// data already displayed, are dropped. Items and total page count are replaced
// together; a total below 1 is treated as 1.
func (c *Controller[T]) OnFetchResolved(req Request, items []T, totalPage int) bool {
	if c.isStale(req) {
		return false
	}
	if totalPage < FirstPage {
		totalPage = FirstPage
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.totalPage = totalPage
	c.applied = req.Seq
	if req.Seq == c.seq {
		c.loading = false
	}
	return true
}

// OnFetchFailed records a failed fetch. Items and total page count are left
// untouched. It returns true when the failure belongs to the latest request
// and must be surfaced to the user; stale failures are dropped.
func (c *Controller[T]) OnFetchFailed(req Request, _ error) bool {
	if c.isStale(req) || req.Seq != c.seq {
		return false
	}
	c.loading = false
	return true
}

func (c *Controller[T]) isStale(req Request) bool {
	return req.Owner != c.id || req.Page != c.page || req.Seq < c.applied || req.Seq > c.seq
}

// Reconcile moves to the last page when a resolved total page count shrank
// below the current page.
func (c *Controller[T]) Reconcile() (Request, bool) {
	if c.page <= c.totalPage {
		return Request{}, false
	}
	return c.SetPage(c.totalPage)
}

// IsCurrent reports whether req is the latest request issued.
func (c *Controller[T]) IsCurrent(req Request) bool {
	return req.Owner == c.id && req.Seq == c.seq && req.Page == c.page
}

// ID returns the controller's process-unique id, carried by its requests as
// Request.Owner.
func (c *Controller[T]) ID() uint64 {
	return c.id
}

// Page returns the current 1-based page index.
func (c *Controller[T]) Page() int {
	return c.page
}

// TotalPage returns the last known total page count.
func (c *Controller[T]) TotalPage() int {
	return c.totalPage
}

// Items returns the items of the most recently applied fetch.
func (c *Controller[T]) Items() []T {
	return c.items
}

// Loading reports whether the fetch for the current page is outstanding.
func (c *Controller[T]) Loading() bool {
	return c.loading
}

// WindowSize returns the number of page numbers shown in the selector.
func (c *Controller[T]) WindowSize() int {
	return c.windowSize
}

// VisiblePageWindow returns the page selector entries for the current state.
func (c *Controller[T]) VisiblePageWindow() []WindowEntry {
	return VisiblePageWindow(c.page, c.totalPage, c.windowSize)
}

// Meta returns page metadata for the current state.
func (c *Controller[T]) Meta() Meta {
	return NewMeta(c.page, c.totalPage, len(c.items), c.loading)
}
