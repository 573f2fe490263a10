package pagination

import (
	"strconv"
	"strings"
)

// Page selector window sizes.
const (
	DefaultWindowSize = 7
	MinWindowSize     = 3
	MaxWindowSize     = 25
)

// EntryKind distinguishes page numbers from ellipsis markers in a window.
type EntryKind int

const (
	// EntryPage is a selectable page number.
	EntryPage EntryKind = iota
	// EntryEllipsis marks a gap between the shortcuts and the window.
	EntryEllipsis
)

// ellipsisLabel is the rendered form of an EntryEllipsis.
const ellipsisLabel = "…"

// WindowEntry is one element of the page selector.
type WindowEntry struct {
	Kind EntryKind
	// Page is set for EntryPage entries and zero for ellipses.
	Page int
}

// PageEntry returns a page number entry.
func PageEntry(n int) WindowEntry {
	return WindowEntry{Kind: EntryPage, Page: n}
}

// Ellipsis returns an ellipsis entry.
func Ellipsis() WindowEntry {
	return WindowEntry{Kind: EntryEllipsis}
}

// IsEllipsis reports whether the entry is an ellipsis marker.
func (e WindowEntry) IsEllipsis() bool {
	return e.Kind == EntryEllipsis
}

// String renders the entry as shown in the selector.
func (e WindowEntry) String() string {
	if e.IsEllipsis() {
		return ellipsisLabel
	}
	return strconv.Itoa(e.Page)
}

// WindowBounds returns the first and last page number of the sliding window
// around page. The window leans left of the current page and is pulled back
// from the end so that it stays full near the last page.
//
//nolint:nonamedreturns // Named returns document the pair.
func WindowBounds(page, totalPage, size int) (start, end int) {
	if totalPage < FirstPage {
		totalPage = FirstPage
	}
	if size < 1 {
		size = 1
	}
	page = min(max(page, FirstPage), totalPage)

	start = max(FirstPage, page-(size-1)/2)
	end = min(totalPage, start+size-1)
	start = max(FirstPage, end-size+1)
	return start, end
}

// VisiblePageWindow computes the page selector for page out of totalPage with
// the given window size. Page 1 is prepended when the window does not start at
// 1, the last page is appended when the window does not end at totalPage, and
// an ellipsis marks each gap of at least one page.
func VisiblePageWindow(page, totalPage, size int) []WindowEntry {
	if totalPage < FirstPage {
		totalPage = FirstPage
	}
	start, end := WindowBounds(page, totalPage, size)

	entries := make([]WindowEntry, 0, end-start+5) //nolint:mnd // Window plus two shortcuts and two ellipses.
	if start > FirstPage {
		entries = append(entries, PageEntry(FirstPage))
		if start > FirstPage+1 {
			entries = append(entries, Ellipsis())
		}
	}
	for n := start; n <= end; n++ {
		entries = append(entries, PageEntry(n))
	}
	if end < totalPage {
		if end < totalPage-1 {
			entries = append(entries, Ellipsis())
		}
		entries = append(entries, PageEntry(totalPage))
	}
	return entries
}

// FormatWindow renders entries separated by spaces, marking the current page
// with brackets, e.g. "1 … 4 5 [6] 7 8 … 10".
func FormatWindow(entries []WindowEntry, current int) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsEllipsis() && e.Page == current {
			parts = append(parts, "["+e.String()+"]")
			continue
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " ")
}
