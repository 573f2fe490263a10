// Package listview is a generic selectable list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered. Items may be replaced at
// any time with SetItems; the selection is clamped to the new length.
package listview
