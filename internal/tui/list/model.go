package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a selectable list. It handles up/down, j/k and page up/down.
// Other keys are left to the owning view.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]

	selected int
	offset   int
	// height is the number of rows shown; each rendered item counts as rowsPerItem.
	height      int
	rowsPerItem int
}

// New creates a list showing height rows of one-line items.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{render: render, rowsPerItem: 1}
	m.SetHeight(height)
	m.SetItems(items)
	return m
}

// SetRowsPerItem declares how many terminal rows a rendered item takes.
func (m *Model[T]) SetRowsPerItem(rows int) {
	m.rowsPerItem = max(1, rows)
	m.scroll()
}

// SetItems replaces the items, keeping the selection index in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetHeight sets the viewport height in rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(1, height)
	m.scroll()
}

// Update handles navigation keys and reports whether the key was consumed.
//
//nolint:exhaustive // Only navigation keys are relevant.
func (m *Model[T]) Update(msg tea.Msg) bool {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return false
	}

	switch key.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.visibleItems())
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.visibleItems())
	case tea.KeyRunes:
		switch key.String() {
		case "k":
			m.SetSelected(m.selected - 1)
		case "j":
			m.SetSelected(m.selected + 1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// SetSelected moves the selection, clamped to the item range.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0 || index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.scroll()
}

func (m *Model[T]) visibleItems() int {
	return max(1, m.height/m.rowsPerItem)
}

// scroll keeps the selected item inside the viewport.
func (m *Model[T]) scroll() {
	visible := m.visibleItems()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	m.offset = max(0, min(m.offset, len(m.items)-visible))
}

// View renders the visible items separated by newlines.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := min(len(m.items), m.offset+m.visibleItems())
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// Offset returns the index of the first visible item.
func (m *Model[T]) Offset() int {
	return m.offset
}

// SelectedItem returns the selected item, or false when the list is empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.selected], true
}
