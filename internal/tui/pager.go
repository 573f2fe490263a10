package tui

import (
	"strconv"
	"strings"

	"github.com/bialog/bialog/internal/pagination"
)

// RenderPageWindow renders the page selector with the current page
// highlighted.
func RenderPageWindow(entries []pagination.WindowEntry, current int) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.IsEllipsis():
			parts = append(parts, LabelStyle.Render(e.String()))
		case e.Page == current:
			parts = append(parts, CurrentPageStyle.Render("["+strconv.Itoa(e.Page)+"]"))
		default:
			parts = append(parts, e.String())
		}
	}
	return strings.Join(parts, " ")
}
