package tui

// ViewState is the display mode of a view model.
type ViewState int

const (
	// ViewStateLoading shows the spinner until the first data arrives.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the main list.
	ViewStateList
	// ViewStateDetail shows the selected entry.
	ViewStateDetail
	// ViewStateInput captures text (page jump, search, forms).
	ViewStateInput
	// ViewStateConfirm waits for y/n.
	ViewStateConfirm
	// ViewStateQuitting is set right before tea.Quit.
	ViewStateQuitting
	// ViewStateError shows a terminal error.
	ViewStateError
)

func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateInput:
		return "input"
	case ViewStateConfirm:
		return "confirm"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}
