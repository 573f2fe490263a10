package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Notifier shows fire-and-forget messages to the user. The returned command,
// if any, must be handed back to the Bubble Tea runtime.
type Notifier interface {
	NotifyError(message string) tea.Cmd
	NotifyInfo(message string) tea.Cmd
}

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 4 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastError
)

type toastExpiredMsg struct {
	id int
}

// Toast is a single-line banner that clears itself after a delay. A newer
// message replaces the current one and restarts the timer.
type Toast struct {
	message  string
	level    toastLevel
	id       int
	duration time.Duration
}

// NewToast creates an empty toast.
func NewToast(duration time.Duration) *Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toast{duration: duration}
}

// NotifyError implements Notifier.
func (t *Toast) NotifyError(message string) tea.Cmd {
	return t.show(message, toastError)
}

// NotifyInfo implements Notifier.
func (t *Toast) NotifyInfo(message string) tea.Cmd {
	return t.show(message, toastInfo)
}

func (t *Toast) show(message string, level toastLevel) tea.Cmd {
	t.id++
	t.message = message
	t.level = level
	id := t.id
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Update clears the toast when its timer fires. It reports whether msg was a
// toast message.
func (t *Toast) Update(msg tea.Msg) bool {
	expired, ok := msg.(toastExpiredMsg)
	if !ok {
		return false
	}
	if expired.id == t.id {
		t.message = ""
	}
	return true
}

// Message returns the visible text, empty when hidden.
func (t *Toast) Message() string {
	return t.message
}

// IsError reports whether the visible message is an error.
func (t *Toast) IsError() bool {
	return t.message != "" && t.level == toastError
}

// View renders the banner.
func (t *Toast) View() string {
	if t.message == "" {
		return ""
	}
	if t.level == toastError {
		return ErrorStyle.Render("✗ " + t.message)
	}
	return SuccessStyle.Render("✓ " + t.message)
}
