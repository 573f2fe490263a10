package tui

// Key names as reported by tea.KeyMsg.String().
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keyHome     = "home"
	keyEnd      = "end"
	keySlash    = "/"
	keyColon    = ":"
	keyReload   = "r"
	keySurvey   = "v"
	keyAdd      = "a"
	keyDelete   = "d"
	keySubmit   = "s"
	keyYes      = "y"
	keyNo       = "n"
	keyH        = "h"
	keyL        = "l"
	keyJ        = "j"
	keyK        = "k"
	keyMinus    = "-"
	keyPlus     = "+"
	keyBackward = "b"
)

// Layout defaults used before the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
)
