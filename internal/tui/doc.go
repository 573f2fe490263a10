// Package tui implements the interactive Bubble Tea screens of bialog: home,
// login, purchase history and profile, routed by App.
//
// Models never block in Update. Backend calls run as tea.Cmd values and come
// back as messages; Notifier and NavigateMsg are the only ways a screen talks
// to the rest of the client.
package tui
