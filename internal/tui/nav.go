package tui

import tea "github.com/charmbracelet/bubbletea"

// Target identifies a screen.
type Target string

// Screens hosted by App.
const (
	TargetHome        Target = "home"
	TargetLogin       Target = "login"
	TargetLogout      Target = "logout"
	TargetPurchaselog Target = "purchaselog"
	TargetProfile     Target = "profile"
)

// Screens of the web service that the terminal client does not host.
const (
	TargetSignup       Target = "signup"
	TargetSurvey       Target = "survey"
	TargetAbout        Target = "about"
	TargetIntroduction Target = "introduction"
	TargetColumn       Target = "column"
	TargetPickupPub    Target = "pickup-pub"
)

// NavigateMsg asks App to switch screens. ID carries the entity id for
// targets that need one (survey).
type NavigateMsg struct {
	Target Target
	ID     int
}

// Navigate returns a command emitting NavigateMsg.
func Navigate(target Target, id int) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Target: target, ID: id}
	}
}

var unhostedLabels = map[Target]string{
	TargetSignup:       "新規登録",
	TargetSurvey:       "アンケート",
	TargetAbout:        "びあログとは？",
	TargetIntroduction: "クラフトビール入門",
	TargetColumn:       "ビールコラム",
	TargetPickupPub:    "ピックアップ居酒屋",
}
