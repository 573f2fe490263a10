package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/session"
)

const (
	msgLoginFailed  = "ログインに失敗しました"
	msgLoginInvalid = "ユーザー名またはパスワードが違います"
	msgLoginEmpty   = "ユーザー名とパスワードを入力してください"
)

type loginResultMsg struct {
	err error
}

// LoginSucceededMsg is emitted after a token has been stored.
type LoginSucceededMsg struct{}

// LoginModel asks for a username and password and stores the issued token.
type LoginModel struct {
	ctx        context.Context
	backend    Backend
	credential session.Provider
	notifier   Notifier
	log        zerolog.Logger

	inputs     []textinput.Model
	focus      int
	submitting bool
}

// NewLoginModel creates the login form.
func NewLoginModel(ctx context.Context, backend Backend, credentials session.Provider, notifier Notifier) *LoginModel {
	user := textinput.New()
	user.Placeholder = "ユーザー名"
	user.CharLimit = searchInputCharLimit
	user.Width = searchInputWidth

	pass := textinput.New()
	pass.Placeholder = "パスワード"
	pass.CharLimit = searchInputCharLimit
	pass.Width = searchInputWidth
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return &LoginModel{
		ctx:        ctx,
		backend:    backend,
		credential: credentials,
		notifier:   notifier,
		log:        logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		inputs:     []textinput.Model{user, pass},
	}
}

// Init focuses the username field.
func (m *LoginModel) Init() tea.Cmd {
	return m.inputs[0].Focus()
}

// Update handles messages.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		return m, m.handleResult(res)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			return m, tea.Quit
		case keyEsc:
			return m, Navigate(TargetHome, 0)
		case keyTab, keyDown, keyUp:
			return m, m.cycleFocus()
		case keyEnter:
			if m.focus == 0 {
				return m, m.cycleFocus()
			}
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) cycleFocus() tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *LoginModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	username := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	if username == "" || password == "" {
		return m.notifier.NotifyError(msgLoginEmpty)
	}
	m.submitting = true
	ctx, backend, credentials := m.ctx, m.backend, m.credential
	return func() tea.Msg {
		token, err := backend.Login(ctx, username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{err: credentials.Store(token.AccessToken)}
	}
}

func (m *LoginModel) handleResult(res loginResultMsg) tea.Cmd {
	if res.err != nil {
		m.log.Warn().Err(res.err).Msg("login failed")
		m.inputs[1].SetValue("")
		if errors.Is(res.err, api.ErrUnauthorized) {
			return m.notifier.NotifyError(msgLoginInvalid)
		}
		return m.notifier.NotifyError(msgLoginFailed)
	}
	m.log.Info().Msg("login succeeded")
	return func() tea.Msg { return LoginSucceededMsg{} }
}

// View renders the form.
func (m *LoginModel) View() string {
	status := HelpStyle.Render("tab 切替  enter ログイン  esc 戻る")
	if m.submitting {
		status = InfoStyle.Render("ログイン中...")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("ログイン"),
		"",
		m.inputs[0].View(),
		m.inputs[1].View(),
		"",
		status,
	)
}
