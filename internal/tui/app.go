package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/pagination"
	"github.com/bialog/bialog/internal/session"
)

const (
	msgLoggedOut       = "ログアウトしました"
	msgSessionFailed   = "サーバーに接続できませんでした"
	msgUnknownScreen   = "この画面は表示できません"
	msgUnhostedScreen  = "%sはブラウザ版でご利用ください"
	msgUnhostedSurvey  = "アンケート(購入ID: %d)はブラウザ版で回答してください"
	msgLogoutFailed    = "ログアウトに失敗しました"
	msgAlreadyLoggedIn = "すでにログインしています"
)

type sessionResolvedMsg struct {
	state session.State
	err   error
}

// AppOptions configures App.
type AppOptions struct {
	// Start is the first screen. Defaults to TargetHome.
	Start Target
	// WindowSize is the page selector size of paginated views.
	WindowSize int
	// StartPage is the purchase log page shown the first time that screen
	// opens. Zero keeps page 1.
	StartPage int
	// Toast receives notifications. Defaults to a new Toast.
	Toast *Toast
}

// App hosts the screens and routes NavigateMsg between them.
type App struct {
	ctx         context.Context
	backend     Backend
	credentials session.Provider
	opts        AppOptions
	log         zerolog.Logger

	toast   *Toast
	session session.State
	current tea.Model
	target  Target

	width  int
	height int
}

// NewApp creates the application model.
func NewApp(ctx context.Context, backend Backend, credentials session.Provider, opts AppOptions) *App {
	if opts.Start == "" {
		opts.Start = TargetHome
	}
	if opts.Toast == nil {
		opts.Toast = NewToast(DefaultToastDuration)
	}
	return &App{
		ctx:         ctx,
		backend:     backend,
		credentials: credentials,
		opts:        opts,
		log:         logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		toast:       opts.Toast,
		session:     session.LoggedOut{},
	}
}

// Current returns the active screen.
func (a *App) Current() tea.Model {
	return a.current
}

// Target returns the active screen's target.
func (a *App) Target() Target {
	return a.target
}

// Session returns the resolved session state.
func (a *App) Session() session.State {
	return a.session
}

// Toast returns the notification banner.
func (a *App) Toast() *Toast {
	return a.toast
}

// Init resolves the session and opens the start screen.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveSession(), a.open(a.opts.Start, 0))
}

func (a *App) resolveSession() tea.Cmd {
	ctx, credentials, backend := a.ctx, a.credentials, a.backend
	return func() tea.Msg {
		state, err := session.Resolve(ctx, credentials, backend.CurrentUserName)
		return sessionResolvedMsg{state: state, err: err}
	}
}

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.toast.Update(msg) {
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case NavigateMsg:
		return a, a.open(msg.Target, msg.ID)
	case sessionResolvedMsg:
		return a, a.handleSession(msg)
	case LoginSucceededMsg:
		return a, tea.Batch(a.resolveSession(), a.open(TargetHome, 0))
	}

	if a.current == nil {
		return a, nil
	}
	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)
	return a, cmd
}

func (a *App) handleSession(msg sessionResolvedMsg) tea.Cmd {
	a.session = msg.state
	if home, ok := a.current.(*HomeModel); ok {
		home.SetSession(msg.state)
	}
	if msg.err != nil {
		a.log.Warn().Err(msg.err).Msg("session resolution failed")
		return a.toast.NotifyError(msgSessionFailed)
	}
	a.log.Debug().Bool("logged_in", session.IsLoggedIn(msg.state)).Msg("session resolved")
	return nil
}

// open switches to target. Screens the terminal client does not host produce
// an info notification and leave the current screen in place.
func (a *App) open(target Target, id int) tea.Cmd {
	var next tea.Model
	switch target {
	case TargetHome:
		next = NewHomeModel(a.ctx, a.backend, a.session, a.toast)
	case TargetLogin:
		if session.IsLoggedIn(a.session) {
			return a.toast.NotifyInfo(msgAlreadyLoggedIn)
		}
		next = NewLoginModel(a.ctx, a.backend, a.credentials, a.toast)
	case TargetLogout:
		state, err := session.Logout(a.credentials)
		if err != nil {
			a.log.Error().Err(err).Msg("logout failed")
			return a.toast.NotifyError(msgLogoutFailed)
		}
		a.session = state
		return tea.Batch(a.open(TargetHome, 0), a.toast.NotifyInfo(msgLoggedOut))
	case TargetPurchaselog:
		pl := NewPurchaselogModel(a.ctx, PurchaselogFetcher(a.backend), a.opts.WindowSize, a.toast)
		if a.opts.StartPage != 0 {
			pl.SetStartPage(a.opts.StartPage)
			a.opts.StartPage = 0
		}
		next = pl
	case TargetProfile:
		next = NewProfileModel(a.ctx, a.backend, a.toast)
	case TargetSurvey:
		a.log.Info().Int("purchase_id", id).Msg("survey requested")
		return a.toast.NotifyInfo(fmt.Sprintf(msgUnhostedSurvey, id))
	default:
		if label, ok := unhostedLabels[target]; ok {
			return a.toast.NotifyInfo(fmt.Sprintf(msgUnhostedScreen, label))
		}
		a.log.Warn().Str("target", string(target)).Msg("unknown navigation target")
		return a.toast.NotifyError(msgUnknownScreen)
	}

	a.log.Debug().Str("from", string(a.target)).Str("to", string(target)).Msg("navigate")
	a.current = next
	a.target = target
	cmds := []tea.Cmd{next.Init()}
	if a.width > 0 {
		var cmd tea.Cmd
		a.current, cmd = a.current.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View renders the active screen and the toast.
func (a *App) View() string {
	if a.current == nil {
		return ""
	}
	body := a.current.View()
	if banner := a.toast.View(); banner != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, "", banner)
	}
	return body
}

// PurchaselogFetcher adapts Backend.FetchPurchaselog to pagination.Fetcher.
func PurchaselogFetcher(backend Backend) pagination.Fetcher[api.Purchaselog] {
	return func(ctx context.Context, page int) (pagination.Page[api.Purchaselog], error) {
		out, err := backend.FetchPurchaselog(ctx, page)
		if err != nil {
			return pagination.Page[api.Purchaselog]{}, err
		}
		return pagination.Page[api.Purchaselog]{Items: out.Purchaselog, TotalPage: out.TotalPage}, nil
	}
}
