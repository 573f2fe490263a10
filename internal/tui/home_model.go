package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/session"
)

// SearchMode selects what the home search box looks for.
type SearchMode int

const (
	// SearchKeyword is free-text search.
	SearchKeyword SearchMode = iota
	// SearchBrand searches brand names.
	SearchBrand
)

func (s SearchMode) String() string {
	if s == SearchBrand {
		return "銘柄"
	}
	return "キーワード"
}

const (
	searchInputCharLimit = 64
	searchInputWidth     = 40
	maxBrandResults      = 10

	msgSearchFailed       = "銘柄の検索に失敗しました"
	msgKeywordUnsupported = "キーワード検索は準備中です"
)

type menuItem struct {
	label  string
	target Target
}

var contentMenu = []menuItem{
	{label: "びあログとは？", target: TargetAbout},
	{label: "クラフトビール入門", target: TargetIntroduction},
	{label: "ビールコラム", target: TargetColumn},
	{label: "ピックアップ居酒屋", target: TargetPickupPub},
}

// WelcomeMessage greets the user according to the session state.
func WelcomeMessage(s session.State) string {
	return session.Match(s,
		func() string { return "ようこそ、ゲストさん！" },
		func(in session.LoggedIn) string { return "ようこそ、" + in.UserName + "さん！" },
	)
}

func sessionMenu(s session.State) []menuItem {
	account := session.Match(s,
		func() []menuItem {
			return []menuItem{
				{label: "ログイン", target: TargetLogin},
				{label: "新規登録", target: TargetSignup},
			}
		},
		func(session.LoggedIn) []menuItem {
			return []menuItem{
				{label: "マイページ", target: TargetProfile},
				{label: "購入履歴", target: TargetPurchaselog},
				{label: "ログアウト", target: TargetLogout},
			}
		},
	)
	return append(account, contentMenu...)
}

type brandSearchMsg struct {
	query  string
	brands []api.Brand
	err    error
}

// HomeModel is the landing screen.
type HomeModel struct {
	ctx      context.Context
	backend  Backend
	notifier Notifier
	log      zerolog.Logger

	session session.State
	menu    []menuItem
	cursor  int

	state   ViewState
	search  textinput.Model
	mode    SearchMode
	query   string
	results []api.Brand
}

// NewHomeModel creates the landing screen for state.
func NewHomeModel(ctx context.Context, backend Backend, state session.State, notifier Notifier) *HomeModel {
	ti := textinput.New()
	ti.Placeholder = "飲みたいビールを検索"
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth

	m := &HomeModel{
		ctx:      ctx,
		backend:  backend,
		notifier: notifier,
		log:      logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		state:    ViewStateList,
		search:   ti,
	}
	m.SetSession(state)
	return m
}

// SetSession updates the greeting and menu.
func (m *HomeModel) SetSession(state session.State) {
	if state == nil {
		state = session.LoggedOut{}
	}
	m.session = state
	m.menu = sessionMenu(state)
	m.cursor = min(m.cursor, len(m.menu)-1)
}

// Session returns the state the screen renders.
func (m *HomeModel) Session() session.State {
	return m.session
}

// Mode returns the current search mode.
func (m *HomeModel) Mode() SearchMode {
	return m.mode
}

// Results returns the last applied brand search results.
func (m *HomeModel) Results() []api.Brand {
	return m.results
}

// Init implements tea.Model.
func (m *HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(brandSearchMsg); ok {
		return m.handleSearchResult(res)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if m.state == ViewStateInput {
		return m.handleSearchInput(msg)
	}
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyUp, keyK:
		m.cursor = max(0, m.cursor-1)
	case keyDown, keyJ:
		m.cursor = min(len(m.menu)-1, m.cursor+1)
	case keyEnter:
		return m, Navigate(m.menu[m.cursor].target, 0)
	case keyTab:
		m.toggleMode()
	case keySlash:
		m.state = ViewStateInput
		return m, m.search.Focus()
	}
	return m, nil
}

func (m *HomeModel) toggleMode() {
	if m.mode == SearchKeyword {
		m.mode = SearchBrand
	} else {
		m.mode = SearchKeyword
	}
	m.query = ""
	m.results = nil
}

func (m *HomeModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			m.search.Blur()
			return m, nil
		case keyTab:
			m.toggleMode()
			return m, nil
		case keyEnter:
			m.state = ViewStateList
			m.search.Blur()
			return m, m.submitSearch(strings.TrimSpace(m.search.Value()))
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *HomeModel) submitSearch(query string) tea.Cmd {
	if query == "" {
		m.query = ""
		m.results = nil
		return nil
	}
	if m.mode == SearchKeyword {
		m.log.Info().Str("query", query).Str("mode", "keyword").Msg("keyword search is not supported")
		return m.notifier.NotifyInfo(msgKeywordUnsupported)
	}

	m.query = query
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		brands, err := backend.SearchBrands(ctx, query)
		return brandSearchMsg{query: query, brands: brands, err: err}
	}
}

func (m *HomeModel) handleSearchResult(msg brandSearchMsg) (tea.Model, tea.Cmd) {
	if msg.query != m.query {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("query", msg.query).Msg("brand search failed")
		return m, m.notifier.NotifyError(msgSearchFailed)
	}
	m.results = msg.brands
	return m, nil
}

// View renders the screen.
func (m *HomeModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var menu strings.Builder
	for i, item := range m.menu {
		if i == m.cursor {
			menu.WriteString(SelectedStyle.Render("> " + item.label))
		} else {
			menu.WriteString("  " + item.label)
		}
		menu.WriteString("\n")
	}

	search := LabelStyle.Render("検索 ["+m.mode.String()+"]") + " " + m.search.View()

	sections := []string{
		TitleStyle.Render("びあログ"),
		HelpStyle.Render("自宅でも居酒屋でも。飲みたいビールに出会える。"),
		"",
		InfoStyle.Render(WelcomeMessage(m.session)),
		"",
		menu.String(),
		search,
	}
	if m.query != "" {
		sections = append(sections, m.renderResults())
	}
	sections = append(sections, "", HelpStyle.Render("↑/↓ 選択  enter 決定  / 検索  tab 検索種別  q 終了"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *HomeModel) renderResults() string {
	if len(m.results) == 0 {
		return LabelStyle.Render("「" + m.query + "」に一致する銘柄はありません")
	}
	var b strings.Builder
	for i, brand := range m.results {
		if i == maxBrandResults {
			b.WriteString(LabelStyle.Render("…"))
			break
		}
		b.WriteString("  • " + brand.BrandName + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
