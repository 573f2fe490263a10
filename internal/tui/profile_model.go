package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/logging"
	listview "github.com/bialog/bialog/internal/tui/list"
)

const (
	favoriteListHeight   = 8
	preferenceListHeight = 8
	suggestionListHeight = 5

	msgFavoriteAdded      = "好みの銘柄を追加しました！"
	msgFavoriteAddFailed  = "銘柄の追加に失敗しました"
	msgFavoriteDuplicate  = "すでに登録されている銘柄です"
	msgFavoriteDeleted    = "好みの銘柄を削除しました！"
	msgFavoriteDelFailed  = "銘柄の削除に失敗しました！"
	msgPreferencesSaved   = "好みを更新しました！"
	msgPreferencesFailed  = "好みの更新に失敗しました"
	msgProfileLoadFailed  = "プロフィールの取得に失敗しました"
	msgNoPreferenceChange = "変更された好みはありません"
)

// profileSection is the focused half of the profile screen.
type profileSection int

const (
	sectionFavorites profileSection = iota
	sectionPreferences
)

type (
	profileLoadedMsg struct {
		profile Profile
		err     error
	}
	favoriteSuggestionsMsg struct {
		query  string
		brands []api.Brand
		err    error
	}
	favoriteAddedMsg struct {
		brand api.Brand
		err   error
	}
	favoriteDeletedMsg struct {
		brandID int
		err     error
	}
	preferencesSavedMsg struct {
		scores map[int]int
		err    error
	}
)

// ProfileModel is the "my page" screen.
type ProfileModel struct {
	ctx      context.Context
	backend  Backend
	notifier Notifier
	log      zerolog.Logger

	state   ViewState
	loading *LoadingState
	err     error
	profile Profile
	section profileSection

	favorites   *listview.Model[api.Brand]
	preferences *listview.Model[api.Preference]
	// pending holds edited scores not yet submitted, keyed by item id.
	pending map[int]int

	addInput    textinput.Model
	suggestions *listview.Model[api.Brand]
	// suggestQuery is the input value the visible suggestions belong to.
	suggestQuery string

	confirmBrand api.Brand
}

// NewProfileModel creates the screen. The profile is loaded by Init.
func NewProfileModel(ctx context.Context, backend Backend, notifier Notifier) *ProfileModel {
	ti := textinput.New()
	ti.Placeholder = "好きな銘柄を追加"
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth

	m := &ProfileModel{
		ctx:      ctx,
		backend:  backend,
		notifier: notifier,
		log:      logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		state:    ViewStateLoading,
		loading:  NewLoadingState("プロフィールを読み込み中..."),
		pending:  map[int]int{},
		addInput: ti,
	}
	m.favorites = listview.New([]api.Brand{}, favoriteListHeight, m.renderFavorite)
	m.preferences = listview.New([]api.Preference{}, preferenceListHeight, m.renderPreference)
	m.suggestions = listview.New([]api.Brand{}, suggestionListHeight, renderSuggestion)
	return m
}

// State returns the current display mode.
func (m *ProfileModel) State() ViewState {
	return m.state
}

// Profile returns the loaded profile including applied edits.
func (m *ProfileModel) Profile() Profile {
	return m.profile
}

// PendingScores returns edited but unsubmitted scores.
func (m *ProfileModel) PendingScores() map[int]int {
	return m.pending
}

// Init starts loading.
func (m *ProfileModel) Init() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return tea.Batch(m.loading.Init(), func() tea.Msg {
		p, err := LoadProfile(ctx, backend)
		return profileLoadedMsg{profile: p, err: err}
	})
}

// Update handles messages.
func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case profileLoadedMsg:
		return m.handleLoaded(msg)
	case favoriteSuggestionsMsg:
		return m.handleSuggestions(msg)
	case favoriteAddedMsg:
		return m.handleAdded(msg)
	case favoriteDeletedMsg:
		return m.handleDeleted(msg)
	case preferencesSavedMsg:
		return m.handleSaved(msg)
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	switch m.state {
	case ViewStateInput:
		return m.handleAddInput(msg)
	case ViewStateConfirm:
		return m.handleConfirm(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateLoading, ViewStateError:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case keyQuit:
				m.state = ViewStateQuitting
				return m, tea.Quit
			case keyEsc:
				return m, Navigate(TargetHome, 0)
			}
		}
		return m, nil
	case ViewStateDetail, ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *ProfileModel) handleLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("load profile failed")
		m.err = msg.err
		m.state = ViewStateError
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return m, tea.Batch(m.notifier.NotifyError("ログインしてください"), Navigate(TargetLogin, 0))
		}
		return m, m.notifier.NotifyError(msgProfileLoadFailed)
	}
	m.profile = msg.profile
	m.favorites.SetItems(m.profile.Favorites)
	m.preferences.SetItems(m.profile.Preferences)
	m.state = ViewStateList
	return m, nil
}

func (m *ProfileModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc:
		return m, Navigate(TargetHome, 0)
	case keyTab:
		if m.section == sectionFavorites {
			m.section = sectionPreferences
		} else {
			m.section = sectionFavorites
		}
		return m, nil
	case keyAdd:
		m.state = ViewStateInput
		m.addInput.SetValue("")
		m.suggestQuery = ""
		m.suggestions.SetItems([]api.Brand{})
		return m, m.addInput.Focus()
	case keySubmit:
		return m, m.submitPreferences()
	}

	if m.section == sectionFavorites {
		if keyMsg.String() == keyDelete {
			if brand, found := m.favorites.SelectedItem(); found {
				m.confirmBrand = brand
				m.state = ViewStateConfirm
			}
			return m, nil
		}
		m.favorites.Update(keyMsg)
		return m, nil
	}

	switch keyMsg.String() {
	case keyLeft, keyH, keyMinus:
		m.adjustScore(-1)
		return m, nil
	case keyRight, keyL, keyPlus:
		m.adjustScore(1)
		return m, nil
	}
	m.preferences.Update(keyMsg)
	return m, nil
}

// adjustScore edits the selected preference within the score bounds.
func (m *ProfileModel) adjustScore(delta int) {
	pref, found := m.preferences.SelectedItem()
	if !found {
		return
	}
	current, edited := m.pending[pref.ItemID]
	if !edited {
		current = pref.Score
	}
	next := min(max(current+delta, api.MinScore), api.MaxScore)
	if next == pref.Score {
		delete(m.pending, pref.ItemID)
		return
	}
	m.pending[pref.ItemID] = next
}

func (m *ProfileModel) submitPreferences() tea.Cmd {
	if len(m.pending) == 0 {
		return m.notifier.NotifyInfo(msgNoPreferenceChange)
	}
	scores := make(map[int]int, len(m.pending))
	for id, s := range m.pending {
		scores[id] = s
	}
	ctx, backend, userID := m.ctx, m.backend, m.profile.UserID
	return func() tea.Msg {
		return preferencesSavedMsg{scores: scores, err: backend.UpdatePreferences(ctx, userID, scores)}
	}
}

func (m *ProfileModel) handleSaved(msg preferencesSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("update preferences failed")
		return m, m.notifier.NotifyError(msgPreferencesFailed)
	}
	for i, p := range m.profile.Preferences {
		if s, ok := msg.scores[p.ItemID]; ok {
			m.profile.Preferences[i].Score = s
			if m.pending[p.ItemID] == s {
				delete(m.pending, p.ItemID)
			}
		}
	}
	m.preferences.SetItems(m.profile.Preferences)
	return m, m.notifier.NotifyInfo(msgPreferencesSaved)
}

func (m *ProfileModel) handleConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyYes:
		m.state = ViewStateList
		ctx, backend, userID, brandID := m.ctx, m.backend, m.profile.UserID, m.confirmBrand.BrandID
		return m, func() tea.Msg {
			return favoriteDeletedMsg{brandID: brandID, err: backend.DeleteFavorite(ctx, userID, brandID)}
		}
	case keyNo, keyEsc:
		m.state = ViewStateList
	}
	return m, nil
}

func (m *ProfileModel) handleDeleted(msg favoriteDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Int("brand_id", msg.brandID).Msg("delete favorite failed")
		return m, m.notifier.NotifyError(msgFavoriteDelFailed)
	}
	kept := make([]api.Brand, 0, len(m.profile.Favorites))
	for _, b := range m.profile.Favorites {
		if b.BrandID != msg.brandID {
			kept = append(kept, b)
		}
	}
	m.profile.Favorites = kept
	m.favorites.SetItems(kept)
	return m, m.notifier.NotifyInfo(msgFavoriteDeleted)
}

func (m *ProfileModel) handleAddInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = ViewStateList
			m.addInput.Blur()
			return m, nil
		case keyUp, keyDown:
			m.suggestions.Update(keyMsg)
			return m, nil
		case keyEnter:
			brand, found := m.suggestions.SelectedItem()
			if !found || m.suggestQuery != strings.TrimSpace(m.addInput.Value()) {
				return m, nil
			}
			m.state = ViewStateList
			m.addInput.Blur()
			return m, m.addFavorite(brand)
		}
	}

	before := m.addInput.Value()
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	if m.addInput.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.suggest(strings.TrimSpace(m.addInput.Value())))
}

// suggest looks up brands for query. An empty query clears the suggestions.
func (m *ProfileModel) suggest(query string) tea.Cmd {
	if query == "" {
		m.suggestQuery = ""
		m.suggestions.SetItems([]api.Brand{})
		return nil
	}
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		brands, err := backend.SearchBrands(ctx, query)
		return favoriteSuggestionsMsg{query: query, brands: brands, err: err}
	}
}

// handleSuggestions applies results only for the text currently typed.
func (m *ProfileModel) handleSuggestions(msg favoriteSuggestionsMsg) (tea.Model, tea.Cmd) {
	if m.state != ViewStateInput || msg.query != strings.TrimSpace(m.addInput.Value()) {
		return m, nil
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("query", msg.query).Msg("brand suggestions failed")
		return m, nil
	}
	m.suggestQuery = msg.query
	m.suggestions.SetItems(msg.brands)
	m.suggestions.SetSelected(0)
	return m, nil
}

func (m *ProfileModel) addFavorite(brand api.Brand) tea.Cmd {
	ctx, backend, userID := m.ctx, m.backend, m.profile.UserID
	return func() tea.Msg {
		added, err := backend.AddFavorite(ctx, userID, brand.BrandName)
		if err == nil && added.BrandID == 0 {
			added = brand
		}
		return favoriteAddedMsg{brand: added, err: err}
	}
}

func (m *ProfileModel) handleAdded(msg favoriteAddedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("brand", msg.brand.BrandName).Msg("add favorite failed")
		if errors.Is(msg.err, api.ErrAlreadyFavorite) {
			return m, m.notifier.NotifyError(msgFavoriteDuplicate)
		}
		return m, m.notifier.NotifyError(msgFavoriteAddFailed)
	}
	m.profile.Favorites = append(m.profile.Favorites, msg.brand)
	m.favorites.SetItems(m.profile.Favorites)
	return m, m.notifier.NotifyInfo(msgFavoriteAdded)
}

func (m *ProfileModel) renderFavorite(b api.Brand, selected bool) string {
	line := "• " + b.BrandName
	if selected && m.section == sectionFavorites {
		return SelectedStyle.Render(line)
	}
	return line
}

func (m *ProfileModel) renderPreference(p api.Preference, selected bool) string {
	score := p.Score
	marker := " "
	if s, ok := m.pending[p.ItemID]; ok {
		score = s
		marker = "*"
	}
	line := fmt.Sprintf("%s %-12s %s %d", marker, truncate(p.Item.ItemName, 12), ScoreBar(score), score)
	if selected && m.section == sectionPreferences {
		return SelectedStyle.Render(line)
	}
	return line
}

func renderSuggestion(b api.Brand, selected bool) string {
	if selected {
		return SelectedStyle.Render("> " + b.BrandName)
	}
	return "  " + b.BrandName
}

// View renders the screen.
func (m *ProfileModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + HelpStyle.Render("esc ホーム  q 終了")
	case ViewStateList, ViewStateInput, ViewStateConfirm, ViewStateDetail:
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(m.profile.User.UserName),
		m.profile.User.UserProfile,
		LabelStyle.Render(fmt.Sprintf("投稿写真: %d枚", m.profile.PhotoCount)),
	)

	favTitle, prefTitle := LabelStyle.Render("好きな銘柄"), LabelStyle.Render("好み")
	if m.section == sectionFavorites {
		favTitle = HeaderStyle.Render("好きな銘柄")
	} else {
		prefTitle = HeaderStyle.Render("好み")
	}
	favBody := m.favorites.View()
	if m.favorites.Len() == 0 {
		favBody = LabelStyle.Render("まだ登録されていません")
	}
	prefBody := m.preferences.View()
	if m.preferences.Len() == 0 {
		prefBody = LabelStyle.Render("まだ登録されていません")
	}

	left := lipgloss.JoinVertical(lipgloss.Left, favTitle, favBody)
	right := lipgloss.JoinVertical(lipgloss.Left, prefTitle, prefBody)
	body := lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(searchInputWidth).Render(left), right)

	sections := []string{header, "", body, ""}
	switch m.state {
	case ViewStateInput:
		sections = append(sections, "追加: "+m.addInput.View())
		if m.suggestions.Len() > 0 {
			sections = append(sections, m.suggestions.View())
		}
		sections = append(sections, HelpStyle.Render("↑/↓ 候補  enter 追加  esc キャンセル"))
	case ViewStateConfirm:
		sections = append(sections, InfoStyle.Render("「"+m.confirmBrand.BrandName+"」を削除しますか？ (y/n)"))
	case ViewStateList, ViewStateLoading, ViewStateDetail, ViewStateQuitting, ViewStateError:
		sections = append(sections,
			HelpStyle.Render("tab 切替  a 追加  d 削除  ←/→ 点数  s 好みを更新  esc ホーム  q 終了"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
