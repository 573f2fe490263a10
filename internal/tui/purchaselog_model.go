package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/pagination"
	listview "github.com/bialog/bialog/internal/tui/list"
)

const (
	// cardRows is the height of a rendered purchase card including its border.
	cardRows = 4
	// purchaselogChromeRows covers the title, page footer and help lines.
	purchaselogChromeRows = 6

	jumpInputCharLimit = 6
	jumpInputWidth     = 8

	detailColWidthName     = 28
	detailColWidthCategory = 12
	detailColWidthPrice    = 10
	detailColWidthCount    = 6

	msgFetchPurchaselogFailed = "購入履歴の取得に失敗しました"
	msgSurveyUnavailable      = "この購入のアンケートはまだ利用できません"
)

var detailSortCycle = []string{"", api.SortByName, api.SortByCategory, api.SortByPrice, api.SortByCount}

type purchaselogLoadedMsg struct {
	req  pagination.Request
	page pagination.Page[api.Purchaselog]
	err  error
}

// PurchaselogModel is the paginated purchase history view.
type PurchaselogModel struct {
	ctx      context.Context
	fetch    pagination.Fetcher[api.Purchaselog]
	ctrl     *pagination.Controller[api.Purchaselog]
	notifier Notifier
	log      zerolog.Logger

	state   ViewState
	cards   *listview.Model[api.Purchaselog]
	detail  table.Model
	jump    textinput.Model
	loading *LoadingState

	detailSort int
	width      int
	height     int

	// startPage is applied once the first result reports the page count.
	startPage int
}

// NewPurchaselogModel creates the view. Nothing is fetched until Init.
func NewPurchaselogModel(
	ctx context.Context,
	fetch pagination.Fetcher[api.Purchaselog],
	windowSize int,
	notifier Notifier,
) *PurchaselogModel {
	m := &PurchaselogModel{
		ctx:      ctx,
		fetch:    fetch,
		ctrl:     pagination.NewController[api.Purchaselog](windowSize),
		notifier: notifier,
		log:      logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		state:    ViewStateLoading,
		jump:     newJumpInput(),
		loading:  NewLoadingState("購入履歴を読み込み中..."),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.cards = listview.New([]api.Purchaselog{}, m.listHeight(), m.renderCard)
	m.cards.SetRowsPerItem(cardRows)
	return m
}

func newJumpInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "ページ番号"
	ti.CharLimit = jumpInputCharLimit
	ti.Width = jumpInputWidth
	ti.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	return ti
}

// SetStartPage makes the view move to page n after the first page loads.
// Pages outside the reported range are refused with an error notification.
func (m *PurchaselogModel) SetStartPage(n int) {
	m.startPage = n
}

// Controller exposes the pagination state.
func (m *PurchaselogModel) Controller() *pagination.Controller[api.Purchaselog] {
	return m.ctrl
}

// State returns the current display mode.
func (m *PurchaselogModel) State() ViewState {
	return m.state
}

// Init issues the fetch for page 1.
func (m *PurchaselogModel) Init() tea.Cmd {
	return m.request(m.ctrl.Start())
}

// request starts a fetch cycle for req.
func (m *PurchaselogModel) request(req pagination.Request) tea.Cmd {
	m.ctrl.OnFetchStart(req)
	m.log.Debug().Int("page", req.Page).Uint64("seq", req.Seq).Msg("fetching purchaselog page")
	ctx, fetch := m.ctx, m.fetch
	return tea.Batch(m.loading.Init(), func() tea.Msg {
		page, err := fetch(ctx, req.Page)
		return purchaselogLoadedMsg{req: req, page: page, err: err}
	})
}

// Update handles messages.
func (m *PurchaselogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cards.SetHeight(m.listHeight())
		if m.state == ViewStateDetail {
			m.detail.SetHeight(m.listHeight())
		}
		return m, nil
	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case purchaselogLoadedMsg:
		return m.handleLoaded(msg)
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	switch m.state {
	case ViewStateInput:
		return m.handleJumpInput(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateLoading, ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateConfirm, ViewStateQuitting, ViewStateError:
		return m, nil
	default:
		return m, nil
	}
}

func (m *PurchaselogModel) handleLoaded(msg purchaselogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if !m.ctrl.OnFetchFailed(msg.req, msg.err) {
			m.log.Debug().Int("page", msg.req.Page).Uint64("seq", msg.req.Seq).Msg("dropped stale fetch failure")
			return m, nil
		}
		m.log.Error().Err(msg.err).Int("page", msg.req.Page).Msg("fetch purchaselog failed")
		if m.state == ViewStateLoading {
			m.state = ViewStateList
		}
		return m, m.notifier.NotifyError(msgFetchPurchaselogFailed)
	}

	if !m.ctrl.OnFetchResolved(msg.req, msg.page.Items, msg.page.TotalPage) {
		m.log.Debug().Int("page", msg.req.Page).Uint64("seq", msg.req.Seq).Msg("dropped stale page")
		return m, nil
	}
	m.cards.SetItems(m.ctrl.Items())
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
	if m.startPage != 0 {
		return m, m.applyStartPage()
	}
	if req, ok := m.ctrl.Reconcile(); ok {
		return m, m.request(req)
	}
	return m, nil
}

func (m *PurchaselogModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case keyLeft, keyH:
		return m, m.move(m.ctrl.Prev)
	case keyRight, keyL:
		return m, m.move(m.ctrl.Next)
	case keyHome:
		return m, m.move(m.ctrl.First)
	case keyEnd:
		return m, m.move(m.ctrl.Last)
	case keyReload:
		return m, m.request(m.ctrl.Reload())
	case keyColon:
		m.state = ViewStateInput
		m.jump.SetValue("")
		return m, m.jump.Focus()
	case keyEnter:
		if p, found := m.cards.SelectedItem(); found {
			m.openDetail(p)
		}
		return m, nil
	case keySurvey:
		return m, m.requestSurvey()
	}

	m.cards.Update(keyMsg)
	return m, nil
}

func (m *PurchaselogModel) move(step func() (pagination.Request, bool)) tea.Cmd {
	req, ok := step()
	if !ok {
		return nil
	}
	return m.request(req)
}

func (m *PurchaselogModel) requestSurvey() tea.Cmd {
	p, found := m.cards.SelectedItem()
	if !found {
		return nil
	}
	if !p.SurveyCompletion {
		return m.notifier.NotifyInfo(msgSurveyUnavailable)
	}
	return Navigate(TargetSurvey, p.PurchaseID)
}

func (m *PurchaselogModel) handleJumpInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = ViewStateList
			m.jump.Blur()
			return m, nil
		case keyEnter:
			m.state = ViewStateList
			m.jump.Blur()
			n, err := strconv.Atoi(strings.TrimSpace(m.jump.Value()))
			if err != nil {
				return m, m.notifier.NotifyError(m.pageRangeMessage())
			}
			req, ok := m.ctrl.SetPage(n)
			if !ok {
				return m, m.notifier.NotifyError(m.pageRangeMessage())
			}
			return m, m.request(req)
		}
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m *PurchaselogModel) applyStartPage() tea.Cmd {
	n := m.startPage
	m.startPage = 0
	if n == m.ctrl.Page() {
		return nil
	}
	req, ok := m.ctrl.SetPage(n)
	if !ok {
		m.log.Warn().Int("page", n).Int("total_page", m.ctrl.TotalPage()).Msg("start page out of range")
		return m.notifier.NotifyError(m.pageRangeMessage())
	}
	return m.request(req)
}

func (m *PurchaselogModel) pageRangeMessage() string {
	return fmt.Sprintf("ページは1〜%dで指定してください", m.ctrl.TotalPage())
}

func (m *PurchaselogModel) openDetail(p api.Purchaselog) {
	m.state = ViewStateDetail
	m.detail = table.New(
		table.WithColumns([]table.Column{
			{Title: "銘柄", Width: detailColWidthName},
			{Title: "カテゴリ", Width: detailColWidthCategory},
			{Title: "価格", Width: detailColWidthPrice},
			{Title: "本数", Width: detailColWidthCount},
		}),
		table.WithFocused(true),
		table.WithHeight(m.listHeight()),
	)
	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableSelectedStyle
	m.detail.SetStyles(styles)
	m.fillDetailRows(p)
}

func (m *PurchaselogModel) fillDetailRows(p api.Purchaselog) {
	items := api.SortDetails(p.Details, detailSortCycle[m.detailSort], pagination.SortOrderAsc)
	rows := make([]table.Row, 0, len(items))
	for _, d := range items {
		rows = append(rows, table.Row{
			truncate(d.Name, detailColWidthName),
			d.Category,
			FormatYen(d.Price),
			strconv.Itoa(d.Count),
		})
	}
	m.detail.SetRows(rows)
}

func (m *PurchaselogModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc, keyBackward:
			m.state = ViewStateList
			return m, nil
		case keySubmit:
			m.detailSort = (m.detailSort + 1) % len(detailSortCycle)
			if p, found := m.cards.SelectedItem(); found {
				m.fillDetailRows(p)
			}
			return m, nil
		case keySurvey:
			return m, m.requestSurvey()
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *PurchaselogModel) listHeight() int {
	return max(minHeight, m.height-purchaselogChromeRows)
}

func (m *PurchaselogModel) renderCard(p api.Purchaselog, selected bool) string {
	line1 := fmt.Sprintf("%s %d  %s %s",
		LabelStyle.Render("購入ID:"), p.PurchaseID,
		LabelStyle.Render("購入日:"), FormatPurchaseDate(p))
	line2 := fmt.Sprintf("%s %s  %s %s  %s %s",
		LabelStyle.Render("合計金額:"), ValueStyle.Render(FormatYen(p.TotalAmount)),
		LabelStyle.Render("合計本数:"), ValueStyle.Render(FormatCans(p.TotalCans)),
		LabelStyle.Render("アンケート:"), SurveyLabel(p.SurveyCompletion))
	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Width(max(minHeight, m.width-2)).Render(line1 + "\n" + line2)
}

// View renders the view.
func (m *PurchaselogModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("購入履歴"))
	b.WriteString("\n\n")

	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		b.WriteString(RenderLoading(m.loading))
		return b.String()
	case ViewStateDetail:
		b.WriteString(m.renderDetail())
		return b.String()
	case ViewStateList, ViewStateInput, ViewStateConfirm, ViewStateError:
	}

	if m.cards.Len() == 0 {
		b.WriteString(LabelStyle.Render("購入履歴はありません"))
	} else {
		b.WriteString(m.cards.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *PurchaselogModel) renderFooter() string {
	footer := RenderPageWindow(m.ctrl.VisiblePageWindow(), m.ctrl.Page())
	if m.ctrl.Loading() {
		footer += "  " + RenderLoading(m.loading)
	}
	if m.state == ViewStateInput {
		return lipgloss.JoinVertical(lipgloss.Left, footer, "移動先: "+m.jump.View())
	}
	help := HelpStyle.Render("←/→ ページ  home/end 最初/最後  : ページ指定  enter 明細  v アンケート  r 再読込  esc ホーム  q 終了")
	return lipgloss.JoinVertical(lipgloss.Left, footer, help)
}

func (m *PurchaselogModel) renderDetail() string {
	p, found := m.cards.SelectedItem()
	if !found {
		return ""
	}
	head := fmt.Sprintf("%s %d  %s  %s", LabelStyle.Render("購入ID:"), p.PurchaseID,
		FormatPurchaseDate(p), FormatYen(p.TotalAmount))
	sortLabel := detailSortCycle[m.detailSort]
	if sortLabel == "" {
		sortLabel = "なし"
	}
	help := HelpStyle.Render("s 並び替え(" + sortLabel + ")  v アンケート  esc 戻る  q 終了")
	return lipgloss.JoinVertical(lipgloss.Left, head, "", m.detail.View(), help)
}
