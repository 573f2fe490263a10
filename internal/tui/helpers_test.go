package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bialog/bialog/internal/api"
)

type recordingNotifier struct {
	errors []string
	infos  []string
}

func (n *recordingNotifier) NotifyError(message string) tea.Cmd {
	n.errors = append(n.errors, message)
	return nil
}

func (n *recordingNotifier) NotifyInfo(message string) tea.Cmd {
	n.infos = append(n.infos, message)
	return nil
}

type fakeBackend struct {
	mu sync.Mutex

	userID      int
	userIDErr   error
	userName    string
	userNameErr error
	user        api.UserWithPhotos
	favorites   []api.Brand
	preferences []api.Preference
	listErr     error
	brands      map[string][]api.Brand
	addErr      error
	deleteErr   error
	updateErr   error
	loginToken  string
	loginErr    error

	deleted []int
	updated map[int]int
}

func (f *fakeBackend) FetchPurchaselog(_ context.Context, page int) (api.PurchaselogPage, error) {
	return api.PurchaselogPage{Page: page, TotalPage: 1, Purchaselog: []api.Purchaselog{{PurchaseID: page}}}, nil
}

func (f *fakeBackend) CurrentUserName(context.Context) (string, error) {
	return f.userName, f.userNameErr
}

func (f *fakeBackend) UserID() (int, error) {
	return f.userID, f.userIDErr
}

func (f *fakeBackend) UserWithPhotos(context.Context, int) (api.UserWithPhotos, error) {
	return f.user, nil
}

func (f *fakeBackend) Favorites(context.Context, int) ([]api.Brand, error) {
	return f.favorites, f.listErr
}

func (f *fakeBackend) Preferences(context.Context, int) ([]api.Preference, error) {
	return f.preferences, nil
}

func (f *fakeBackend) SearchBrands(_ context.Context, term string) ([]api.Brand, error) {
	return f.brands[term], nil
}

func (f *fakeBackend) AddFavorite(_ context.Context, _ int, brandName string) (api.Brand, error) {
	if f.addErr != nil {
		return api.Brand{}, f.addErr
	}
	return api.Brand{BrandID: 99, BrandName: brandName}, nil
}

func (f *fakeBackend) DeleteFavorite(_ context.Context, _ int, brandID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, brandID)
	return f.deleteErr
}

func (f *fakeBackend) UpdatePreferences(_ context.Context, _ int, scores map[int]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = scores
	return f.updateErr
}

func (f *fakeBackend) Login(context.Context, string, string) (api.Token, error) {
	if f.loginErr != nil {
		return api.Token{}, f.loginErr
	}
	return api.Token{AccessToken: f.loginToken, TokenType: "bearer"}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// runCmd executes a command that is known not to be a timer.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
