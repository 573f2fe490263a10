package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bialog/bialog/internal/api"
)

func profileBackend() *fakeBackend {
	return &fakeBackend{
		userID: 7,
		user: api.UserWithPhotos{
			User:   api.User{UserID: 7, UserName: "hanako", UserProfile: "IPA好き"},
			Photos: []api.Photo{{PhotoID: 1}},
		},
		favorites: []api.Brand{{BrandID: 1, BrandName: "Yona Yona"}, {BrandID: 2, BrandName: "Sapporo"}},
		preferences: []api.Preference{
			{UserID: 7, ItemID: 10, Score: 3, Item: api.Item{ItemID: 10, ItemName: "苦味"}},
			{UserID: 7, ItemID: 11, Score: 5, Item: api.Item{ItemID: 11, ItemName: "香り"}},
		},
		brands: map[string][]api.Brand{"ko": {{BrandID: 5, BrandName: "Kirin"}}},
	}
}

func loadedProfileModel(t *testing.T, backend *fakeBackend) (*ProfileModel, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	m := NewProfileModel(context.Background(), backend, n)
	p, err := LoadProfile(context.Background(), backend)
	require.NoError(t, err)
	m.Update(profileLoadedMsg{profile: p})
	require.Equal(t, ViewStateList, m.State())
	return m, n
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile(context.Background(), profileBackend())
	require.NoError(t, err)
	assert.Equal(t, 7, p.UserID)
	assert.Equal(t, "hanako", p.User.UserName)
	assert.Equal(t, 1, p.PhotoCount)
	assert.Len(t, p.Favorites, 2)
	assert.Len(t, p.Preferences, 2)
}

func TestLoadProfile_Errors(t *testing.T) {
	backend := profileBackend()
	backend.userIDErr = api.ErrUnauthorized
	_, err := LoadProfile(context.Background(), backend)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	backend = profileBackend()
	backend.listErr = errors.New("boom")
	_, err = LoadProfile(context.Background(), backend)
	require.Error(t, err)
}

func TestProfileModel_View(t *testing.T) {
	m, _ := loadedProfileModel(t, profileBackend())
	view := m.View()
	assert.Contains(t, view, "hanako")
	assert.Contains(t, view, "Yona Yona")
	assert.Contains(t, view, "苦味")
	assert.Contains(t, view, "★★★☆☆")
}

func TestProfileModel_LoadFailureUnauthorized(t *testing.T) {
	n := &recordingNotifier{}
	m := NewProfileModel(context.Background(), profileBackend(), n)
	m.Update(profileLoadedMsg{err: api.ErrUnauthorized})
	assert.Equal(t, ViewStateError, m.State())
	assert.Len(t, n.errors, 1)
}

func TestProfileModel_DeleteFavoriteConfirm(t *testing.T) {
	backend := profileBackend()
	m, n := loadedProfileModel(t, backend)

	m.Update(keyRunes("d"))
	require.Equal(t, ViewStateConfirm, m.State())
	assert.Contains(t, m.View(), "Yona Yona")

	_, cmd := m.Update(keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateList, m.State())

	m.Update(keyRunes("d"))
	_, cmd = m.Update(keyRunes("y"))
	m.Update(runCmd(cmd))

	assert.Equal(t, []int{1}, backend.deleted)
	assert.Equal(t, []api.Brand{{BrandID: 2, BrandName: "Sapporo"}}, m.Profile().Favorites)
	assert.Equal(t, []string{msgFavoriteDeleted}, n.infos)
}

func TestProfileModel_DeleteFavoriteFailure(t *testing.T) {
	backend := profileBackend()
	backend.deleteErr = errors.New("boom")
	m, n := loadedProfileModel(t, backend)

	m.Update(keyRunes("d"))
	_, cmd := m.Update(keyRunes("y"))
	m.Update(runCmd(cmd))
	assert.Len(t, m.Profile().Favorites, 2)
	assert.Equal(t, []string{msgFavoriteDelFailed}, n.errors)
}

func TestProfileModel_EditAndSubmitPreferences(t *testing.T) {
	backend := profileBackend()
	m, n := loadedProfileModel(t, backend)

	_, cmd := m.Update(keyRunes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, []string{msgNoPreferenceChange}, n.infos)

	m.Update(keyType(tea.KeyTab))
	m.Update(keyType(tea.KeyRight))
	m.Update(keyType(tea.KeyRight))
	m.Update(keyType(tea.KeyRight))
	assert.Equal(t, map[int]int{10: 5}, m.PendingScores(), "clamped at the maximum")

	m.Update(keyType(tea.KeyDown))
	m.Update(keyType(tea.KeyRight))
	assert.Equal(t, map[int]int{10: 5}, m.PendingScores(), "unchanged score is not pending")

	m.Update(keyRunes("-"))
	assert.Equal(t, map[int]int{10: 5, 11: 4}, m.PendingScores())

	_, cmd = m.Update(keyRunes("s"))
	m.Update(runCmd(cmd))
	assert.Equal(t, map[int]int{10: 5, 11: 4}, backend.updated)
	assert.Empty(t, m.PendingScores())
	assert.Equal(t, 5, m.Profile().Preferences[0].Score)
	assert.Equal(t, 4, m.Profile().Preferences[1].Score)
	assert.Contains(t, n.infos, msgPreferencesSaved)
}

func TestProfileModel_AddFavorite(t *testing.T) {
	backend := profileBackend()
	m, n := loadedProfileModel(t, backend)

	m.Update(keyRunes("a"))
	require.Equal(t, ViewStateInput, m.State())
	m.addInput.SetValue("ko")

	m.Update(favoriteSuggestionsMsg{query: "k", brands: []api.Brand{{BrandID: 8, BrandName: "Kona"}}})
	assert.Equal(t, 0, m.suggestions.Len(), "suggestions for an older query are dropped")

	m.Update(favoriteSuggestionsMsg{query: "ko", brands: []api.Brand{{BrandID: 5, BrandName: "Kirin"}}})
	require.Equal(t, 1, m.suggestions.Len())

	_, cmd := m.Update(keyType(tea.KeyEnter))
	require.Equal(t, ViewStateList, m.State())
	m.Update(runCmd(cmd))

	favs := m.Profile().Favorites
	require.Len(t, favs, 3)
	assert.Equal(t, "Kirin", favs[2].BrandName)
	assert.Equal(t, []string{msgFavoriteAdded}, n.infos)
}

func TestProfileModel_AddFavoriteDuplicate(t *testing.T) {
	backend := profileBackend()
	backend.addErr = &api.FetchError{Op: "add favorite", StatusCode: 400, Err: api.ErrAlreadyFavorite}
	m, n := loadedProfileModel(t, backend)

	m.Update(keyRunes("a"))
	m.addInput.SetValue("ko")
	m.Update(favoriteSuggestionsMsg{query: "ko", brands: []api.Brand{{BrandID: 5, BrandName: "Kirin"}}})
	_, cmd := m.Update(keyType(tea.KeyEnter))
	m.Update(runCmd(cmd))

	assert.Len(t, m.Profile().Favorites, 2)
	assert.Equal(t, []string{msgFavoriteDuplicate}, n.errors)
}

func TestProfileModel_SuggestRunsSearch(t *testing.T) {
	m, _ := loadedProfileModel(t, profileBackend())
	m.Update(keyRunes("a"))
	m.addInput.SetValue("ko")

	msg := runCmd(m.suggest("ko"))
	m.Update(msg)
	item, ok := m.suggestions.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Kirin", item.BrandName)

	assert.Nil(t, m.suggest(""))
	assert.Equal(t, 0, m.suggestions.Len())
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "★★★★★", ScoreBar(5))
	assert.Equal(t, "☆☆☆☆☆", ScoreBar(0))
	assert.Equal(t, "★☆☆☆☆", ScoreBar(1))
	assert.Equal(t, "★★★★★", ScoreBar(9))
}
