package tui

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bialog/bialog/internal/api"
)

// Profile is everything the profile screen shows.
type Profile struct {
	UserID      int              `json:"user_id"`
	User        api.User         `json:"user"`
	PhotoCount  int              `json:"photo_count"`
	Favorites   []api.Brand      `json:"favorites"`
	Preferences []api.Preference `json:"preferences"`
}

// LoadProfile fetches the signed-in user's profile, favorites and
// preferences concurrently. The first failure cancels the others.
func LoadProfile(ctx context.Context, backend Backend) (Profile, error) {
	userID, err := backend.UserID()
	if err != nil {
		return Profile{}, err
	}

	p := Profile{UserID: userID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, uErr := backend.UserWithPhotos(gctx, userID)
		if uErr != nil {
			return uErr
		}
		p.User = u.User
		p.PhotoCount = len(u.Photos)
		return nil
	})
	g.Go(func() error {
		favs, fErr := backend.Favorites(gctx, userID)
		p.Favorites = favs
		return fErr
	})
	g.Go(func() error {
		prefs, pErr := backend.Preferences(gctx, userID)
		p.Preferences = prefs
		return pErr
	})
	if waitErr := g.Wait(); waitErr != nil {
		return Profile{}, fmt.Errorf("loading profile: %w", waitErr)
	}
	return p, nil
}

// ScoreBar renders a score as filled and empty stars.
func ScoreBar(score int) string {
	score = min(max(score, 0), api.MaxScore)
	bar := make([]rune, 0, api.MaxScore)
	for i := 1; i <= api.MaxScore; i++ {
		if i <= score {
			bar = append(bar, '★')
		} else {
			bar = append(bar, '☆')
		}
	}
	return string(bar)
}
