package tui

import (
	"context"

	"github.com/bialog/bialog/internal/api"
)

// Backend is the data source the views read from and write to.
// *api.Client implements it.
type Backend interface {
	FetchPurchaselog(ctx context.Context, page int) (api.PurchaselogPage, error)
	CurrentUserName(ctx context.Context) (string, error)
	UserID() (int, error)
	UserWithPhotos(ctx context.Context, userID int) (api.UserWithPhotos, error)
	Favorites(ctx context.Context, userID int) ([]api.Brand, error)
	Preferences(ctx context.Context, userID int) ([]api.Preference, error)
	SearchBrands(ctx context.Context, term string) ([]api.Brand, error)
	AddFavorite(ctx context.Context, userID int, brandName string) (api.Brand, error)
	DeleteFavorite(ctx context.Context, userID, brandID int) error
	UpdatePreferences(ctx context.Context, userID int, scores map[int]int) error
	Login(ctx context.Context, username, password string) (api.Token, error)
}

var _ Backend = (*api.Client)(nil)
