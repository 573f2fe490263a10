package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/bialog/bialog/internal/cache"
)

// Favorites returns the favorite brands of userID.
func (c *Client) Favorites(ctx context.Context, userID int) ([]Brand, error) {
	out := []Brand{}
	req := c.http.R().SetQueryParam("user_id", strconv.Itoa(userID))
	if err := c.do(ctx, "user favorites", http.MethodGet, "/user_favorites", req, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchBrands returns brands matching term. An empty term returns nothing
// without a request. Results are cached when a brand cache is configured.
func (c *Client) SearchBrands(ctx context.Context, term string) ([]Brand, error) {
	if term == "" {
		return []Brand{}, nil
	}
	return cache.Fetch(ctx, c.brands, cache.Key(brandSearchCachePart, term), func(ctx context.Context) ([]Brand, error) {
		out := []Brand{}
		req := c.http.R().SetQueryParam("search_term", term)
		if err := c.do(ctx, "search brands", http.MethodGet, "/search_brands", req, &out, true); err != nil {
			return nil, err
		}
		return out, nil
	})
}

type addFavoriteRequest struct {
	UserID    int    `json:"user_id"`
	BrandName string `json:"brand_name"`
}

// AddFavorite adds brandName to the favorites of userID and returns the brand.
func (c *Client) AddFavorite(ctx context.Context, userID int, brandName string) (Brand, error) {
	var out Brand
	req := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(addFavoriteRequest{UserID: userID, BrandName: brandName})
	err := c.do(ctx, "add favorite", http.MethodPost, "/add_favorite", req, &out, false)
	var fe *FetchError
	if errors.As(err, &fe) && fe.StatusCode == http.StatusBadRequest {
		fe.Err = ErrAlreadyFavorite
	}
	if err != nil {
		return Brand{}, err
	}
	return out, nil
}

// DeleteFavorite removes brandID from the favorites of userID.
func (c *Client) DeleteFavorite(ctx context.Context, userID, brandID int) error {
	req := c.http.R().SetQueryParams(map[string]string{
		"user_id":  strconv.Itoa(userID),
		"brand_id": strconv.Itoa(brandID),
	})
	return c.do(ctx, "delete favorite", http.MethodDelete, "/delete_favorite", req, nil, false)
}
