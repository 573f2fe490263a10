package api

import (
	"context"
	"net/http"
	"strconv"
)

type userNameResponse struct {
	UserName string `json:"user_name"`
}

// CurrentUserName returns the name of the user the token belongs to.
func (c *Client) CurrentUserName(ctx context.Context) (string, error) {
	var out userNameResponse
	if err := c.do(ctx, "current user name", http.MethodGet, "/user_name", c.http.R(), &out, false); err != nil {
		return "", err
	}
	return out.UserName, nil
}

// UserWithPhotos returns the profile and posted photos of userID.
func (c *Client) UserWithPhotos(ctx context.Context, userID int) (UserWithPhotos, error) {
	var out UserWithPhotos
	req := c.http.R().SetQueryParam("user_id", strconv.Itoa(userID))
	if err := c.do(ctx, "user with photos", http.MethodGet, "/user_with_photos", req, &out, false); err != nil {
		return UserWithPhotos{}, err
	}
	return out, nil
}

// Preferences returns the taste scores of userID. A user without scores gets
// an empty slice.
func (c *Client) Preferences(ctx context.Context, userID int) ([]Preference, error) {
	out := []Preference{}
	req := c.http.R().SetQueryParam("user_id", strconv.Itoa(userID))
	if err := c.do(ctx, "user preferences", http.MethodGet, "/user_preferences", req, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

type updatePreferencesRequest struct {
	UserID      int            `json:"user_id"`
	Preferences map[string]int `json:"preferences"`
}

// UpdatePreferences replaces the scores of the given items. Scores must be
// within MinScore and MaxScore.
func (c *Client) UpdatePreferences(ctx context.Context, userID int, scores map[int]int) error {
	body := updatePreferencesRequest{UserID: userID, Preferences: make(map[string]int, len(scores))}
	for itemID, score := range scores {
		if score < MinScore || score > MaxScore {
			return &FetchError{Op: "update preferences", Err: ErrInvalidScore}
		}
		body.Preferences[strconv.Itoa(itemID)] = score
	}
	req := c.http.R().SetHeader("Content-Type", "application/json").SetBody(body)
	return c.do(ctx, "update preferences", http.MethodPost, "/update_preferences", req, nil, false)
}
