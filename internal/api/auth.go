package api

import (
	"context"
	"errors"
	"net/http"
)

// ErrEmptyCredentials is returned by Login when username or password is empty.
var ErrEmptyCredentials = errors.New("username and password are required")

// Login exchanges a username and password for an access token. The token is
// not stored; callers hand it to their session.Provider.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	if username == "" || password == "" {
		return Token{}, &FetchError{Op: "login", Err: ErrEmptyCredentials}
	}
	var out Token
	req := c.http.R().SetFormData(map[string]string{
		"username": username,
		"password": password,
	})
	if err := c.do(ctx, "login", http.MethodPost, "/token", req, &out, false); err != nil {
		return Token{}, err
	}
	if out.AccessToken == "" {
		return Token{}, &FetchError{Op: "login", StatusCode: http.StatusOK, Err: ErrDecode}
	}
	return out, nil
}
